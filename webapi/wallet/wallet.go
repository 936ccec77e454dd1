package wallet

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	walletsvc "github.com/amirasaad/fintrack/pkg/service/wallet"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Routes registers the wallet endpoints. All of them require a session.
func Routes(app *fiber.App, svc *walletsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/wallets", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", CreateWallet(svc, authSvc))
	g.Get("/", ListWallets(svc, authSvc))
	g.Get("/:id", GetWallet(svc, authSvc))
	g.Put("/:id", UpdateWallet(svc, authSvc))
	g.Delete("/:id", DeleteWallet(svc, authSvc))
}

// CreateWallet creates a wallet for the current user.
// @Summary Create wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body CreateWalletRequest true "Wallet"
// @Success 201 {object} WalletDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /wallets [post]
// @Security BearerAuth
func CreateWallet(svc *walletsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[CreateWalletRequest](c)
		if input == nil {
			return err
		}
		balance := decimal.Zero
		if input.Balance != nil {
			balance = *input.Balance
		}
		w, err := svc.Create(c.UserContext(), userID, walletsvc.CreateInput{
			Name:     input.Name,
			Type:     wallet.Type(input.Type),
			Balance:  balance,
			Currency: input.Currency,
		})
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToWalletDTO(w))
	}
}

// ListWallets returns the current user's wallets, newest first.
// @Summary List wallets
// @Tags wallets
// @Produce json
// @Success 200 {array} WalletDTO
// @Failure 401 {object} common.ErrorResponse
// @Router /wallets [get]
// @Security BearerAuth
func ListWallets(svc *walletsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		ws, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToWalletDTOs(ws))
	}
}

// GetWallet
// @Summary Get wallet
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} WalletDTO
// @Failure 404 {object} common.ErrorResponse
// @Router /wallets/{id} [get]
// @Security BearerAuth
func GetWallet(svc *walletsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		w, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToWalletDTO(w))
	}
}

// UpdateWallet applies a partial update.
// @Summary Update wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param request body UpdateWalletRequest true "Fields to change"
// @Success 200 {object} WalletDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /wallets/{id} [put]
// @Security BearerAuth
func UpdateWallet(svc *walletsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[UpdateWalletRequest](c)
		if input == nil {
			return err
		}
		in := walletsvc.UpdateInput{
			Name:     input.Name,
			Balance:  input.Balance,
			Currency: input.Currency,
		}
		if input.Type != nil {
			t := wallet.Type(*input.Type)
			in.Type = &t
		}
		w, err := svc.Update(c.UserContext(), userID, id, in)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToWalletDTO(w))
	}
}

// DeleteWallet
// @Summary Delete wallet
// @Tags wallets
// @Param id path string true "Wallet ID"
// @Success 204
// @Failure 404 {object} common.ErrorResponse
// @Router /wallets/{id} [delete]
// @Security BearerAuth
func DeleteWallet(svc *walletsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		if err := svc.Delete(c.UserContext(), userID, id); err != nil {
			return common.HandleError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
