package investment

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/investment"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	investmentsvc "github.com/amirasaad/fintrack/pkg/service/investment"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the investment endpoints.
func Routes(app *fiber.App, svc *investmentsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/investments", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", CreateInvestment(svc, authSvc))
	g.Get("/", ListInvestments(svc, authSvc))
	g.Get("/:id", GetInvestment(svc, authSvc))
	g.Put("/:id", UpdateInvestment(svc, authSvc))
	g.Post("/:id/refresh", RefreshInvestment(svc, authSvc))
	g.Delete("/:id", DeleteInvestment(svc, authSvc))
}

// CreateInvestment
// @Summary Create investment
// @Description Symbol and currency are upper-cased; purchase date defaults to today
// @Tags investments
// @Accept json
// @Produce json
// @Param request body CreateInvestmentRequest true "Holding"
// @Success 201 {object} InvestmentDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /investments [post]
// @Security BearerAuth
func CreateInvestment(svc *investmentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[CreateInvestmentRequest](c)
		if input == nil {
			return err
		}
		purchased, err := common.ParseOptionalDate(&input.PurchaseDate)
		if err != nil {
			return common.HandleError(c, err)
		}
		in := investmentsvc.CreateInput{
			Symbol:       input.Symbol,
			Name:         input.Name,
			AssetType:    investment.AssetType(input.AssetType),
			Quantity:     *input.Quantity,
			AverageCost:  *input.AverageCost,
			Currency:     input.Currency,
			CurrentPrice: input.CurrentPrice,
			Notes:        input.Notes,
			Status:       investment.Status(input.Status),
		}
		if purchased != nil {
			in.PurchaseDate = *purchased
		}
		inv, err := svc.Create(c.UserContext(), userID, in)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToInvestmentDTO(inv))
	}
}

// ListInvestments
// @Summary List investments
// @Tags investments
// @Produce json
// @Success 200 {array} InvestmentDTO
// @Router /investments [get]
// @Security BearerAuth
func ListInvestments(svc *investmentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		is, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToInvestmentDTOs(is))
	}
}

// GetInvestment
// @Summary Get investment
// @Tags investments
// @Produce json
// @Param id path string true "Investment ID"
// @Success 200 {object} InvestmentDTO
// @Failure 404 {object} common.ErrorResponse
// @Router /investments/{id} [get]
// @Security BearerAuth
func GetInvestment(svc *investmentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		inv, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToInvestmentDTO(inv))
	}
}

// UpdateInvestment
// @Summary Update investment
// @Tags investments
// @Accept json
// @Produce json
// @Param id path string true "Investment ID"
// @Param request body UpdateInvestmentRequest true "Fields to change"
// @Success 200 {object} InvestmentDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /investments/{id} [put]
// @Security BearerAuth
func UpdateInvestment(svc *investmentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[UpdateInvestmentRequest](c)
		if input == nil {
			return err
		}
		var purchased *time.Time
		if purchased, err = common.ParseOptionalDate(input.PurchaseDate); err != nil {
			return common.HandleError(c, err)
		}
		in := investmentsvc.UpdateInput{
			Symbol:       input.Symbol,
			Name:         input.Name,
			Quantity:     input.Quantity,
			AverageCost:  input.AverageCost,
			Currency:     input.Currency,
			CurrentPrice: input.CurrentPrice,
			Notes:        input.Notes,
			PurchaseDate: purchased,
		}
		if input.AssetType != nil {
			at := investment.AssetType(*input.AssetType)
			in.AssetType = &at
		}
		if input.Status != nil {
			st := investment.Status(*input.Status)
			in.Status = &st
		}
		inv, err := svc.Update(c.UserContext(), userID, id, in)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToInvestmentDTO(inv))
	}
}

// RefreshInvestment stores the latest quote as the current price.
// @Summary Refresh current price
// @Tags investments
// @Produce json
// @Param id path string true "Investment ID"
// @Success 200 {object} InvestmentDTO
// @Failure 404 {object} common.ErrorResponse
// @Failure 429 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /investments/{id}/refresh [post]
// @Security BearerAuth
func RefreshInvestment(svc *investmentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		inv, err := svc.RefreshPrice(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToInvestmentDTO(inv))
	}
}

// DeleteInvestment
// @Summary Delete investment
// @Tags investments
// @Param id path string true "Investment ID"
// @Success 204
// @Failure 404 {object} common.ErrorResponse
// @Router /investments/{id} [delete]
// @Security BearerAuth
func DeleteInvestment(svc *investmentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
