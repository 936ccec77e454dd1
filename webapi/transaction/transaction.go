package transaction

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	transactionsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the transaction endpoints.
func Routes(app *fiber.App, svc *transactionsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/transactions", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", CreateTransaction(svc, authSvc))
	g.Get("/", ListTransactions(svc, authSvc))
	g.Get("/:id", GetTransaction(svc, authSvc))
	g.Put("/:id", UpdateTransaction(svc, authSvc))
	g.Delete("/:id", DeleteTransaction(svc, authSvc))
}

// CreateTransaction records an income or expense.
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /transactions [post]
// @Security BearerAuth
func CreateTransaction(svc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		date, err := common.ParseDate(input.Date)
		if err != nil {
			return common.HandleError(c, err)
		}
		t, err := svc.Create(c.UserContext(), userID, transactionsvc.CreateInput{
			Amount:      *input.Amount,
			Description: input.Description,
			Type:        transaction.Type(input.Type),
			Category:    input.Category,
			Date:        date,
			Wallet:      input.Wallet,
			Notes:       input.Notes,
		})
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToTransactionDTO(t))
	}
}

// ListTransactions returns the ledger ordered by date, newest first.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {array} TransactionDTO
// @Failure 401 {object} common.ErrorResponse
// @Router /transactions [get]
// @Security BearerAuth
func ListTransactions(svc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		ts, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToTransactionDTOs(ts))
	}
}

// GetTransaction
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} TransactionDTO
// @Failure 404 {object} common.ErrorResponse
// @Router /transactions/{id} [get]
// @Security BearerAuth
func GetTransaction(svc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		t, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToTransactionDTO(t))
	}
}

// UpdateTransaction
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} TransactionDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /transactions/{id} [put]
// @Security BearerAuth
func UpdateTransaction(svc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err
		}
		date, err := common.ParseOptionalDate(input.Date)
		if err != nil {
			return common.HandleError(c, err)
		}
		in := transactionsvc.UpdateInput{
			Amount:      input.Amount,
			Description: input.Description,
			Category:    input.Category,
			Date:        date,
			Wallet:      input.Wallet,
			Notes:       input.Notes,
		}
		if input.Type != nil {
			typ := transaction.Type(*input.Type)
			in.Type = &typ
		}
		t, err := svc.Update(c.UserContext(), userID, id, in)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToTransactionDTO(t))
	}
}

// DeleteTransaction
// @Summary Delete transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} common.ErrorResponse
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func DeleteTransaction(svc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
