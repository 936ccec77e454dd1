package subscription

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/subscription"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	subscriptionsvc "github.com/amirasaad/fintrack/pkg/service/subscription"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the subscription endpoints.
func Routes(app *fiber.App, svc *subscriptionsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/subscriptions", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", CreateSubscription(svc, authSvc))
	g.Get("/", ListSubscriptions(svc, authSvc))
	g.Get("/:id", GetSubscription(svc, authSvc))
	g.Put("/:id", UpdateSubscription(svc, authSvc))
	g.Post("/:id/renew", RenewSubscription(svc, authSvc))
	g.Delete("/:id", DeleteSubscription(svc, authSvc))
}

// CreateSubscription
// @Summary Create subscription
// @Description Billing cycle defaults to monthly and status to active
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} SubscriptionDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /subscriptions [post]
// @Security BearerAuth
func CreateSubscription(svc *subscriptionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[CreateSubscriptionRequest](c)
		if input == nil {
			return err
		}
		next, err := common.ParseDate(input.NextBillingDate)
		if err != nil {
			return common.HandleError(c, err)
		}
		sub, err := svc.Create(c.UserContext(), userID, subscriptionsvc.CreateInput{
			Name:            input.Name,
			Amount:          *input.Amount,
			BillingCycle:    subscription.BillingCycle(input.BillingCycle),
			NextBillingDate: next,
			Category:        input.Category,
			Status:          subscription.Status(input.Status),
			Website:         input.Website,
			Notes:           input.Notes,
		})
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToSubscriptionDTO(sub))
	}
}

// ListSubscriptions returns subscriptions by next billing date, soonest first.
// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Success 200 {array} SubscriptionDTO
// @Router /subscriptions [get]
// @Security BearerAuth
func ListSubscriptions(svc *subscriptionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		subs, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToSubscriptionDTOs(subs))
	}
}

// GetSubscription
// @Summary Get subscription
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} SubscriptionDTO
// @Failure 404 {object} common.ErrorResponse
// @Router /subscriptions/{id} [get]
// @Security BearerAuth
func GetSubscription(svc *subscriptionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		sub, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToSubscriptionDTO(sub))
	}
}

// UpdateSubscription
// @Summary Update subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body UpdateSubscriptionRequest true "Fields to change"
// @Success 200 {object} SubscriptionDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /subscriptions/{id} [put]
// @Security BearerAuth
func UpdateSubscription(svc *subscriptionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[UpdateSubscriptionRequest](c)
		if input == nil {
			return err
		}
		next, err := common.ParseOptionalDate(input.NextBillingDate)
		if err != nil {
			return common.HandleError(c, err)
		}
		in := subscriptionsvc.UpdateInput{
			Name:            input.Name,
			Amount:          input.Amount,
			NextBillingDate: next,
			Category:        input.Category,
			Website:         input.Website,
			Notes:           input.Notes,
		}
		if input.BillingCycle != nil {
			cycle := subscription.BillingCycle(*input.BillingCycle)
			in.BillingCycle = &cycle
		}
		if input.Status != nil {
			status := subscription.Status(*input.Status)
			in.Status = &status
		}
		sub, err := svc.Update(c.UserContext(), userID, id, in)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToSubscriptionDTO(sub))
	}
}

// RenewSubscription moves the next billing date forward by one cycle.
// @Summary Renew subscription
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} SubscriptionDTO
// @Failure 404 {object} common.ErrorResponse
// @Router /subscriptions/{id}/renew [post]
// @Security BearerAuth
func RenewSubscription(svc *subscriptionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		sub, err := svc.Renew(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToSubscriptionDTO(sub))
	}
}

// DeleteSubscription
// @Summary Delete subscription
// @Tags subscriptions
// @Param id path string true "Subscription ID"
// @Success 204
// @Failure 404 {object} common.ErrorResponse
// @Router /subscriptions/{id} [delete]
// @Security BearerAuth
func DeleteSubscription(svc *subscriptionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
