package goal

import (
	"strings"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	goalsvc "github.com/amirasaad/fintrack/pkg/service/goal"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

const sharedContributionMessage = "contribution received, thank you"

// Routes registers goal management, contribution and share-link endpoints.
// GET /public/goals/:token is the only route that needs no session.
func Routes(app *fiber.App, svc *goalsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)

	g := app.Group("/goals", protected)
	g.Post("/", CreateGoal(svc, authSvc))
	g.Get("/", ListGoals(svc, authSvc))
	g.Get("/:id", GetGoal(svc, authSvc))
	g.Put("/:id", UpdateGoal(svc, authSvc))
	g.Delete("/:id", DeleteGoal(svc, authSvc))
	g.Post("/:id/contributions", Contribute(svc, authSvc))
	g.Post("/:id/share", EnableShare(svc, authSvc))
	g.Delete("/:id/share", DisableShare(svc, authSvc))

	app.Get("/public/goals/:token", GetSharedGoal(svc))
	app.Post("/public/goals/:token/contributions", protected, ContributeShared(svc, authSvc))
}

// CreateGoal
// @Summary Create savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body CreateGoalRequest true "Goal"
// @Success 201 {object} GoalDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /goals [post]
// @Security BearerAuth
func CreateGoal(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[CreateGoalRequest](c)
		if input == nil {
			return err
		}
		deadline, err := common.ParseOptionalDate(&input.Deadline)
		if err != nil {
			return common.HandleError(c, err)
		}
		g, err := svc.Create(c.UserContext(), userID, goalsvc.CreateInput{
			Name:         input.Name,
			TargetAmount: *input.TargetAmount,
			Deadline:     deadline,
		})
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToGoalDTO(g))
	}
}

// ListGoals
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Success 200 {array} GoalDTO
// @Router /goals [get]
// @Security BearerAuth
func ListGoals(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		gs, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToGoalDTOs(gs))
	}
}

// GetGoal
// @Summary Get savings goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} GoalDTO
// @Failure 404 {object} common.ErrorResponse
// @Router /goals/{id} [get]
// @Security BearerAuth
func GetGoal(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		g, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToGoalDTO(g))
	}
}

// UpdateGoal changes name, target or deadline. Progress is never writable.
// @Summary Update savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body UpdateGoalRequest true "Fields to change"
// @Success 200 {object} GoalDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /goals/{id} [put]
// @Security BearerAuth
func UpdateGoal(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[UpdateGoalRequest](c)
		if input == nil {
			return err
		}
		in := goalsvc.UpdateInput{
			Name:         input.Name,
			TargetAmount: input.TargetAmount,
		}
		if input.Deadline != nil {
			if strings.TrimSpace(*input.Deadline) == "" {
				in.ClearDeadline = true
			} else if in.Deadline, err = common.ParseOptionalDate(input.Deadline); err != nil {
				return common.HandleError(c, err)
			}
		}
		g, err := svc.Update(c.UserContext(), userID, id, in)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToGoalDTO(g))
	}
}

// DeleteGoal
// @Summary Delete savings goal
// @Tags goals
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 404 {object} common.ErrorResponse
// @Router /goals/{id} [delete]
// @Security BearerAuth
func DeleteGoal(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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

// Contribute moves money from one of the owner's wallets into the goal.
// @Summary Contribute to own goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body ContributeRequest true "Contribution"
// @Success 201 {object} GoalDTO
// @Failure 400 {object} common.ErrorResponse "Invalid amount or insufficient funds"
// @Failure 404 {object} common.ErrorResponse "Goal or wallet not found"
// @Failure 500 {object} common.ErrorResponse
// @Router /goals/{id}/contributions [post]
// @Security BearerAuth
func Contribute(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[ContributeRequest](c)
		if input == nil {
			return err
		}
		g, err := svc.Contribute(c.UserContext(), userID, id, goalsvc.ContributeInput{
			Amount:   *input.Amount,
			WalletID: input.WalletID,
			Note:     input.Note,
		})
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToGoalDTO(g))
	}
}

// EnableShare turns on the public link and returns its URL.
// @Summary Enable share link
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} common.AckResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /goals/{id}/share [post]
// @Security BearerAuth
func EnableShare(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		url, err := svc.EnableShare(c.UserContext(), userID, id)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(common.AckResponse{OK: true, ShareURL: url})
	}
}

// DisableShare
// @Summary Disable share link
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} common.AckResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /goals/{id}/share [delete]
// @Security BearerAuth
func DisableShare(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.HandleError(c, err)
		}
		if err := svc.DisableShare(c.UserContext(), userID, id); err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(common.AckResponse{OK: true})
	}
}

// GetSharedGoal returns the public projection of a shared goal.
// @Summary View shared goal
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} PublicGoalDTO
// @Failure 404 {object} common.ErrorResponse "Share link is invalid or disabled"
// @Router /public/goals/{token} [get]
func GetSharedGoal(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.SharedProjection(c.UserContext(), c.Params("token"))
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToPublicGoalDTO(p))
	}
}

// ContributeShared funds a shared goal from one of the caller's wallets.
// @Summary Contribute to shared goal
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param request body SharedContributeRequest true "Contribution"
// @Success 200 {object} common.AckResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /public/goals/{token}/contributions [post]
// @Security BearerAuth
func ContributeShared(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[SharedContributeRequest](c)
		if input == nil {
			return err
		}
		err = svc.ContributeShared(c.UserContext(), userID, c.Params("token"), goalsvc.SharedContributeInput{
			Amount:   *input.Amount,
			WalletID: *input.WalletID,
			Note:     input.Note,
		})
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(common.AckResponse{OK: true, Message: sharedContributionMessage})
	}
}
