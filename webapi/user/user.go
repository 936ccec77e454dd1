package user

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	authweb "github.com/amirasaad/fintrack/webapi/auth"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers user-related HTTP routes.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Put("/users/me", middleware.JwtProtected(cfg.Auth.Jwt), UpdateProfile(userSvc, authSvc))
}

// UpdateProfile changes the display name of the current user.
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileInput true "Profile data"
// @Success 200 {object} authweb.UserDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /users/me [put]
// @Security BearerAuth
func UpdateProfile(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[UpdateProfileInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.UpdateProfile(c.UserContext(), userID, input.Name)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(authweb.ToUserDTO(u))
	}
}
