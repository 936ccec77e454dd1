package auth

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

const forgotPasswordAck = "if the email is registered, a reset link has been sent"

func Routes(app *fiber.App, authSvc *authsvc.Service, userSvc *usersvc.Service, cfg *config.App) {
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
	app.Post("/auth/forgot-password", ForgotPassword(authSvc))
	app.Post("/auth/reset-password", ResetPassword(authSvc))
	app.Get("/auth/me", middleware.JwtProtected(cfg.Auth.Jwt), Me(authSvc, userSvc))
}

// Register creates an account and signs the user in.
// @Summary Register
// @Description Create an account with email, password and display name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Account data"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		u, token, err := authSvc.Register(c.UserContext(), input.Email, input.Password, input.Name)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(SessionResponse{Token: token, User: ToUserDTO(u)})
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Failure 429 {object} common.ErrorResponse
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, token, err := authSvc.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(SessionResponse{Token: token, User: ToUserDTO(u)})
	}
}

// ForgotPassword always acknowledges so the response does not reveal
// whether the email is registered.
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordInput true "Email"
// @Success 200 {object} common.AckResponse
// @Failure 400 {object} common.ErrorResponse
// @Router /auth/forgot-password [post]
func ForgotPassword(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ForgotPasswordInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.ForgotPassword(c.UserContext(), input.Email); err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(common.AckResponse{OK: true, Message: forgotPasswordAck})
	}
}

// ResetPassword sets a new password using a reset token.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordInput true "Token and new password"
// @Success 200 {object} common.AckResponse
// @Failure 400 {object} common.ErrorResponse
// @Router /auth/reset-password [post]
func ResetPassword(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ResetPasswordInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.ResetPassword(c.UserContext(), input.Token, input.Password); err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(common.AckResponse{OK: true, Message: "password updated"})
	}
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 401 {object} common.ErrorResponse
// @Router /auth/me [get]
// @Security BearerAuth
func Me(authSvc *authsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		u, err := userSvc.GetUser(c.UserContext(), userID)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(ToUserDTO(u))
	}
}
