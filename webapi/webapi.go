// Package webapi provides the HTTP surface of fintrack.
// It is organized into sub-packages per resource:
// - auth: registration, login and password reset
// - user: profile endpoints
// - wallet, transaction, subscription, investment: owner-scoped CRUD
// - goal: savings goals, contributions and share links
// - chat: the community message feed
// - market: quotes, history and symbol search
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/fintrack/pkg/app"
	authweb "github.com/amirasaad/fintrack/webapi/auth"
	chatweb "github.com/amirasaad/fintrack/webapi/chat"
	"github.com/amirasaad/fintrack/webapi/common"
	goalweb "github.com/amirasaad/fintrack/webapi/goal"
	investmentweb "github.com/amirasaad/fintrack/webapi/investment"
	marketweb "github.com/amirasaad/fintrack/webapi/market"
	subscriptionweb "github.com/amirasaad/fintrack/webapi/subscription"
	transactionweb "github.com/amirasaad/fintrack/webapi/transaction"
	userweb "github.com/amirasaad/fintrack/webapi/user"
	walletweb "github.com/amirasaad/fintrack/webapi/wallet"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	fiberApp.Use(limiter.New(limiter.Config{
		Max:          cfg.RateLimit.MaxRequests,
		Expiration:   cfg.RateLimit.Window,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "too many requests")
		},
	}))
	fiberApp.Use(recover.New())
	if cfg.Env != "test" {
		fiberApp.Use(logger.New())
	}

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("fintrack API is running")
	})

	authweb.Routes(fiberApp, a.AuthService, a.UserService, cfg)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, cfg)
	walletweb.Routes(fiberApp, a.WalletService, a.AuthService, cfg)
	transactionweb.Routes(fiberApp, a.TransactionService, a.AuthService, cfg)
	subscriptionweb.Routes(fiberApp, a.SubscriptionService, a.AuthService, cfg)
	investmentweb.Routes(fiberApp, a.InvestmentService, a.AuthService, cfg)
	goalweb.Routes(fiberApp, a.GoalService, a.AuthService, cfg)
	chatweb.Routes(fiberApp, a.ChatService, a.AuthService, cfg)
	marketweb.Routes(fiberApp, a.QuoteGateway, a.AuthService, cfg)

	fiberApp.Use(func(c *fiber.Ctx) error {
		return common.ErrorResponseJSON(c, fiber.StatusNotFound, "route not found")
	})
	return fiberApp
}

// errorHandler catches errors that escape a handler, including panics
// turned into errors by the recover middleware.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg := strings.ToLower(fe.Message)
		if fe.Code >= fiber.StatusInternalServerError {
			msg = "something went wrong, please try again later"
		}
		return common.ErrorResponseJSON(c, fe.Code, msg)
	}
	return common.HandleError(c, err)
}

// clientKey uses X-Forwarded-For when behind a proxy, then X-Real-IP, then
// the peer address.
func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		if i := strings.Index(forwardedFor, ","); i != -1 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
