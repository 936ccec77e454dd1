// Package middleware holds Fiber middleware shared by the route packages.
package middleware

import (
	"github.com/amirasaad/fintrack/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// UserContextKey is where the verified *jwt.Token is stored in Locals.
const UserContextKey = "user"

// JwtProtected verifies the bearer token. Missing, malformed, expired and
// badly signed tokens all get the same 401 body.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   UserContextKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	log.Debugf("JWT rejected: %v", err)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
