// Package common holds the request binding, error mapping and response
// helpers shared by every route package.
package common

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	goalsvc "github.com/amirasaad/fintrack/pkg/service/goal"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

const internalErrorMessage = "something went wrong, please try again later"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AckResponse acknowledges an action that has no resource to return.
type AckResponse struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message,omitempty"`
	ShareURL string `json:"shareUrl,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ErrorResponseJSON writes {"error": msg} with status.
func ErrorResponseJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// StatusFor maps an error to its HTTP status and the message shown to the
// client. Unknown errors are hidden behind a generic message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, user.ErrInvalidResetToken):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, user.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, user.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrShareLinkInvalid):
		return fiber.StatusNotFound, domain.ErrShareLinkInvalid.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict, domain.ErrAlreadyExists.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests, domain.ErrRateLimited.Error()
	case errors.Is(err, domain.ErrMarketDataUnavailable):
		return fiber.StatusBadGateway, domain.ErrMarketDataUnavailable.Error()
	case errors.Is(err, goalsvc.ErrContributionFailed):
		return fiber.StatusInternalServerError, goalsvc.ErrContributionFailed.Error()
	default:
		return fiber.StatusInternalServerError, internalErrorMessage
	}
}

// HandleError writes the mapped error response. Server errors are logged
// with the request path.
func HandleError(c *fiber.Ctx, err error) error {
	status, msg := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Errorw("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return ErrorResponseJSON(c, status, msg)
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// On failure the 400 response has been written and nil is returned with the error.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, validationMessage(err))
	}
	return &input, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min", "max", "len":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ParseID reads a UUID path parameter. Anything that is not a UUID cannot
// name an existing row and is reported as not found.
func ParseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

// CurrentUserID resolves the owner id from the token stored by the JWT
// middleware.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals(middleware.UserContextKey).(*jwt.Token)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return authSvc.GetCurrentUserId(token)
}

// Amount renders a decimal as a JSON number.
func Amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// OptionalAmount is Amount for nullable fields.
func OptionalAmount(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// FormatDate renders a calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be formatted YYYY-MM-DD", domain.ErrValidation)
	}
	return t.UTC(), nil
}

// ParseOptionalDate parses s when non-nil. An empty string yields nil.
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
