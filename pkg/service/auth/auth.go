package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// dummyHash is compared against when the email is unknown so that a failed
// login costs the same whether or not the account exists.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

const resetTokenBytes = 32

// MinPasswordLength is enforced on register and reset.
const MinPasswordLength = 6

// ResetNotifier delivers password reset links.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, u *user.User, link string) error
}

// LogNotifier writes the reset link to the log. It stands in for a mail
// sender in development.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) SendPasswordReset(_ context.Context, u *user.User, link string) error {
	n.Logger.Info("Password reset requested", "userID", u.ID, "email", u.Email, "link", link)
	return nil
}

type Service struct {
	uow           repository.UnitOfWork
	cfg           *config.Auth
	publicBaseURL string
	notifier      ResetNotifier
	logger        *slog.Logger
	now           func() time.Time
}

func New(
	uow repository.UnitOfWork,
	cfg *config.Auth,
	publicBaseURL string,
	notifier ResetNotifier,
	logger *slog.Logger,
) *Service {
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &Service{
		uow:           uow,
		cfg:           cfg,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		notifier:      notifier,
		logger:        logger,
		now:           time.Now,
	}
}

// Register creates an account and returns it with a fresh session token.
func (s *Service) Register(
	ctx context.Context,
	email, password, name string,
) (*user.User, string, error) {
	log := s.logger.With("context", "Register")
	if len(password) < MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	u, err := user.New(email, password, name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.UserRepository()
		_, err := repo.GetByEmail(ctx, u.Email)
		switch {
		case err == nil:
			return domain.ErrAlreadyExists
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, "", err
	}
	token, err := s.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}
	log.Info("Register successful", "userID", u.ID)
	return u, token, nil
}

// Login checks credentials. Unknown email and wrong password fail with the
// same error.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*user.User, string, error) {
	log := s.logger.With("context", "Login")
	u, err := s.uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error("Login lookup failed", "error", err)
			return nil, "", err
		}
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Info("Login failed", "reason", "unknown email")
		return nil, "", user.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		log.Info("Login failed", "reason", "password mismatch", "userID", u.ID)
		return nil, "", user.ErrInvalidCredentials
	}
	token, err := s.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}
	log.Info("Login successful", "userID", u.ID)
	return u, token, nil
}

// GenerateToken signs an HS256 session token for u.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["exp"] = s.now().Add(s.cfg.Jwt.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Jwt.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return tokenString, nil
}

// GetCurrentUserId extracts the user id from a token already verified by
// the JWT middleware.
func (s *Service) GetCurrentUserId(token *jwt.Token) (uuid.UUID, error) {
	if token == nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// ForgotPassword issues a single-use reset token when email belongs to a
// user. It returns nil for unknown emails so callers can answer uniformly.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	log := s.logger.With("context", "ForgotPassword")
	u, err := s.uow.UserRepository().GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("Reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.NewToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expires := s.now().Add(s.cfg.ResetTokenTTL).UTC()
	u.ResetTokenHash = utils.HashToken(token)
	u.ResetTokenExpiresAt = &expires
	if err := s.uow.UserRepository().Update(ctx, u); err != nil {
		return err
	}

	link := s.publicBaseURL + "/reset-password?token=" + token
	if err := s.notifier.SendPasswordReset(ctx, u, link); err != nil {
		log.Error("Reset notification failed", "userID", u.ID, "error", err)
		return err
	}
	return nil
}

// ResetPassword sets a new password if token is valid and clears it.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	hash := utils.HashToken(token)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.UserRepository()
		u, err := repo.GetByResetTokenHash(ctx, hash)
		if errors.Is(err, domain.ErrNotFound) {
			return user.ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		if !u.ResetTokenValid(hash, s.now()) {
			return user.ErrInvalidResetToken
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		u.Password = hashed
		u.ResetTokenHash = ""
		u.ResetTokenExpiresAt = nil
		if err := repo.Update(ctx, u); err != nil {
			return err
		}
		s.logger.Info("Password reset", "userID", u.ID)
		return nil
	})
}
