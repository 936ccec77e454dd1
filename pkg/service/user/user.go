// Package user provides business logic for profile operations.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (*user.User, error) {
	return s.uow.UserRepository().Get(ctx, userID)
}

// UpdateProfile changes the display name of a user.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (u *user.User, err error) {
	log := s.logger.With("context", "UpdateProfile", "userID", userID)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.UserRepository()
		u, err = repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		u.Name = name
		return repo.Update(ctx, u)
	})
	if err != nil {
		log.Error("UpdateProfile failed", "error", err)
		return nil, err
	}
	log.Info("UpdateProfile successful")
	return u, nil
}
