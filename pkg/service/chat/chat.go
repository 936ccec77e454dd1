// Package chat provides the global community message feed.
package chat

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain/chat"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns the newest messages first. limit is clamped to
// [1, MaxLimit]; zero or negative selects DefaultLimit.
func (s *Service) List(ctx context.Context, limit int) ([]*chat.Message, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return s.uow.ChatRepository().List(ctx, limit)
}

// Post appends a message, copying the sender's current name and email.
func (s *Service) Post(ctx context.Context, userID uuid.UUID, content string) (msg *chat.Message, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().Get(ctx, userID)
		if err != nil {
			return err
		}
		msg, err = chat.NewMessage(u.ID, u.DisplayName(), u.Email, content)
		if err != nil {
			return err
		}
		return uow.ChatRepository().Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Chat message posted", "userID", userID, "messageID", msg.ID)
	return msg, nil
}
