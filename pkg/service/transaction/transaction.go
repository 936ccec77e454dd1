// Package transaction provides business logic for income and expense entries.
package transaction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields of a new transaction.
type CreateInput struct {
	Amount      decimal.Decimal
	Description string
	Type        transaction.Type
	Category    string
	Date        time.Time
	Wallet      string
	Notes       string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Amount      *decimal.Decimal
	Description *string
	Type        *transaction.Type
	Category    *string
	Date        *time.Time
	Wallet      *string
	Notes       *string
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*transaction.Transaction, error) {
	now := time.Now().UTC()
	t := &transaction.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Date:        transaction.TruncateDate(in.Date),
		Wallet:      strings.TrimSpace(in.Wallet),
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.uow.TransactionRepository().Create(ctx, t); err != nil {
		s.logger.Error("Create transaction failed", "userID", userID, "error", err)
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	return s.uow.TransactionRepository().ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	return s.uow.TransactionRepository().Get(ctx, id, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in UpdateInput,
) (t *transaction.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.TransactionRepository()
		t, err = repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if in.Amount != nil {
			t.Amount = *in.Amount
		}
		if in.Description != nil {
			t.Description = strings.TrimSpace(*in.Description)
		}
		if in.Type != nil {
			t.Type = *in.Type
		}
		if in.Category != nil {
			t.Category = strings.TrimSpace(*in.Category)
		}
		if in.Date != nil {
			t.Date = transaction.TruncateDate(*in.Date)
		}
		if in.Wallet != nil {
			t.Wallet = strings.TrimSpace(*in.Wallet)
		}
		if in.Notes != nil {
			t.Notes = *in.Notes
		}
		if err := t.Validate(); err != nil {
			return err
		}
		t.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.TransactionRepository().Delete(ctx, id, userID)
}
