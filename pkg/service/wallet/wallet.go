// Package wallet provides business logic for wallet management.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields of a new wallet.
type CreateInput struct {
	Name     string
	Type     wallet.Type
	Balance  decimal.Decimal
	Currency string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Type     *wallet.Type
	Balance  *decimal.Decimal
	Currency *string
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*wallet.Wallet, error) {
	w, err := wallet.New(userID, in.Name, in.Type, in.Balance, in.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.uow.WalletRepository().Create(ctx, w); err != nil {
		s.logger.Error("Create wallet failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("Wallet created", "userID", userID, "walletID", w.ID)
	return w, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	return s.uow.WalletRepository().ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*wallet.Wallet, error) {
	return s.uow.WalletRepository().Get(ctx, id, userID)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (w *wallet.Wallet, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.WalletRepository()
		w, err = repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: wallet name is required", domain.ErrValidation)
			}
			w.Name = name
		}
		if in.Type != nil {
			if !in.Type.Valid() {
				return fmt.Errorf("%w: unknown wallet type %q", domain.ErrValidation, *in.Type)
			}
			w.Type = *in.Type
		}
		if in.Balance != nil {
			if err := wallet.ValidateBalance(*in.Balance); err != nil {
				return err
			}
			w.Balance = *in.Balance
		}
		if in.Currency != nil {
			w.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
		}
		w.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.uow.WalletRepository().Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("Wallet deleted", "userID", userID, "walletID", id)
	return nil
}
