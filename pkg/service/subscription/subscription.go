// Package subscription provides business logic for recurring payments.
package subscription

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/subscription"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields of a new subscription. An empty cycle
// means monthly and an empty status means active.
type CreateInput struct {
	Name            string
	Amount          decimal.Decimal
	BillingCycle    subscription.BillingCycle
	NextBillingDate time.Time
	Category        string
	Status          subscription.Status
	Website         string
	Notes           string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name            *string
	Amount          *decimal.Decimal
	BillingCycle    *subscription.BillingCycle
	NextBillingDate *time.Time
	Category        *string
	Status          *subscription.Status
	Website         *string
	Notes           *string
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*subscription.Subscription, error) {
	if in.BillingCycle == "" {
		in.BillingCycle = subscription.CycleMonthly
	}
	if in.Status == "" {
		in.Status = subscription.StatusActive
	}
	now := time.Now().UTC()
	sub := &subscription.Subscription{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            strings.TrimSpace(in.Name),
		Amount:          in.Amount,
		BillingCycle:    in.BillingCycle,
		NextBillingDate: transaction.TruncateDate(in.NextBillingDate),
		Category:        strings.TrimSpace(in.Category),
		Status:          in.Status,
		Website:         strings.TrimSpace(in.Website),
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if err := s.uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		s.logger.Error("Create subscription failed", "userID", userID, "error", err)
		return nil, err
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*subscription.Subscription, error) {
	return s.uow.SubscriptionRepository().ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*subscription.Subscription, error) {
	return s.uow.SubscriptionRepository().Get(ctx, id, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in UpdateInput,
) (sub *subscription.Subscription, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.SubscriptionRepository()
		sub, err = repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			sub.Name = strings.TrimSpace(*in.Name)
		}
		if in.Amount != nil {
			sub.Amount = *in.Amount
		}
		if in.BillingCycle != nil {
			sub.BillingCycle = *in.BillingCycle
		}
		if in.NextBillingDate != nil {
			sub.NextBillingDate = transaction.TruncateDate(*in.NextBillingDate)
		}
		if in.Category != nil {
			sub.Category = strings.TrimSpace(*in.Category)
		}
		if in.Status != nil {
			sub.Status = *in.Status
		}
		if in.Website != nil {
			sub.Website = strings.TrimSpace(*in.Website)
		}
		if in.Notes != nil {
			sub.Notes = *in.Notes
		}
		if err := sub.Validate(); err != nil {
			return err
		}
		sub.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Renew moves the next billing date forward by one cycle. Cancelled
// subscriptions are left as they are.
func (s *Service) Renew(ctx context.Context, userID, id uuid.UUID) (sub *subscription.Subscription, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.SubscriptionRepository()
		sub, err = repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if sub.Status == subscription.StatusCancelled {
			return nil
		}
		sub.NextBillingDate = sub.BillingCycle.Advance(sub.NextBillingDate)
		sub.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.SubscriptionRepository().Delete(ctx, id, userID)
}
