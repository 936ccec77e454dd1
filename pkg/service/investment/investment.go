// Package investment provides business logic for market holdings.
package investment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/investment"
	"github.com/amirasaad/fintrack/pkg/domain/market"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource returns the latest quote for a symbol on behalf of caller.
type PriceSource interface {
	Quote(ctx context.Context, caller, symbol string) (*market.Quote, error)
}

// CreateInput carries the fields of a new holding.
type CreateInput struct {
	Symbol       string
	Name         string
	AssetType    investment.AssetType
	Quantity     decimal.Decimal
	AverageCost  decimal.Decimal
	Currency     string
	CurrentPrice *decimal.Decimal
	Notes        string
	PurchaseDate time.Time
	Status       investment.Status
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Symbol       *string
	Name         *string
	AssetType    *investment.AssetType
	Quantity     *decimal.Decimal
	AverageCost  *decimal.Decimal
	Currency     *string
	CurrentPrice *decimal.Decimal
	Notes        *string
	PurchaseDate *time.Time
	Status       *investment.Status
}

type Service struct {
	uow    repository.UnitOfWork
	prices PriceSource
	logger *slog.Logger
}

// New creates the service. prices may be nil, in which case RefreshPrice
// is unavailable.
func New(uow repository.UnitOfWork, prices PriceSource, logger *slog.Logger) *Service {
	return &Service{uow: uow, prices: prices, logger: logger}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*investment.Investment, error) {
	now := time.Now().UTC()
	inv := &investment.Investment{
		ID:           uuid.New(),
		UserID:       userID,
		Symbol:       in.Symbol,
		Name:         in.Name,
		AssetType:    in.AssetType,
		Quantity:     in.Quantity,
		AverageCost:  in.AverageCost,
		Currency:     in.Currency,
		CurrentPrice: in.CurrentPrice,
		Notes:        in.Notes,
		PurchaseDate: purchaseDate(in.PurchaseDate, now),
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	inv.Normalize()
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := s.uow.InvestmentRepository().Create(ctx, inv); err != nil {
		s.logger.Error("Create investment failed", "userID", userID, "error", err)
		return nil, err
	}
	return inv, nil
}

func purchaseDate(t, fallback time.Time) time.Time {
	if t.IsZero() {
		t = fallback
	}
	return transaction.TruncateDate(t)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error) {
	return s.uow.InvestmentRepository().ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*investment.Investment, error) {
	return s.uow.InvestmentRepository().Get(ctx, id, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in UpdateInput,
) (inv *investment.Investment, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.InvestmentRepository()
		inv, err = repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if in.Symbol != nil {
			inv.Symbol = *in.Symbol
		}
		if in.Name != nil {
			inv.Name = strings.TrimSpace(*in.Name)
		}
		if in.AssetType != nil {
			inv.AssetType = *in.AssetType
		}
		if in.Quantity != nil {
			inv.Quantity = *in.Quantity
		}
		if in.AverageCost != nil {
			inv.AverageCost = *in.AverageCost
		}
		if in.Currency != nil {
			inv.Currency = *in.Currency
		}
		if in.CurrentPrice != nil {
			price := *in.CurrentPrice
			inv.CurrentPrice = &price
		}
		if in.Notes != nil {
			inv.Notes = *in.Notes
		}
		if in.PurchaseDate != nil {
			inv.PurchaseDate = transaction.TruncateDate(*in.PurchaseDate)
		}
		if in.Status != nil {
			inv.Status = *in.Status
		}
		inv.Normalize()
		if err := inv.Validate(); err != nil {
			return err
		}
		inv.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// RefreshPrice stores the latest quoted price of the holding's symbol.
func (s *Service) RefreshPrice(ctx context.Context, userID, id uuid.UUID) (*investment.Investment, error) {
	log := s.logger.With("context", "RefreshPrice", "userID", userID, "investmentID", id)
	inv, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if s.prices == nil {
		return nil, domain.ErrMarketDataUnavailable
	}
	q, err := s.prices.Quote(ctx, userID.String(), inv.Symbol)
	if err != nil {
		log.Warn("Quote lookup failed", "symbol", inv.Symbol, "error", err)
		return nil, err
	}
	price := q.Price.Round(domain.PricePlaces)
	updated, err := s.Update(ctx, userID, id, UpdateInput{CurrentPrice: &price})
	if err != nil {
		return nil, err
	}
	log.Info("Price refreshed", "symbol", inv.Symbol, "price", price.String())
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.InvestmentRepository().Delete(ctx, id, userID)
}
