// Package investment models holdings in market assets.
package investment

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType of a holding.
type AssetType string

const (
	AssetStock  AssetType = "stock"
	AssetCrypto AssetType = "crypto"
	AssetETF    AssetType = "etf"
	AssetBond   AssetType = "bond"
	AssetOther  AssetType = "other"
)

// Status of a holding.
type Status string

const (
	StatusActive Status = "active"
	StatusSold   Status = "sold"
)

// Investment is a position in one symbol.
type Investment struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Symbol       string
	Name         string
	AssetType    AssetType
	Quantity     decimal.Decimal
	AverageCost  decimal.Decimal
	Currency     string
	CurrentPrice *decimal.Decimal
	Notes        string
	PurchaseDate time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize upper-cases symbol and currency and applies defaults.
func (i *Investment) Normalize() {
	i.Symbol = strings.ToUpper(strings.TrimSpace(i.Symbol))
	i.Currency = strings.ToUpper(strings.TrimSpace(i.Currency))
	if i.Currency == "" {
		i.Currency = "USD"
	}
	if i.Status == "" {
		i.Status = StatusActive
	}
	if i.AssetType == "" {
		i.AssetType = AssetStock
	}
	if strings.TrimSpace(i.Name) == "" {
		i.Name = i.Symbol
	}
}

// Validate checks the fields shared by create and update.
func (i *Investment) Validate() error {
	if i.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", domain.ErrValidation)
	}
	switch i.AssetType {
	case AssetStock, AssetCrypto, AssetETF, AssetBond, AssetOther:
	default:
		return fmt.Errorf("%w: unknown asset type %q", domain.ErrValidation, i.AssetType)
	}
	switch i.Status {
	case StatusActive, StatusSold:
	default:
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, i.Status)
	}
	if !i.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	if !domain.FitsScale(i.Quantity, domain.QuantityPlaces) {
		return fmt.Errorf("%w: quantity allows at most %d decimal places", domain.ErrValidation, domain.QuantityPlaces)
	}
	if i.AverageCost.IsNegative() {
		return fmt.Errorf("%w: average cost must not be negative", domain.ErrValidation)
	}
	if !domain.FitsScale(i.AverageCost, domain.PricePlaces) {
		return fmt.Errorf("%w: average cost allows at most %d decimal places", domain.ErrValidation, domain.PricePlaces)
	}
	if i.CurrentPrice != nil && (i.CurrentPrice.IsNegative() || !domain.FitsScale(*i.CurrentPrice, domain.PricePlaces)) {
		return fmt.Errorf("%w: current price must be a non-negative number with at most %d decimal places", domain.ErrValidation, domain.PricePlaces)
	}
	return nil
}

// CostBasis is quantity times average cost.
func (i *Investment) CostBasis() decimal.Decimal {
	return i.Quantity.Mul(i.AverageCost)
}

// MarketValue is quantity times the last known price, or the cost basis
// when no price is known.
func (i *Investment) MarketValue() decimal.Decimal {
	if i.CurrentPrice == nil {
		return i.CostBasis()
	}
	return i.Quantity.Mul(*i.CurrentPrice)
}
