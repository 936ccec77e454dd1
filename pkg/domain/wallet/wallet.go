// Package wallet defines user-owned money containers.
package wallet

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type enumerates where the money in a wallet lives.
type Type string

const (
	TypeBank        Type = "bank"
	TypeMobileMoney Type = "mobile_money"
	TypeCreditCard  Type = "credit_card"
	TypeCash        Type = "cash"
	TypeCrypto      Type = "crypto"
	TypeOther       Type = "other"
)

// DefaultCurrency is used when a wallet is created without a currency.
const DefaultCurrency = "USD"

// Valid reports whether t is one of the known wallet types.
func (t Type) Valid() bool {
	switch t {
	case TypeBank, TypeMobileMoney, TypeCreditCard, TypeCash, TypeCrypto, TypeOther:
		return true
	}
	return false
}

// Wallet is a named balance owned by exactly one user.
type Wallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      Type
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateBalance rejects negative balances and fractions of a cent.
func ValidateBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance must not be negative", domain.ErrValidation)
	}
	if !domain.FitsScale(balance, domain.MoneyPlaces) {
		return fmt.Errorf("%w: balance allows at most %d decimal places", domain.ErrValidation, domain.MoneyPlaces)
	}
	return nil
}

// New validates the input and returns a wallet ready to be persisted.
func New(userID uuid.UUID, name string, typ Type, balance decimal.Decimal, currency string) (*Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", domain.ErrValidation)
	}
	if err := ValidateBalance(balance); err != nil {
		return nil, err
	}
	if typ == "" {
		typ = TypeOther
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown wallet type %q", domain.ErrValidation, typ)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      typ,
		Balance:   balance,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanDebit reports whether the wallet holds at least amount.
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Snapshot copies the wallet fields recorded on a contribution.
func (w *Wallet) Snapshot() Snapshot {
	return Snapshot{Name: w.Name, Type: w.Type}
}

// Snapshot is the by-value copy of a wallet's identity taken when money
// leaves it. It is never updated when the wallet is renamed.
type Snapshot struct {
	Name string
	Type Type
}
