// Package transaction models income and expense entries of a user.
package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is either income or expense.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

// Transaction is a single ledger line. The wallet is stored as a free-text
// label and is not a reference.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Type        Type
	Category    string
	Date        time.Time
	Wallet      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields shared by create and update.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return fmt.Errorf("%w: type must be income or expense", domain.ErrValidation)
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("%w: amount must not be zero", domain.ErrValidation)
	}
	if !domain.FitsScale(t.Amount, domain.MoneyPlaces) {
		return fmt.Errorf("%w: amount allows at most %d decimal places", domain.ErrValidation, domain.MoneyPlaces)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}

// TruncateDate drops the time-of-day part of t in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
