// Package subscription models recurring payments.
package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingCycle is how often a subscription charges.
type BillingCycle string

const (
	CycleDaily     BillingCycle = "daily"
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

// Status of a subscription.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
)

// Subscription is a recurring charge tracked by a user.
type Subscription struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Amount          decimal.Decimal
	BillingCycle    BillingCycle
	NextBillingDate time.Time
	Category        string
	Status          Status
	Website         string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the fields shared by create and update.
func (s *Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if s.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if !domain.FitsScale(s.Amount, domain.MoneyPlaces) {
		return fmt.Errorf("%w: amount allows at most %d decimal places", domain.ErrValidation, domain.MoneyPlaces)
	}
	switch s.BillingCycle {
	case CycleDaily, CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
	default:
		return fmt.Errorf("%w: unknown billing cycle %q", domain.ErrValidation, s.BillingCycle)
	}
	switch s.Status {
	case StatusActive, StatusCancelled, StatusPending:
	default:
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, s.Status)
	}
	if s.NextBillingDate.IsZero() {
		return fmt.Errorf("%w: next billing date is required", domain.ErrValidation)
	}
	return nil
}

// Advance returns the billing date one cycle after from. Month based cycles
// land on the last day of the target month when from's day does not exist
// there.
func (c BillingCycle) Advance(from time.Time) time.Time {
	switch c {
	case CycleDaily:
		return from.AddDate(0, 0, 1)
	case CycleWeekly:
		return from.AddDate(0, 0, 7)
	case CycleQuarterly:
		return addMonths(from, 3)
	case CycleYearly:
		return addMonths(from, 12)
	default:
		return addMonths(from, 1)
	}
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(d, last)-1)
}
