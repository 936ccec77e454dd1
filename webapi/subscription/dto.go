package subscription

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/subscription"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateSubscriptionRequest struct {
	Name            string           `json:"name" validate:"required,max=100"`
	Amount          *decimal.Decimal `json:"amount" validate:"required"`
	BillingCycle    string           `json:"billing_cycle" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	NextBillingDate string           `json:"next_billing_date" validate:"required"`
	Category        string           `json:"category" validate:"max=100"`
	Status          string           `json:"status" validate:"omitempty,oneof=active cancelled pending"`
	Website         string           `json:"website" validate:"omitempty,max=255"`
	Notes           string           `json:"notes" validate:"max=1000"`
}

type UpdateSubscriptionRequest struct {
	Name            *string          `json:"name" validate:"omitempty,max=100"`
	Amount          *decimal.Decimal `json:"amount"`
	BillingCycle    *string          `json:"billing_cycle" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	NextBillingDate *string          `json:"next_billing_date"`
	Category        *string          `json:"category" validate:"omitempty,max=100"`
	Status          *string          `json:"status" validate:"omitempty,oneof=active cancelled pending"`
	Website         *string          `json:"website" validate:"omitempty,max=255"`
	Notes           *string          `json:"notes" validate:"omitempty,max=1000"`
}

type SubscriptionDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Amount          float64   `json:"amount"`
	BillingCycle    string    `json:"billing_cycle"`
	NextBillingDate string    `json:"next_billing_date"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	Website         string    `json:"website,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToSubscriptionDTO(s *subscription.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:              s.ID,
		Name:            s.Name,
		Amount:          common.Amount(s.Amount),
		BillingCycle:    string(s.BillingCycle),
		NextBillingDate: common.FormatDate(s.NextBillingDate),
		Category:        s.Category,
		Status:          string(s.Status),
		Website:         s.Website,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToSubscriptionDTOs(subs []*subscription.Subscription) []SubscriptionDTO {
	out := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, ToSubscriptionDTO(s))
	}
	return out
}
