package transaction

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is a ledger entry. Dates are YYYY-MM-DD.
type CreateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description" validate:"required,max=255"`
	Type        string           `json:"type" validate:"required,oneof=income expense"`
	Category    string           `json:"category" validate:"max=100"`
	Date        string           `json:"date" validate:"required"`
	Wallet      string           `json:"wallet" validate:"max=100"`
	Notes       string           `json:"notes" validate:"max=1000"`
}

type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Type        *string          `json:"type" validate:"omitempty,oneof=income expense"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Date        *string          `json:"date"`
	Wallet      *string          `json:"wallet" validate:"omitempty,max=100"`
	Notes       *string          `json:"notes" validate:"omitempty,max=1000"`
}

type TransactionDTO struct {
	ID          uuid.UUID `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Wallet      string    `json:"wallet"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToTransactionDTO(t *transaction.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          t.ID,
		Amount:      common.Amount(t.Amount),
		Description: t.Description,
		Type:        string(t.Type),
		Category:    t.Category,
		Date:        common.FormatDate(t.Date),
		Wallet:      t.Wallet,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTransactionDTOs(ts []*transaction.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTransactionDTO(t))
	}
	return out
}
