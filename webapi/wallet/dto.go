package wallet

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateWalletRequest struct {
	Name     string           `json:"name" validate:"required,max=100"`
	Type     string           `json:"type" validate:"omitempty,oneof=bank mobile_money credit_card cash crypto other"`
	Balance  *decimal.Decimal `json:"balance"`
	Currency string           `json:"currency" validate:"omitempty,len=3,alpha"`
}

type UpdateWalletRequest struct {
	Name     *string          `json:"name" validate:"omitempty,max=100"`
	Type     *string          `json:"type" validate:"omitempty,oneof=bank mobile_money credit_card cash crypto other"`
	Balance  *decimal.Decimal `json:"balance"`
	Currency *string          `json:"currency" validate:"omitempty,len=3,alpha"`
}

type WalletDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToWalletDTO(w *wallet.Wallet) WalletDTO {
	return WalletDTO{
		ID:        w.ID,
		Name:      w.Name,
		Type:      string(w.Type),
		Balance:   common.Amount(w.Balance),
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func ToWalletDTOs(ws []*wallet.Wallet) []WalletDTO {
	out := make([]WalletDTO, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToWalletDTO(w))
	}
	return out
}
