package investment

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/investment"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInvestmentRequest struct {
	Symbol       string           `json:"symbol" validate:"required,max=15"`
	Name         string           `json:"name" validate:"max=100"`
	AssetType    string           `json:"asset_type" validate:"omitempty,oneof=stock crypto etf bond other"`
	Quantity     *decimal.Decimal `json:"quantity" validate:"required"`
	AverageCost  *decimal.Decimal `json:"average_cost" validate:"required"`
	Currency     string           `json:"currency" validate:"omitempty,len=3,alpha"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	Notes        string           `json:"notes" validate:"max=1000"`
	PurchaseDate string           `json:"purchase_date"`
	Status       string           `json:"status" validate:"omitempty,oneof=active sold"`
}

type UpdateInvestmentRequest struct {
	Symbol       *string          `json:"symbol" validate:"omitempty,max=15"`
	Name         *string          `json:"name" validate:"omitempty,max=100"`
	AssetType    *string          `json:"asset_type" validate:"omitempty,oneof=stock crypto etf bond other"`
	Quantity     *decimal.Decimal `json:"quantity"`
	AverageCost  *decimal.Decimal `json:"average_cost"`
	Currency     *string          `json:"currency" validate:"omitempty,len=3,alpha"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	Notes        *string          `json:"notes" validate:"omitempty,max=1000"`
	PurchaseDate *string          `json:"purchase_date"`
	Status       *string          `json:"status" validate:"omitempty,oneof=active sold"`
}

type InvestmentDTO struct {
	ID           uuid.UUID `json:"id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	AssetType    string    `json:"asset_type"`
	Quantity     float64   `json:"quantity"`
	AverageCost  float64   `json:"average_cost"`
	Currency     string    `json:"currency"`
	CurrentPrice *float64  `json:"current_price"`
	CostBasis    float64   `json:"cost_basis"`
	MarketValue  float64   `json:"market_value"`
	Notes        string    `json:"notes,omitempty"`
	PurchaseDate string    `json:"purchase_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToInvestmentDTO(i *investment.Investment) InvestmentDTO {
	return InvestmentDTO{
		ID:           i.ID,
		Symbol:       i.Symbol,
		Name:         i.Name,
		AssetType:    string(i.AssetType),
		Quantity:     common.Amount(i.Quantity),
		AverageCost:  common.Amount(i.AverageCost),
		Currency:     i.Currency,
		CurrentPrice: common.OptionalAmount(i.CurrentPrice),
		CostBasis:    common.Amount(i.CostBasis()),
		MarketValue:  common.Amount(i.MarketValue()),
		Notes:        i.Notes,
		PurchaseDate: common.FormatDate(i.PurchaseDate),
		Status:       string(i.Status),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func ToInvestmentDTOs(is []*investment.Investment) []InvestmentDTO {
	out := make([]InvestmentDTO, 0, len(is))
	for _, i := range is {
		out = append(out, ToInvestmentDTO(i))
	}
	return out
}
