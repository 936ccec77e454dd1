package goal

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/goal"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateGoalRequest struct {
	Name         string           `json:"name" validate:"required,max=100"`
	TargetAmount *decimal.Decimal `json:"target_amount" validate:"required"`
	Deadline     string           `json:"deadline"`
}

// UpdateGoalRequest changes the goal header only. An empty deadline
// clears it.
type UpdateGoalRequest struct {
	Name         *string          `json:"name" validate:"omitempty,max=100"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	Deadline     *string          `json:"deadline"`
}

// ContributeRequest is an owner contribution. Without wallet_id the goal
// is credited and no wallet is debited.
type ContributeRequest struct {
	Amount   *decimal.Decimal `json:"amount" validate:"required"`
	WalletID *uuid.UUID       `json:"wallet_id"`
	Note     string           `json:"note" validate:"max=500"`
}

// SharedContributeRequest funds a shared goal from one of the caller's wallets.
type SharedContributeRequest struct {
	Amount   *decimal.Decimal `json:"amount" validate:"required"`
	WalletID *uuid.UUID       `json:"wallet_id" validate:"required"`
	Note     string           `json:"note" validate:"max=500"`
}

type WalletSnapshotDTO struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type ContributionDTO struct {
	ID              uuid.UUID          `json:"id"`
	Amount          float64            `json:"amount"`
	ContributorName string             `json:"contributor_name,omitempty"`
	Wallet          *WalletSnapshotDTO `json:"wallet,omitempty"`
	Note            string             `json:"note,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type GoalDTO struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	TargetAmount  float64           `json:"target_amount"`
	CurrentAmount float64           `json:"current_amount"`
	Progress      float64           `json:"progress"`
	Deadline      *string           `json:"deadline"`
	ShareEnabled  bool              `json:"share_enabled"`
	Contributions []ContributionDTO `json:"contributions"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// PublicGoalDTO is everything a share-link holder may see.
type PublicGoalDTO struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
}

func ToGoalDTO(g *goal.Goal) GoalDTO {
	dto := GoalDTO{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  common.Amount(g.TargetAmount),
		CurrentAmount: common.Amount(g.CurrentAmount),
		Progress:      common.Amount(g.Progress()),
		ShareEnabled:  g.ShareEnabled,
		Contributions: make([]ContributionDTO, 0, len(g.Contributions)),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	if g.Deadline != nil {
		d := common.FormatDate(*g.Deadline)
		dto.Deadline = &d
	}
	for _, c := range g.Contributions {
		cd := ContributionDTO{
			ID:              c.ID,
			Amount:          common.Amount(c.Amount),
			ContributorName: c.ContributorName,
			Note:            c.Note,
			CreatedAt:       c.CreatedAt,
		}
		if c.Wallet != nil {
			cd.Wallet = &WalletSnapshotDTO{Name: c.Wallet.Name, Type: string(c.Wallet.Type)}
		}
		dto.Contributions = append(dto.Contributions, cd)
	}
	return dto
}

func ToGoalDTOs(gs []*goal.Goal) []GoalDTO {
	out := make([]GoalDTO, 0, len(gs))
	for _, g := range gs {
		out = append(out, ToGoalDTO(g))
	}
	return out
}

func ToPublicGoalDTO(p goal.Projection) PublicGoalDTO {
	return PublicGoalDTO{
		Name:          p.Name,
		TargetAmount:  common.Amount(p.TargetAmount),
		CurrentAmount: common.Amount(p.CurrentAmount),
	}
}
