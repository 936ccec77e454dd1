package repository

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/investment"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type investmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates an investment repository on db.
func NewInvestmentRepository(db *gorm.DB) repository.InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) Create(ctx context.Context, i *investment.Investment) error {
	m := investmentFromDomain(i)
	return insert(r.db.WithContext(ctx), &m)
}

func (r *investmentRepository) Get(ctx context.Context, id, userID uuid.UUID) (*investment.Investment, error) {
	var m Investment
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return investmentToDomain(&m), nil
}

func (r *investmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error) {
	var rows []Investment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domainErr(err)
	}
	out := make([]*investment.Investment, 0, len(rows))
	for i := range rows {
		out = append(out, investmentToDomain(&rows[i]))
	}
	return out, nil
}

func (r *investmentRepository) Update(ctx context.Context, i *investment.Investment) error {
	res := r.db.WithContext(ctx).Model(&Investment{}).
		Where("id = ? AND user_id = ?", i.ID, i.UserID).
		Updates(map[string]any{
			"symbol":        i.Symbol,
			"name":          i.Name,
			"asset_type":    string(i.AssetType),
			"quantity":      i.Quantity,
			"average_cost":  i.AverageCost,
			"currency":      i.Currency,
			"current_price": i.CurrentPrice,
			"notes":         i.Notes,
			"purchase_date": toDate(i.PurchaseDate),
			"status":        string(i.Status),
			"updated_at":    time.Now().UTC(),
		})
	return affected(res)
}

func (r *investmentRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Investment{})
	return affected(res)
}

func investmentFromDomain(i *investment.Investment) Investment {
	return Investment{
		ID:           i.ID,
		UserID:       i.UserID,
		Symbol:       i.Symbol,
		Name:         i.Name,
		AssetType:    string(i.AssetType),
		Quantity:     i.Quantity,
		AverageCost:  i.AverageCost,
		Currency:     i.Currency,
		CurrentPrice: i.CurrentPrice,
		Notes:        i.Notes,
		PurchaseDate: toDate(i.PurchaseDate),
		Status:       string(i.Status),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func investmentToDomain(m *Investment) *investment.Investment {
	return &investment.Investment{
		ID:           m.ID,
		UserID:       m.UserID,
		Symbol:       m.Symbol,
		Name:         m.Name,
		AssetType:    investment.AssetType(m.AssetType),
		Quantity:     m.Quantity,
		AverageCost:  m.AverageCost,
		Currency:     m.Currency,
		CurrentPrice: m.CurrentPrice,
		Notes:        m.Notes,
		PurchaseDate: fromDate(m.PurchaseDate),
		Status:       investment.Status(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
