package repository

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a wallet repository on db.
func NewWalletRepository(db *gorm.DB) repository.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	m := walletFromDomain(w)
	return insert(r.db.WithContext(ctx), &m)
}

func (r *walletRepository) Get(ctx context.Context, id, userID uuid.UUID) (*wallet.Wallet, error) {
	var m Wallet
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return walletToDomain(&m), nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	var rows []Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domainErr(err)
	}
	out := make([]*wallet.Wallet, 0, len(rows))
	for i := range rows {
		out = append(out, walletToDomain(&rows[i]))
	}
	return out, nil
}

func (r *walletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	res := r.db.WithContext(ctx).Model(&Wallet{}).
		Where("id = ? AND user_id = ?", w.ID, w.UserID).
		Updates(map[string]any{
			"name":       w.Name,
			"type":       string(w.Type),
			"balance":    w.Balance,
			"currency":   w.Currency,
			"updated_at": time.Now().UTC(),
		})
	return affected(res)
}

func (r *walletRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Wallet{})
	return affected(res)
}

func (r *walletRepository) Debit(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Wallet{}).
		Where("id = ? AND user_id = ? AND balance >= ?", id, userID, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return domainErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func walletFromDomain(w *wallet.Wallet) Wallet {
	return Wallet{
		ID:        w.ID,
		UserID:    w.UserID,
		Name:      w.Name,
		Type:      string(w.Type),
		Balance:   w.Balance,
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func walletToDomain(m *Wallet) *wallet.Wallet {
	return &wallet.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Type:      wallet.Type(m.Type),
		Balance:   m.Balance,
		Currency:  m.Currency,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
