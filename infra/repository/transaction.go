package repository

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates an income/expense repository on db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	m := transactionFromDomain(t)
	return insert(r.db.WithContext(ctx), &m)
}

func (r *transactionRepository) Get(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return transactionToDomain(&m), nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domainErr(err)
	}
	out := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, transactionToDomain(&rows[i]))
	}
	return out, nil
}

func (r *transactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]any{
			"amount":      t.Amount,
			"description": t.Description,
			"type":        string(t.Type),
			"category":    t.Category,
			"date":        toDate(t.Date),
			"wallet":      t.Wallet,
			"notes":       t.Notes,
			"updated_at":  time.Now().UTC(),
		})
	return affected(res)
}

func (r *transactionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Transaction{})
	return affected(res)
}

func transactionFromDomain(t *transaction.Transaction) Transaction {
	return Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        string(t.Type),
		Category:    t.Category,
		Date:        toDate(t.Date),
		Wallet:      t.Wallet,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func transactionToDomain(m *Transaction) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Description: m.Description,
		Type:        transaction.Type(m.Type),
		Category:    m.Category,
		Date:        fromDate(m.Date),
		Wallet:      m.Wallet,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
