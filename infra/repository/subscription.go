package repository

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/subscription"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a subscription repository on db.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	m := subscriptionFromDomain(s)
	return insert(r.db.WithContext(ctx), &m)
}

func (r *subscriptionRepository) Get(ctx context.Context, id, userID uuid.UUID) (*subscription.Subscription, error) {
	var m Subscription
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return subscriptionToDomain(&m), nil
}

// ListByUser orders by the next charge, soonest first.
func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*subscription.Subscription, error) {
	var rows []Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_billing_date ASC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domainErr(err)
	}
	out := make([]*subscription.Subscription, 0, len(rows))
	for i := range rows {
		out = append(out, subscriptionToDomain(&rows[i]))
	}
	return out, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	res := r.db.WithContext(ctx).Model(&Subscription{}).
		Where("id = ? AND user_id = ?", s.ID, s.UserID).
		Updates(map[string]any{
			"name":              s.Name,
			"amount":            s.Amount,
			"billing_cycle":     string(s.BillingCycle),
			"next_billing_date": toDate(s.NextBillingDate),
			"category":          s.Category,
			"status":            string(s.Status),
			"website":           s.Website,
			"notes":             s.Notes,
			"updated_at":        time.Now().UTC(),
		})
	return affected(res)
}

func (r *subscriptionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Subscription{})
	return affected(res)
}

func subscriptionFromDomain(s *subscription.Subscription) Subscription {
	return Subscription{
		ID:              s.ID,
		UserID:          s.UserID,
		Name:            s.Name,
		Amount:          s.Amount,
		BillingCycle:    string(s.BillingCycle),
		NextBillingDate: toDate(s.NextBillingDate),
		Category:        s.Category,
		Status:          string(s.Status),
		Website:         s.Website,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func subscriptionToDomain(m *Subscription) *subscription.Subscription {
	return &subscription.Subscription{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Amount:          m.Amount,
		BillingCycle:    subscription.BillingCycle(m.BillingCycle),
		NextBillingDate: fromDate(m.NextBillingDate),
		Category:        m.Category,
		Status:          subscription.Status(m.Status),
		Website:         m.Website,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
