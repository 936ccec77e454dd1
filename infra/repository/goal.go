package repository

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/goal"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a savings goal repository on db.
func NewGoalRepository(db *gorm.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) withContributions(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Contributions", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

func (r *goalRepository) Create(ctx context.Context, g *goal.Goal) error {
	m := goalFromDomain(g)
	return insert(r.db.WithContext(ctx).Omit("Contributions"), &m)
}

func (r *goalRepository) Get(ctx context.Context, id, userID uuid.UUID) (*goal.Goal, error) {
	var m Goal
	err := r.withContributions(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return goalToDomain(&m), nil
}

func (r *goalRepository) GetByShareToken(ctx context.Context, token string) (*goal.Goal, error) {
	var m Goal
	err := r.withContributions(ctx).
		Where("share_token = ? AND share_enabled = ?", token, true).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return goalToDomain(&m), nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	var rows []Goal
	err := r.withContributions(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domainErr(err)
	}
	out := make([]*goal.Goal, 0, len(rows))
	for i := range rows {
		out = append(out, goalToDomain(&rows[i]))
	}
	return out, nil
}

func (r *goalRepository) Update(ctx context.Context, g *goal.Goal) error {
	res := r.db.WithContext(ctx).Model(&Goal{}).
		Where("id = ? AND user_id = ?", g.ID, g.UserID).
		Updates(map[string]any{
			"name":          g.Name,
			"target_amount": g.TargetAmount,
			"deadline":      deadlineFromDomain(g.Deadline),
			"share_token":   optString(g.ShareToken),
			"share_enabled": g.ShareEnabled,
			"updated_at":    time.Now().UTC(),
		})
	return affected(res)
}

func (r *goalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	owned := db.Model(&Goal{}).Select("id").Where("id = ? AND user_id = ?", id, userID)
	if err := db.Where("goal_id IN (?)", owned).Delete(&GoalContribution{}).Error; err != nil {
		return domainErr(err)
	}
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&Goal{})
	return affected(res)
}

func (r *goalRepository) AddContribution(ctx context.Context, c goal.Contribution) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&Goal{}).
		Where("id = ?", c.GoalID).
		Updates(map[string]any{
			"current_amount": gorm.Expr("current_amount + ?", c.Amount),
			"updated_at":     time.Now().UTC(),
		})
	if err := affected(res); err != nil {
		return err
	}
	m := contributionFromDomain(c)
	return insert(db, &m)
}

func deadlineFromDomain(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := toDate(*t)
	return &d
}

func goalFromDomain(g *goal.Goal) Goal {
	return Goal{
		ID:            g.ID,
		UserID:        g.UserID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      deadlineFromDomain(g.Deadline),
		ShareToken:    optString(g.ShareToken),
		ShareEnabled:  g.ShareEnabled,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func goalToDomain(m *Goal) *goal.Goal {
	g := &goal.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		ShareToken:    derefString(m.ShareToken),
		ShareEnabled:  m.ShareEnabled,
		Contributions: make([]goal.Contribution, 0, len(m.Contributions)),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Deadline != nil {
		d := fromDate(*m.Deadline)
		g.Deadline = &d
	}
	for i := range m.Contributions {
		g.Contributions = append(g.Contributions, contributionToDomain(&m.Contributions[i]))
	}
	return g
}

func contributionFromDomain(c goal.Contribution) GoalContribution {
	m := GoalContribution{
		ID:              c.ID,
		GoalID:          c.GoalID,
		Amount:          c.Amount,
		ContributorName: c.ContributorName,
		Note:            c.Note,
		CreatedAt:       c.CreatedAt,
	}
	if c.Wallet != nil {
		m.WalletName = optString(c.Wallet.Name)
		m.WalletType = optString(string(c.Wallet.Type))
	}
	return m
}

func contributionToDomain(m *GoalContribution) goal.Contribution {
	c := goal.Contribution{
		ID:              m.ID,
		GoalID:          m.GoalID,
		Amount:          m.Amount,
		ContributorName: m.ContributorName,
		Note:            m.Note,
		CreatedAt:       m.CreatedAt,
	}
	if m.WalletName != nil {
		c.Wallet = &wallet.Snapshot{
			Name: *m.WalletName,
			Type: wallet.Type(derefString(m.WalletType)),
		}
	}
	return c
}
