// Package goal models savings goals and the contributions that fund them.
package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SharePath is appended to the public base URL to build share links.
const SharePath = "/shared/goals/"

// Goal is a savings target owned by one user.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	ShareToken    string
	ShareEnabled  bool
	Contributions []Contribution
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contribution is one immutable transfer of funds into a goal.
type Contribution struct {
	ID              uuid.UUID
	GoalID          uuid.UUID
	Amount          decimal.Decimal
	ContributorName string
	Wallet          *wallet.Snapshot
	Note            string
	CreatedAt       time.Time
}

// Projection is the read-only view of a goal served to share-link holders.
type Projection struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
}

// New validates the input and returns a goal with no contributions.
func New(userID uuid.UUID, name string, target decimal.Decimal, deadline *time.Time) (*Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: goal name is required", domain.ErrValidation)
	}
	if err := ValidateTarget(target); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ValidateAmount rejects zero, negative and sub-cent contribution amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !domain.FitsScale(amount, domain.MoneyPlaces) {
		return fmt.Errorf("%w: at most %d decimal places", domain.ErrInvalidAmount, domain.MoneyPlaces)
	}
	return nil
}

// ValidateTarget rejects targets that are not positive whole cents.
func ValidateTarget(target decimal.Decimal) error {
	if !target.IsPositive() {
		return fmt.Errorf("%w: target amount must be positive", domain.ErrValidation)
	}
	if !domain.FitsScale(target, domain.MoneyPlaces) {
		return fmt.Errorf("%w: target amount allows at most %d decimal places", domain.ErrValidation, domain.MoneyPlaces)
	}
	return nil
}

// NewContribution builds the record appended to a goal. snapshot is nil
// when the owner credits a goal without naming a wallet; contributor is
// empty on the owner path.
func NewContribution(
	goalID uuid.UUID,
	amount decimal.Decimal,
	contributor string,
	snapshot *wallet.Snapshot,
	note string,
	at time.Time,
) (Contribution, error) {
	if err := ValidateAmount(amount); err != nil {
		return Contribution{}, err
	}
	return Contribution{
		ID:              uuid.New(),
		GoalID:          goalID,
		Amount:          amount,
		ContributorName: strings.TrimSpace(contributor),
		Wallet:          snapshot,
		Note:            strings.TrimSpace(note),
		CreatedAt:       at.UTC(),
	}, nil
}

// Project returns the public view of the goal.
func (g *Goal) Project() Projection {
	return Projection{
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
	}
}

// EnsureShareToken mints a token if the goal has none and enables
// sharing. It reports whether a new token was minted.
func (g *Goal) EnsureShareToken() bool {
	minted := false
	if g.ShareToken == "" {
		g.ShareToken = uuid.NewString()
		minted = true
	}
	g.ShareEnabled = true
	return minted
}

// ShareURL joins the public base URL with the share path and token.
func (g *Goal) ShareURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + SharePath + g.ShareToken
}

// Progress returns current/target as a percentage capped at 100.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	if p.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return p.Round(2)
}
