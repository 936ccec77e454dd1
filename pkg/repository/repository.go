package repository

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/domain/chat"
	"github.com/amirasaad/fintrack/pkg/domain/goal"
	"github.com/amirasaad/fintrack/pkg/domain/investment"
	"github.com/amirasaad/fintrack/pkg/domain/subscription"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Every owned-entity method takes the owner id next to the entity id. A
// row that exists under another owner is reported as domain.ErrNotFound.

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
}

// WalletRepository defines the interface for wallet data access operations.
type WalletRepository interface {
	Create(ctx context.Context, w *wallet.Wallet) error
	Get(ctx context.Context, id, userID uuid.UUID) (*wallet.Wallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error)
	Update(ctx context.Context, w *wallet.Wallet) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	// Debit subtracts amount only if the balance covers it, as one
	// conditional statement. It returns domain.ErrInsufficientFunds when no
	// row matched.
	Debit(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) error
}

// GoalRepository defines the interface for savings goal data access operations.
type GoalRepository interface {
	Create(ctx context.Context, g *goal.Goal) error
	// Get loads a goal with its contributions in insertion order.
	Get(ctx context.Context, id, userID uuid.UUID) (*goal.Goal, error)
	// GetByShareToken only matches goals whose sharing is enabled.
	GetByShareToken(ctx context.Context, token string) (*goal.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
	// Update writes the mutable header fields and share settings. It never
	// touches the current amount or contributions.
	Update(ctx context.Context, g *goal.Goal) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	// AddContribution increments the current amount and appends c.
	AddContribution(ctx context.Context, c goal.Contribution) error
}

// TransactionRepository defines the interface for income/expense data access operations.
type TransactionRepository interface {
	Create(ctx context.Context, t *transaction.Transaction) error
	Get(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error)
	Update(ctx context.Context, t *transaction.Transaction) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// SubscriptionRepository defines the interface for subscription data access operations.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *subscription.Subscription) error
	Get(ctx context.Context, id, userID uuid.UUID) (*subscription.Subscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*subscription.Subscription, error)
	Update(ctx context.Context, s *subscription.Subscription) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// InvestmentRepository defines the interface for investment data access operations.
type InvestmentRepository interface {
	Create(ctx context.Context, i *investment.Investment) error
	Get(ctx context.Context, id, userID uuid.UUID) (*investment.Investment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error)
	Update(ctx context.Context, i *investment.Investment) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// ChatRepository defines the interface for the global message feed.
type ChatRepository interface {
	Create(ctx context.Context, m *chat.Message) error
	// List returns up to limit messages, newest first.
	List(ctx context.Context, limit int) ([]*chat.Message, error)
}
