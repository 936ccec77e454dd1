package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories returned from the UnitOfWork passed to Do share one
// database transaction; outside Do they run on the plain connection.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// The provided function receives a UnitOfWork for repository access.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() UserRepository
	WalletRepository() WalletRepository
	GoalRepository() GoalRepository
	TransactionRepository() TransactionRepository
	SubscriptionRepository() SubscriptionRepository
	InvestmentRepository() InvestmentRepository
	ChatRepository() ChatRepository
}
