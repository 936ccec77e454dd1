package repository

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// All repositories handed out inside Do share the transaction session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
// Nested calls use a savepoint on the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.session().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) UserRepository() repository.UserRepository {
	return NewUserRepository(u.session())
}

func (u *UoW) WalletRepository() repository.WalletRepository {
	return NewWalletRepository(u.session())
}

func (u *UoW) GoalRepository() repository.GoalRepository {
	return NewGoalRepository(u.session())
}

func (u *UoW) TransactionRepository() repository.TransactionRepository {
	return NewTransactionRepository(u.session())
}

func (u *UoW) SubscriptionRepository() repository.SubscriptionRepository {
	return NewSubscriptionRepository(u.session())
}

func (u *UoW) InvestmentRepository() repository.InvestmentRepository {
	return NewInvestmentRepository(u.session())
}

func (u *UoW) ChatRepository() repository.ChatRepository {
	return NewChatRepository(u.session())
}

var _ repository.UnitOfWork = (*UoW)(nil)
