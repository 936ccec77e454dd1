package repository

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/chat"
	"github.com/amirasaad/fintrack/pkg/domain/goal"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type RepositoryTestSuite struct {
	suite.Suite
	db  *gorm.DB
	uow *UoW
	ctx context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(AutoMigrate(db))
	s.db = db
	s.uow = NewUoW(db)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) newUser(email string) *user.User {
	u, err := user.New(email, "password", "")
	s.Require().NoError(err)
	s.Require().NoError(s.uow.UserRepository().Create(s.ctx, u))
	return u
}

func (s *RepositoryTestSuite) TestUser_DuplicateEmail() {
	s.newUser("dup@example.com")
	u, err := user.New("DUP@example.com", "password", "")
	s.Require().NoError(err)
	err = s.uow.UserRepository().Create(s.ctx, u)
	s.ErrorIs(err, domain.ErrAlreadyExists)
}

func (s *RepositoryTestSuite) TestUser_ResetTokenRoundTrip() {
	u := s.newUser("reset@example.com")
	exp := time.Now().Add(time.Hour).UTC()
	u.ResetTokenHash = "abc123"
	u.ResetTokenExpiresAt = &exp
	s.Require().NoError(s.uow.UserRepository().Update(s.ctx, u))

	got, err := s.uow.UserRepository().GetByResetTokenHash(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.True(got.ResetTokenValid("abc123", time.Now()))

	got.ResetTokenHash = ""
	got.ResetTokenExpiresAt = nil
	s.Require().NoError(s.uow.UserRepository().Update(s.ctx, got))
	_, err = s.uow.UserRepository().GetByResetTokenHash(s.ctx, "abc123")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestWallet_OwnershipScopesLookups() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	w, err := wallet.New(alice.ID, "Main", wallet.TypeBank, decimal.NewFromInt(500), "usd")
	s.Require().NoError(err)
	repo := s.uow.WalletRepository()
	s.Require().NoError(repo.Create(s.ctx, w))

	_, err = repo.Get(s.ctx, w.ID, bob.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(repo.Delete(s.ctx, w.ID, bob.ID), domain.ErrNotFound)

	got, err := repo.Get(s.ctx, w.ID, alice.ID)
	s.Require().NoError(err)
	s.True(got.Balance.Equal(decimal.NewFromInt(500)))
	s.Equal("USD", got.Currency)
}

func (s *RepositoryTestSuite) TestWallet_Debit() {
	u := s.newUser("debit@example.com")
	w, err := wallet.New(u.ID, "Cash", wallet.TypeCash, decimal.NewFromInt(100), "")
	s.Require().NoError(err)
	repo := s.uow.WalletRepository()
	s.Require().NoError(repo.Create(s.ctx, w))

	s.Require().NoError(repo.Debit(s.ctx, w.ID, u.ID, decimal.NewFromInt(60)))
	s.ErrorIs(repo.Debit(s.ctx, w.ID, u.ID, decimal.NewFromInt(60)), domain.ErrInsufficientFunds)

	got, err := repo.Get(s.ctx, w.ID, u.ID)
	s.Require().NoError(err)
	s.True(got.Balance.Equal(decimal.NewFromInt(40)), got.Balance.String())
}

func (s *RepositoryTestSuite) TestGoal_ContributionsAndShareToken() {
	u := s.newUser("goal@example.com")
	deadline := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	g, err := goal.New(u.ID, "House", decimal.NewFromInt(1000), &deadline)
	s.Require().NoError(err)
	repo := s.uow.GoalRepository()
	s.Require().NoError(repo.Create(s.ctx, g))

	snap := wallet.Snapshot{Name: "Main", Type: wallet.TypeBank}
	base := time.Now()
	for i, amt := range []int64{100, 250} {
		c, err := goal.NewContribution(g.ID, decimal.NewFromInt(amt), "", &snap, "", base.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		s.Require().NoError(repo.AddContribution(s.ctx, c))
	}
	c, err := goal.NewContribution(g.ID, decimal.NewFromInt(5), "Zed", nil, "hi", base.Add(3*time.Second))
	s.Require().NoError(err)
	s.Require().NoError(repo.AddContribution(s.ctx, c))

	got, err := repo.Get(s.ctx, g.ID, u.ID)
	s.Require().NoError(err)
	s.True(got.CurrentAmount.Equal(decimal.NewFromInt(355)), got.CurrentAmount.String())
	s.Require().Len(got.Contributions, 3)
	s.True(got.Contributions[0].Amount.Equal(decimal.NewFromInt(100)))
	s.Equal(&snap, got.Contributions[1].Wallet)
	s.Nil(got.Contributions[2].Wallet)
	s.Equal("Zed", got.Contributions[2].ContributorName)
	s.Require().NotNil(got.Deadline)
	s.True(deadline.Equal(*got.Deadline))

	_, err = repo.GetByShareToken(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)

	got.EnsureShareToken()
	s.Require().NoError(repo.Update(s.ctx, got))
	shared, err := repo.GetByShareToken(s.ctx, got.ShareToken)
	s.Require().NoError(err)
	s.Equal(g.ID, shared.ID)

	got.ShareEnabled = false
	s.Require().NoError(repo.Update(s.ctx, got))
	_, err = repo.GetByShareToken(s.ctx, got.ShareToken)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestGoal_DeleteRemovesContributions() {
	u := s.newUser("del@example.com")
	other := s.newUser("other@example.com")
	g, err := goal.New(u.ID, "Trip", decimal.NewFromInt(10), nil)
	s.Require().NoError(err)
	repo := s.uow.GoalRepository()
	s.Require().NoError(repo.Create(s.ctx, g))
	c, err := goal.NewContribution(g.ID, decimal.NewFromInt(1), "", nil, "", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(repo.AddContribution(s.ctx, c))

	s.ErrorIs(repo.Delete(s.ctx, g.ID, other.ID), domain.ErrNotFound)
	var count int64
	s.db.Model(&GoalContribution{}).Where("goal_id = ?", g.ID).Count(&count)
	s.Equal(int64(1), count)

	s.Require().NoError(repo.Delete(s.ctx, g.ID, u.ID))
	s.db.Model(&GoalContribution{}).Where("goal_id = ?", g.ID).Count(&count)
	s.Equal(int64(0), count)
}

func (s *RepositoryTestSuite) TestTransaction_ListOrder() {
	u := s.newUser("tx@example.com")
	repo := s.uow.TransactionRepository()
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	for _, d := range []int{3, 10, 1} {
		now := time.Now().UTC()
		s.Require().NoError(repo.Create(s.ctx, &transaction.Transaction{
			ID:          uuid.New(),
			UserID:      u.ID,
			Amount:      decimal.NewFromInt(int64(d)),
			Description: "entry",
			Type:        transaction.TypeExpense,
			Date:        day(d),
			CreatedAt:   now,
			UpdatedAt:   now,
		}))
	}
	list, err := repo.ListByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal(day(10), list[0].Date)
	s.Equal(day(3), list[1].Date)
	s.Equal(day(1), list[2].Date)
}

func (s *RepositoryTestSuite) TestChat_ListNewestFirstWithLimit() {
	u := s.newUser("chat@example.com")
	repo := s.uow.ChatRepository()
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		m, err := chat.NewMessage(u.ID, u.Name, u.Email, "msg")
		s.Require().NoError(err)
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		m.Content = []string{"a", "b", "c"}[i]
		s.Require().NoError(repo.Create(s.ctx, m))
	}
	list, err := repo.List(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("c", list[0].Content)
	s.Equal("b", list[1].Content)
}

func TestOptString(t *testing.T) {
	assert.Nil(t, optString(""))
	require.NotNil(t, optString("x"))
	assert.Equal(t, "x", derefString(optString("x")))
	assert.Equal(t, "", derefString(nil))
}
