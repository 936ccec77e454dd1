package goal_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/internal/testutils"
	"github.com/amirasaad/fintrack/pkg/domain"
	domaingoal "github.com/amirasaad/fintrack/pkg/domain/goal"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/amirasaad/fintrack/pkg/repository"
	goalsvc "github.com/amirasaad/fintrack/pkg/service/goal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type GoalServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	uow   repository.UnitOfWork
	svc   *goalsvc.Service
	owner *user.User
	other *user.User
}

func TestGoalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoalServiceTestSuite))
}

func (s *GoalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	uow, _ := testutils.NewTestUoW(s.T())
	s.uow = uow
	s.svc = goalsvc.New(uow, "https://fintrack.test", testutils.DiscardLogger())
	s.owner = s.createUser("owner@example.com", "Olivia")
	s.other = s.createUser("friend@example.com", "Frank")
}

func (s *GoalServiceTestSuite) createUser(email, name string) *user.User {
	u, err := user.New(email, "password", name)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.UserRepository().Create(s.ctx, u))
	return u
}

func (s *GoalServiceTestSuite) createWallet(owner uuid.UUID, name string, balance int64) *wallet.Wallet {
	w, err := wallet.New(owner, name, wallet.TypeBank, decimal.NewFromInt(balance), "")
	s.Require().NoError(err)
	s.Require().NoError(s.uow.WalletRepository().Create(s.ctx, w))
	return w
}

func (s *GoalServiceTestSuite) createGoal(owner uuid.UUID, target int64) *domaingoal.Goal {
	g, err := s.svc.Create(s.ctx, owner, goalsvc.CreateInput{Name: "House", TargetAmount: decimal.NewFromInt(target)})
	s.Require().NoError(err)
	return g
}

func (s *GoalServiceTestSuite) balance(w *wallet.Wallet) decimal.Decimal {
	got, err := s.uow.WalletRepository().Get(s.ctx, w.ID, w.UserID)
	s.Require().NoError(err)
	return got.Balance
}

func (s *GoalServiceTestSuite) goal(g *domaingoal.Goal) *domaingoal.Goal {
	got, err := s.uow.GoalRepository().Get(s.ctx, g.ID, g.UserID)
	s.Require().NoError(err)
	return got
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (s *GoalServiceTestSuite) TestContribute_ConservesBalance() {
	w := s.createWallet(s.owner.ID, "Main", 5_000_000)
	g := s.createGoal(s.owner.ID, 10_000_000)
	_, err := s.svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{Amount: dec(2_000_000)})
	s.Require().NoError(err)

	updated, err := s.svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{
		Amount:   dec(1_000_000),
		WalletID: &w.ID,
		Note:     "birthday gift",
	})
	s.Require().NoError(err)

	s.True(updated.CurrentAmount.Equal(dec(3_000_000)), updated.CurrentAmount.String())
	s.Require().Len(updated.Contributions, 2)
	last := updated.Contributions[1]
	s.True(last.Amount.Equal(dec(1_000_000)))
	s.Equal("birthday gift", last.Note)
	s.Equal("", last.ContributorName)
	s.Require().NotNil(last.Wallet)
	s.Equal("Main", last.Wallet.Name)
	s.Equal(wallet.TypeBank, last.Wallet.Type)
	s.Nil(updated.Contributions[0].Wallet)
	s.True(s.balance(w).Equal(dec(4_000_000)))
}

func (s *GoalServiceTestSuite) TestContribute_InsufficientFundsChangesNothing() {
	w := s.createWallet(s.owner.ID, "Main", 100)
	g := s.createGoal(s.owner.ID, 1000)

	_, err := s.svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{Amount: dec(101), WalletID: &w.ID})
	s.ErrorIs(err, domain.ErrInsufficientFunds)

	s.True(s.balance(w).Equal(dec(100)))
	after := s.goal(g)
	s.True(after.CurrentAmount.IsZero())
	s.Empty(after.Contributions)
}

func (s *GoalServiceTestSuite) TestContribute_SubCentAmountChangesNothing() {
	w := s.createWallet(s.owner.ID, "Main", 100)
	g := s.createGoal(s.owner.ID, 1000)

	for _, amt := range []string{"0.005", "0.004", "1.999"} {
		_, err := s.svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{
			Amount:   decimal.RequireFromString(amt),
			WalletID: &w.ID,
		})
		s.ErrorIs(err, domain.ErrInvalidAmount, amt)
	}

	s.True(s.balance(w).Equal(dec(100)))
	after := s.goal(g)
	s.True(after.CurrentAmount.IsZero())
	s.Empty(after.Contributions)
}

func (s *GoalServiceTestSuite) TestCreateAndUpdate_RejectSubCentTarget() {
	_, err := s.svc.Create(s.ctx, s.owner.ID, goalsvc.CreateInput{Name: "Bike", TargetAmount: decimal.RequireFromString("99.999")})
	s.ErrorIs(err, domain.ErrValidation)

	g := s.createGoal(s.owner.ID, 1000)
	target := decimal.RequireFromString("500.001")
	_, err = s.svc.Update(s.ctx, s.owner.ID, g.ID, goalsvc.UpdateInput{TargetAmount: &target})
	s.ErrorIs(err, domain.ErrValidation)
	s.True(s.goal(g).TargetAmount.Equal(dec(1000)))
}

func (s *GoalServiceTestSuite) TestContribute_OtherUsersWalletIsNotFound() {
	w := s.createWallet(s.other.ID, "Theirs", 1000)
	g := s.createGoal(s.owner.ID, 1000)

	_, err := s.svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{Amount: dec(10), WalletID: &w.ID})
	s.ErrorIs(err, domain.ErrNotFound)
	s.True(s.balance(w).Equal(dec(1000)))
}

func (s *GoalServiceTestSuite) TestContribute_OtherUsersGoalIsNotFound() {
	g := s.createGoal(s.owner.ID, 1000)
	_, err := s.svc.Contribute(s.ctx, s.other.ID, g.ID, goalsvc.ContributeInput{Amount: dec(10)})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *GoalServiceTestSuite) TestContribute_ConcurrentNeverOverdraws() {
	w := s.createWallet(s.owner.ID, "Main", 100)
	g := s.createGoal(s.owner.ID, 1000)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{Amount: dec(20), WalletID: &w.ID})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(5, succeeded)
	s.True(s.balance(w).IsZero())
	after := s.goal(g)
	s.True(after.CurrentAmount.Equal(dec(100)))
	s.Len(after.Contributions, 5)
}

func (s *GoalServiceTestSuite) TestContribute_FailureAfterDebitRollsBack() {
	w := s.createWallet(s.owner.ID, "Main", 100)
	g := s.createGoal(s.owner.ID, 1000)
	svc := goalsvc.New(failingCreditUoW{s.uow}, "", testutils.DiscardLogger())

	_, err := svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{Amount: dec(40), WalletID: &w.ID})
	s.ErrorIs(err, goalsvc.ErrContributionFailed)
	s.NotErrorIs(err, domain.ErrInsufficientFunds)

	s.True(s.balance(w).Equal(dec(100)), "debit must be rolled back")
	s.True(s.goal(g).CurrentAmount.IsZero())
}

func (s *GoalServiceTestSuite) TestShare_TokenStableAcrossEnables() {
	g := s.createGoal(s.owner.ID, 1000)

	first, err := s.svc.EnableShare(s.ctx, s.owner.ID, g.ID)
	s.Require().NoError(err)
	second, err := s.svc.EnableShare(s.ctx, s.owner.ID, g.ID)
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Contains(first, "https://fintrack.test/shared/goals/")

	s.Require().NoError(s.svc.DisableShare(s.ctx, s.owner.ID, g.ID))
	third, err := s.svc.EnableShare(s.ctx, s.owner.ID, g.ID)
	s.Require().NoError(err)
	s.Equal(first, third)

	_, err = s.svc.EnableShare(s.ctx, s.other.ID, g.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *GoalServiceTestSuite) TestSharedProjection() {
	g := s.createGoal(s.owner.ID, 1000)
	url, err := s.svc.EnableShare(s.ctx, s.owner.ID, g.ID)
	s.Require().NoError(err)
	token := url[len("https://fintrack.test/shared/goals/"):]

	p, err := s.svc.SharedProjection(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("House", p.Name)
	s.True(p.TargetAmount.Equal(dec(1000)))
	s.True(p.CurrentAmount.IsZero())

	_, errUnknown := s.svc.SharedProjection(s.ctx, uuid.NewString())
	s.Require().NoError(s.svc.DisableShare(s.ctx, s.owner.ID, g.ID))
	_, errDisabled := s.svc.SharedProjection(s.ctx, token)
	_, errEmpty := s.svc.SharedProjection(s.ctx, "")

	s.ErrorIs(errUnknown, domain.ErrShareLinkInvalid)
	s.ErrorIs(errDisabled, domain.ErrShareLinkInvalid)
	s.ErrorIs(errEmpty, domain.ErrShareLinkInvalid)
	s.Equal(errUnknown.Error(), errDisabled.Error())
}

func (s *GoalServiceTestSuite) TestContributeShared() {
	ownerWallet := s.createWallet(s.owner.ID, "Owner", 500)
	friendWallet := s.createWallet(s.other.ID, "Friend Bank", 500)
	g := s.createGoal(s.owner.ID, 1000)
	url, err := s.svc.EnableShare(s.ctx, s.owner.ID, g.ID)
	s.Require().NoError(err)
	token := url[len("https://fintrack.test/shared/goals/"):]

	err = s.svc.ContributeShared(s.ctx, s.other.ID, token, goalsvc.SharedContributeInput{
		Amount:   dec(200),
		WalletID: friendWallet.ID,
		Note:     "good luck",
	})
	s.Require().NoError(err)

	after := s.goal(g)
	s.True(after.CurrentAmount.Equal(dec(200)))
	s.Require().Len(after.Contributions, 1)
	s.Equal("Frank", after.Contributions[0].ContributorName)
	s.Equal("Friend Bank", after.Contributions[0].Wallet.Name)
	s.True(s.balance(friendWallet).Equal(dec(300)))
	s.True(s.balance(ownerWallet).Equal(dec(500)))

	err = s.svc.ContributeShared(s.ctx, s.other.ID, token, goalsvc.SharedContributeInput{
		Amount:   dec(10),
		WalletID: ownerWallet.ID,
	})
	s.ErrorIs(err, domain.ErrNotFound, "the goal owner's wallet is not the actor's")
}

func (s *GoalServiceTestSuite) TestContributeShared_AnonymousWhenUserMissing() {
	ghost := uuid.New()
	w := s.createWallet(ghost, "Ghost", 50)
	g := s.createGoal(s.owner.ID, 1000)
	url, err := s.svc.EnableShare(s.ctx, s.owner.ID, g.ID)
	s.Require().NoError(err)
	token := url[len("https://fintrack.test/shared/goals/"):]

	s.Require().NoError(s.svc.ContributeShared(s.ctx, ghost, token, goalsvc.SharedContributeInput{Amount: dec(5), WalletID: w.ID}))
	s.Equal(user.AnonymousName, s.goal(g).Contributions[0].ContributorName)
}

func (s *GoalServiceTestSuite) TestContributeShared_DisabledLink() {
	w := s.createWallet(s.other.ID, "Friend", 500)
	g := s.createGoal(s.owner.ID, 1000)
	url, err := s.svc.EnableShare(s.ctx, s.owner.ID, g.ID)
	s.Require().NoError(err)
	token := url[len("https://fintrack.test/shared/goals/"):]
	s.Require().NoError(s.svc.DisableShare(s.ctx, s.owner.ID, g.ID))

	err = s.svc.ContributeShared(s.ctx, s.other.ID, token, goalsvc.SharedContributeInput{Amount: dec(5), WalletID: w.ID})
	s.ErrorIs(err, domain.ErrShareLinkInvalid)
	s.True(s.balance(w).Equal(dec(500)))
}

func (s *GoalServiceTestSuite) TestUpdate_DoesNotTouchProgress() {
	g := s.createGoal(s.owner.ID, 1000)
	_, err := s.svc.Contribute(s.ctx, s.owner.ID, g.ID, goalsvc.ContributeInput{Amount: dec(100)})
	s.Require().NoError(err)

	name := "Bigger house"
	target := dec(5000)
	deadline := time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := s.svc.Update(s.ctx, s.owner.ID, g.ID, goalsvc.UpdateInput{Name: &name, TargetAmount: &target, Deadline: &deadline})
	s.Require().NoError(err)
	s.Equal(name, updated.Name)

	after := s.goal(g)
	s.True(after.CurrentAmount.Equal(dec(100)))
	s.Len(after.Contributions, 1)
	s.True(after.TargetAmount.Equal(target))
	s.Require().NotNil(after.Deadline)

	zero := decimal.Zero
	_, err = s.svc.Update(s.ctx, s.owner.ID, g.ID, goalsvc.UpdateInput{TargetAmount: &zero})
	s.ErrorIs(err, domain.ErrValidation)

	updated, err = s.svc.Update(s.ctx, s.owner.ID, g.ID, goalsvc.UpdateInput{ClearDeadline: true})
	s.Require().NoError(err)
	s.Nil(updated.Deadline)
}

func (s *GoalServiceTestSuite) TestDelete() {
	g := s.createGoal(s.owner.ID, 1000)
	s.ErrorIs(s.svc.Delete(s.ctx, s.other.ID, g.ID), domain.ErrNotFound)
	s.Require().NoError(s.svc.Delete(s.ctx, s.owner.ID, g.ID))
	_, err := s.svc.Get(s.ctx, s.owner.ID, g.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

// TestContribute_InvalidAmountNeverTouchesStore runs against a mock that
// fails the test on any call.
func TestContribute_InvalidAmountNeverTouchesStore(t *testing.T) {
	uow := new(mockUoW)
	svc := goalsvc.New(uow, "", testutils.DiscardLogger())
	ctx := context.Background()
	walletID := uuid.New()

	for _, amt := range []decimal.Decimal{
		decimal.Zero,
		dec(-5),
		decimal.RequireFromString("0.005"),
		decimal.RequireFromString("10.001"),
	} {
		_, err := svc.Contribute(ctx, uuid.New(), uuid.New(), goalsvc.ContributeInput{Amount: amt, WalletID: &walletID})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		err = svc.ContributeShared(ctx, uuid.New(), "token", goalsvc.SharedContributeInput{Amount: amt, WalletID: walletID})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	}
	uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

// failingCreditUoW fails every goal credit after the wallet debit ran.
type failingCreditUoW struct {
	repository.UnitOfWork
}

func (f failingCreditUoW) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	return f.UnitOfWork.Do(ctx, func(tx repository.UnitOfWork) error {
		return fn(failingCreditUoW{tx})
	})
}

func (f failingCreditUoW) GoalRepository() repository.GoalRepository {
	return failingGoals{f.UnitOfWork.GoalRepository()}
}

type failingGoals struct {
	repository.GoalRepository
}

func (failingGoals) AddContribution(context.Context, domaingoal.Contribution) error {
	return errors.New("disk full")
}

type mockUoW struct {
	mock.Mock
}

func (m *mockUoW) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	return m.Called(ctx, fn).Error(0)
}
func (m *mockUoW) UserRepository() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}
func (m *mockUoW) WalletRepository() repository.WalletRepository {
	return m.Called().Get(0).(repository.WalletRepository)
}
func (m *mockUoW) GoalRepository() repository.GoalRepository {
	return m.Called().Get(0).(repository.GoalRepository)
}
func (m *mockUoW) TransactionRepository() repository.TransactionRepository {
	return m.Called().Get(0).(repository.TransactionRepository)
}
func (m *mockUoW) SubscriptionRepository() repository.SubscriptionRepository {
	return m.Called().Get(0).(repository.SubscriptionRepository)
}
func (m *mockUoW) InvestmentRepository() repository.InvestmentRepository {
	return m.Called().Get(0).(repository.InvestmentRepository)
}
func (m *mockUoW) ChatRepository() repository.ChatRepository {
	return m.Called().Get(0).(repository.ChatRepository)
}
