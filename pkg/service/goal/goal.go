// Package goal provides savings goal management, the contribution flow that
// moves money from a wallet into a goal, and share-link issuing.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/goal"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrContributionFailed wraps a store failure that happened after the wallet
// was debited. The surrounding transaction has been rolled back.
var ErrContributionFailed = errors.New("contribution could not be completed")

// CreateInput carries the fields of a new goal.
type CreateInput struct {
	Name         string
	TargetAmount decimal.Decimal
	Deadline     *time.Time
}

// UpdateInput carries a partial update of the goal header. The current
// amount, share token and contributions are not updatable.
type UpdateInput struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	Deadline      *time.Time
	ClearDeadline bool
}

// ContributeInput is an owner crediting their own goal. WalletID is optional.
type ContributeInput struct {
	Amount   decimal.Decimal
	WalletID *uuid.UUID
	Note     string
}

// SharedContributeInput is a share-link holder funding a goal from one of
// their own wallets.
type SharedContributeInput struct {
	Amount   decimal.Decimal
	WalletID uuid.UUID
	Note     string
}

type Service struct {
	uow           repository.UnitOfWork
	publicBaseURL string
	logger        *slog.Logger
	now           func() time.Time
}

func New(uow repository.UnitOfWork, publicBaseURL string, logger *slog.Logger) *Service {
	return &Service{
		uow:           uow,
		publicBaseURL: publicBaseURL,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*goal.Goal, error) {
	g, err := goal.New(userID, in.Name, in.TargetAmount, in.Deadline)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GoalRepository().Create(ctx, g); err != nil {
		s.logger.Error("Create goal failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("Goal created", "userID", userID, "goalID", g.ID)
	return g, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	return s.uow.GoalRepository().ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*goal.Goal, error) {
	return s.uow.GoalRepository().Get(ctx, id, userID)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (g *goal.Goal, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.GoalRepository()
		g, err = repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: goal name is required", domain.ErrValidation)
			}
			g.Name = name
		}
		if in.TargetAmount != nil {
			if err := goal.ValidateTarget(*in.TargetAmount); err != nil {
				return err
			}
			g.TargetAmount = *in.TargetAmount
		}
		switch {
		case in.ClearDeadline:
			g.Deadline = nil
		case in.Deadline != nil:
			g.Deadline = in.Deadline
		}
		return repo.Update(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.GoalRepository().Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Goal deleted", "userID", userID, "goalID", id)
	return nil
}

// Contribute credits the owner's goal, debiting one of the owner's wallets
// when in.WalletID is set. It returns the goal as persisted afterwards.
func (s *Service) Contribute(
	ctx context.Context,
	ownerID, goalID uuid.UUID,
	in ContributeInput,
) (g *goal.Goal, err error) {
	log := s.logger.With("context", "Contribute", "userID", ownerID, "goalID", goalID)
	if err := goal.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals := uow.GoalRepository()
		if _, err := goals.Get(ctx, goalID, ownerID); err != nil {
			return err
		}
		var w *wallet.Wallet
		if in.WalletID != nil {
			w, err = s.loadPayingWallet(ctx, uow, *in.WalletID, ownerID, in.Amount)
			if err != nil {
				return err
			}
		}
		if err := s.transfer(ctx, uow, log, goalID, w, in.Amount, "", in.Note); err != nil {
			return err
		}
		g, err = goals.Get(ctx, goalID, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info("Contribution recorded", "amount", in.Amount.String())
	return g, nil
}

// ContributeShared funds the goal behind a share token from a wallet of the
// acting user. The goal owner's wallets are never touched.
func (s *Service) ContributeShared(
	ctx context.Context,
	actorID uuid.UUID,
	token string,
	in SharedContributeInput,
) error {
	log := s.logger.With("context", "ContributeShared", "userID", actorID)
	if err := goal.ValidateAmount(in.Amount); err != nil {
		return err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err := uow.GoalRepository().GetByShareToken(ctx, token)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrShareLinkInvalid
		}
		if err != nil {
			return err
		}
		w, err := s.loadPayingWallet(ctx, uow, in.WalletID, actorID, in.Amount)
		if err != nil {
			return err
		}
		contributor, err := s.contributorName(ctx, uow, actorID)
		if err != nil {
			return err
		}
		return s.transfer(ctx, uow, log.With("goalID", g.ID), g.ID, w, in.Amount, contributor, in.Note)
	})
	if err != nil {
		return err
	}
	log.Info("Shared contribution recorded", "amount", in.Amount.String())
	return nil
}

func (s *Service) loadPayingWallet(
	ctx context.Context,
	uow repository.UnitOfWork,
	walletID, actorID uuid.UUID,
	amount decimal.Decimal,
) (*wallet.Wallet, error) {
	w, err := uow.WalletRepository().Get(ctx, walletID, actorID)
	if err != nil {
		return nil, err
	}
	if !w.CanDebit(amount) {
		return nil, domain.ErrInsufficientFunds
	}
	return w, nil
}

func (s *Service) contributorName(ctx context.Context, uow repository.UnitOfWork, actorID uuid.UUID) (string, error) {
	u, err := uow.UserRepository().Get(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		return user.AnonymousName, nil
	}
	if err != nil {
		return "", err
	}
	return u.DisplayName(), nil
}

// transfer debits w (when set), credits the goal and appends the
// contribution. It must run inside uow.Do.
func (s *Service) transfer(
	ctx context.Context,
	uow repository.UnitOfWork,
	log *slog.Logger,
	goalID uuid.UUID,
	w *wallet.Wallet,
	amount decimal.Decimal,
	contributor, note string,
) error {
	var snap *wallet.Snapshot
	if w != nil {
		sn := w.Snapshot()
		snap = &sn
	}
	c, err := goal.NewContribution(goalID, amount, contributor, snap, note, s.now())
	if err != nil {
		return err
	}
	if w != nil {
		if err := uow.WalletRepository().Debit(ctx, w.ID, w.UserID, amount); err != nil {
			return err
		}
	}
	if err := uow.GoalRepository().AddContribution(ctx, c); err != nil {
		if w != nil {
			log.Error("Partial contribution rolled back",
				"walletID", w.ID,
				"amount", amount.String(),
				"error", err,
			)
		}
		return fmt.Errorf("%w: %v", ErrContributionFailed, err)
	}
	return nil
}

// EnableShare turns on the public link for a goal, minting a token on the
// first call. Later calls return the same URL.
func (s *Service) EnableShare(ctx context.Context, ownerID, goalID uuid.UUID) (shareURL string, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.GoalRepository()
		g, err := repo.Get(ctx, goalID, ownerID)
		if err != nil {
			return err
		}
		minted := g.EnsureShareToken()
		if err := repo.Update(ctx, g); err != nil {
			return err
		}
		if minted {
			s.logger.Info("Share token issued", "userID", ownerID, "goalID", goalID)
		}
		shareURL = g.ShareURL(s.publicBaseURL)
		return nil
	})
	return shareURL, err
}

// DisableShare turns off the public link. The token is kept so enabling
// again restores the same URL.
func (s *Service) DisableShare(ctx context.Context, ownerID, goalID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.GoalRepository()
		g, err := repo.Get(ctx, goalID, ownerID)
		if err != nil {
			return err
		}
		g.ShareEnabled = false
		return repo.Update(ctx, g)
	})
}

// SharedProjection returns the public view of the goal behind token. Every
// failure to resolve the token yields domain.ErrShareLinkInvalid.
func (s *Service) SharedProjection(ctx context.Context, token string) (goal.Projection, error) {
	if strings.TrimSpace(token) == "" {
		return goal.Projection{}, domain.ErrShareLinkInvalid
	}
	g, err := s.uow.GoalRepository().GetByShareToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return goal.Projection{}, domain.ErrShareLinkInvalid
	}
	if err != nil {
		return goal.Projection{}, err
	}
	return g.Project(), nil
}
