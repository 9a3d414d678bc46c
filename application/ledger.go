package application

import (
	"context"
	"fmt"
	"time"

	"scholarfund/domain/entities"
	"scholarfund/domain/interfaces"
	"scholarfund/domain/services"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// LedgerConfig holds the protocol parameters the ledger operates under
type LedgerConfig struct {
	FundingAsset      string
	RewardAsset       string
	EscrowAccount     string
	FeeRecipient      string
	FeeBps            int64
	RewardRatePerUnit int64

	// BlockWithdrawWhenFrozen decides whether freezing also blocks
	// withdrawals. Funding is always blocked on a frozen record.
	BlockWithdrawWhenFrozen bool
}

// Ledger is the transactional facade over the scholarship funding core.
// Every operation runs inside a single unit of work: either all of its
// precondition checks, mutations and collaborator calls take effect, or none
// do. Operations on the same scholarship must be delivered in a total order
// by the caller; operations on different scholarships share no mutable state.
type Ledger struct {
	uowFactory UnitOfWorkFactory
	tokens     interfaces.TokenGateway
	minter     interfaces.RewardMinter
	cache      interfaces.ReputationCache // may be nil
	clock      clockwork.Clock
	cfg        LedgerConfig
}

// NewLedger creates a new ledger facade. cache may be nil to disable the
// reputation read cache.
func NewLedger(uowFactory UnitOfWorkFactory, tokens interfaces.TokenGateway, minter interfaces.RewardMinter, cache interfaces.ReputationCache, clock clockwork.Clock, cfg LedgerConfig) (*Ledger, error) {
	if cfg.FeeBps < 0 || cfg.FeeBps > services.MaxFeeBps {
		return nil, fmt.Errorf("fee rate %d bps: %w", cfg.FeeBps, entities.ErrFeeRateTooHigh)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Ledger{
		uowFactory: uowFactory,
		tokens:     tokens,
		minter:     minter,
		cache:      cache,
		clock:      clock,
		cfg:        cfg,
	}, nil
}

// runInTx executes fn inside one unit of work, rolling back on any error
func (l *Ledger) runInTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin operation: %w", err)
	}

	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.Errorf("Failed to rollback operation: %v", rbErr)
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit operation: %w", err)
	}
	return nil
}

func (l *Ledger) fundingService(uow UnitOfWork) interfaces.FundingService {
	return services.NewFundingService(
		uow.ScholarshipRepository(),
		uow.ContributionRepository(),
		l.tokens,
		l.minter,
		services.FundingParams{
			FundingAsset:      l.cfg.FundingAsset,
			RewardAsset:       l.cfg.RewardAsset,
			EscrowAccount:     l.cfg.EscrowAccount,
			RewardRatePerUnit: l.cfg.RewardRatePerUnit,
		},
	)
}

func (l *Ledger) withdrawalService(uow UnitOfWork) interfaces.WithdrawalService {
	return services.NewWithdrawalService(
		uow.ScholarshipRepository(),
		uow.WithdrawalRepository(),
		l.tokens,
		l.clock,
		services.WithdrawalParams{
			FeeBps:          l.cfg.FeeBps,
			FeeRecipient:    l.cfg.FeeRecipient,
			FundingAsset:    l.cfg.FundingAsset,
			EscrowAccount:   l.cfg.EscrowAccount,
			BlockWhenFrozen: l.cfg.BlockWithdrawWhenFrozen,
		},
	)
}

func (l *Ledger) freezeService(uow UnitOfWork) interfaces.FreezeService {
	return services.NewFreezeService(uow.ScholarshipRepository(), uow.RatingRepository())
}

func (l *Ledger) reputationService(uow UnitOfWork) interfaces.ReputationService {
	return services.NewReputationService(
		uow.ScholarshipRepository(),
		uow.RatingRepository(),
		l.tokens,
		l.freezeService(uow),
		l.clock,
	)
}

// Register mints a new scholarship record for a student
func (l *Ledger) Register(ctx context.Context, student string) (*entities.Scholarship, error) {
	var scholarship *entities.Scholarship
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		scholarship, err = uow.ScholarshipRepository().Create(ctx, student)
		if err != nil {
			return fmt.Errorf("failed to register scholarship: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("Registered scholarship %d for student %s", scholarship.ID, student)
	return scholarship, nil
}

// Fund applies one investor contribution
func (l *Ledger) Fund(ctx context.Context, scholarshipID int64, investor string, amount int64) (*entities.Contribution, error) {
	var contribution *entities.Contribution
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		contribution, err = l.fundingService(uow).Fund(ctx, scholarshipID, investor, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contribution, nil
}

// Withdraw pays out part of a scholarship's escrow to its student
func (l *Ledger) Withdraw(ctx context.Context, scholarshipID int64, requester string, amount int64) (*entities.Withdrawal, error) {
	var withdrawal *entities.Withdrawal
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		withdrawal, err = l.withdrawalService(uow).Withdraw(ctx, scholarshipID, requester, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// Rate upserts an investor's token-weighted rating and recomputes the freeze
// flag in the same step
func (l *Ledger) Rate(ctx context.Context, scholarshipID int64, investor string, score, tokens int64) (*entities.ReputationAggregate, error) {
	var aggregate *entities.ReputationAggregate
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		aggregate, err = l.reputationService(uow).Rate(ctx, scholarshipID, investor, score, tokens)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.invalidateCache(ctx, scholarshipID)
	return aggregate, nil
}

// GetScholarship returns the current scholarship record
func (l *Ledger) GetScholarship(ctx context.Context, scholarshipID int64) (*entities.Scholarship, error) {
	var scholarship *entities.Scholarship
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		scholarship, err = uow.ScholarshipRepository().GetByID(ctx, scholarshipID)
		if err != nil {
			return fmt.Errorf("failed to get scholarship: %w", err)
		}
		if scholarship == nil {
			return fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scholarship, nil
}

// ListScholarships returns all scholarship records ordered by id
func (l *Ledger) ListScholarships(ctx context.Context) ([]*entities.Scholarship, error) {
	var scholarships []*entities.Scholarship
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		scholarships, err = uow.ScholarshipRepository().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return scholarships, nil
}

// TotalFunding returns the lifetime funding received by a scholarship
func (l *Ledger) TotalFunding(ctx context.Context, scholarshipID int64) (int64, error) {
	var total int64
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		total, err = l.fundingService(uow).TotalFunding(ctx, scholarshipID)
		return err
	})
	return total, err
}

// Investors returns investor identities in first-contribution order
func (l *Ledger) Investors(ctx context.Context, scholarshipID int64) ([]string, error) {
	var investors []string
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		investors, err = l.fundingService(uow).Investors(ctx, scholarshipID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return investors, nil
}

// ContributionOf returns an investor's cumulative contribution, 0 for
// investors who never funded this scholarship
func (l *Ledger) ContributionOf(ctx context.Context, scholarshipID int64, investor string) (int64, error) {
	var amount int64
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		amount, err = l.fundingService(uow).ContributionOf(ctx, scholarshipID, investor)
		return err
	})
	return amount, err
}

// InvestorCount returns the number of distinct investors
func (l *Ledger) InvestorCount(ctx context.Context, scholarshipID int64) (int64, error) {
	var count int64
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		count, err = l.fundingService(uow).InvestorCount(ctx, scholarshipID)
		return err
	})
	return count, err
}

// WithdrawalHistory returns the full withdrawal history in append order
func (l *Ledger) WithdrawalHistory(ctx context.Context, scholarshipID int64) ([]*entities.Withdrawal, error) {
	var withdrawals []*entities.Withdrawal
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		withdrawals, err = l.withdrawalService(uow).History(ctx, scholarshipID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// WithdrawalHistoryColumns returns the history as three index-aligned
// sequences: net amounts, timestamps and fee amounts.
func (l *Ledger) WithdrawalHistoryColumns(ctx context.Context, scholarshipID int64) (netAmounts []int64, timestamps []time.Time, feeAmounts []int64, err error) {
	withdrawals, err := l.WithdrawalHistory(ctx, scholarshipID)
	if err != nil {
		return nil, nil, nil, err
	}

	netAmounts = make([]int64, len(withdrawals))
	timestamps = make([]time.Time, len(withdrawals))
	feeAmounts = make([]int64, len(withdrawals))
	for i, w := range withdrawals {
		netAmounts[i] = w.NetAmount
		timestamps[i] = w.CreatedAt
		feeAmounts[i] = w.FeeAmount
	}
	return netAmounts, timestamps, feeAmounts, nil
}

// WithdrawalStats returns aggregate withdrawal statistics
func (l *Ledger) WithdrawalStats(ctx context.Context, scholarshipID int64) (*entities.WithdrawalStats, error) {
	var stats *entities.WithdrawalStats
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		stats, err = l.withdrawalService(uow).Stats(ctx, scholarshipID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Reputation returns the current aggregate, consulting the read cache first.
// The database row is the source of truth; cache failures are logged and
// ignored.
func (l *Ledger) Reputation(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error) {
	if l.cache != nil {
		cached, err := l.cache.Get(ctx, scholarshipID)
		if err != nil {
			log.Warnf("Reputation cache read failed for scholarship %d: %v", scholarshipID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	var aggregate *entities.ReputationAggregate
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		aggregate, err = l.reputationService(uow).Aggregate(ctx, scholarshipID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, aggregate); err != nil {
			log.Warnf("Reputation cache write failed for scholarship %d: %v", scholarshipID, err)
		}
	}
	return aggregate, nil
}

// ShouldFreeze evaluates the pure freeze predicate, independently of the
// persisted frozen flag, so observers can detect divergence
func (l *Ledger) ShouldFreeze(ctx context.Context, scholarshipID int64) (bool, error) {
	var should bool
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		should, err = l.freezeService(uow).ShouldFreeze(ctx, scholarshipID)
		return err
	})
	return should, err
}

// RecomputeFrozen is the explicit reconciliation entry point: it overwrites
// the frozen flag with the predicate result and returns the new value
func (l *Ledger) RecomputeFrozen(ctx context.Context, scholarshipID int64) (bool, error) {
	var frozen bool
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		var err error
		frozen, err = l.freezeService(uow).Recompute(ctx, scholarshipID)
		return err
	})
	return frozen, err
}

// SetFrozenOverride is the administrative freeze override. The flag may
// diverge from ShouldFreeze until the next rating or explicit recompute.
func (l *Ledger) SetFrozenOverride(ctx context.Context, scholarshipID int64, frozen bool) error {
	return l.runInTx(ctx, func(uow UnitOfWork) error {
		return l.freezeService(uow).ManualSetFrozen(ctx, scholarshipID, frozen)
	})
}

// EligibleForRemoval reports whether a scholarship could be deleted: no
// funding ever received, no ratings, no withdrawal history.
func (l *Ledger) EligibleForRemoval(ctx context.Context, scholarshipID int64) (bool, error) {
	var eligible bool
	err := l.runInTx(ctx, func(uow UnitOfWork) error {
		scholarship, err := uow.ScholarshipRepository().GetByID(ctx, scholarshipID)
		if err != nil {
			return fmt.Errorf("failed to get scholarship: %w", err)
		}
		if scholarship == nil {
			return fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
		}
		if scholarship.TotalFunding != 0 {
			eligible = false
			return nil
		}

		ratingCount, err := uow.RatingRepository().CountByScholarship(ctx, scholarshipID)
		if err != nil {
			return fmt.Errorf("failed to count ratings: %w", err)
		}
		stats, err := uow.WithdrawalRepository().GetStats(ctx, scholarshipID)
		if err != nil {
			return fmt.Errorf("failed to get withdrawal stats: %w", err)
		}

		eligible = ratingCount == 0 && stats.Count == 0
		return nil
	})
	return eligible, err
}

func (l *Ledger) invalidateCache(ctx context.Context, scholarshipID int64) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, scholarshipID); err != nil {
		log.Warnf("Reputation cache invalidation failed for scholarship %d: %v", scholarshipID, err)
	}
}
