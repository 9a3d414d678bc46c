package interfaces

import (
	"context"

	"scholarfund/domain/entities"
)

// FundingService handles investor contributions into scholarship escrow
type FundingService interface {
	// Fund applies one contribution: escrow transfer, ledger update, reward
	// mint. Rejected in full if the scholarship is frozen or unknown, or the
	// amount is not positive.
	Fund(ctx context.Context, scholarshipID int64, investor string, amount int64) (*entities.Contribution, error)

	// TotalFunding returns the lifetime funding received
	TotalFunding(ctx context.Context, scholarshipID int64) (int64, error)

	// Investors returns investor identities in first-contribution order
	Investors(ctx context.Context, scholarshipID int64) ([]string, error)

	// ContributionOf returns an investor's cumulative contribution, 0 for
	// investors who never funded this scholarship
	ContributionOf(ctx context.Context, scholarshipID int64, investor string) (int64, error)

	// InvestorCount returns the number of distinct investors
	InvestorCount(ctx context.Context, scholarshipID int64) (int64, error)
}

// WithdrawalService handles fee-bearing student withdrawals
type WithdrawalService interface {
	// Withdraw debits the gross amount from escrow, transfers net to the
	// student and fee to the protocol recipient, and appends a history entry
	Withdraw(ctx context.Context, scholarshipID int64, requester string, amount int64) (*entities.Withdrawal, error)

	// History returns the full withdrawal history in append order
	History(ctx context.Context, scholarshipID int64) ([]*entities.Withdrawal, error)

	// Stats returns aggregate withdrawal statistics
	Stats(ctx context.Context, scholarshipID int64) (*entities.WithdrawalStats, error)
}

// ReputationService maintains token-weighted ratings and their aggregate
type ReputationService interface {
	// Rate upserts an investor's rating and recomputes the freeze state.
	// A repeat rating replaces the prior one: its old weight is subtracted
	// before the new weight is added.
	Rate(ctx context.Context, scholarshipID int64, investor string, score, tokens int64) (*entities.ReputationAggregate, error)

	// Aggregate returns the current derived aggregate
	Aggregate(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error)
}

// FreezeService owns the frozen flag and its defining predicate
type FreezeService interface {
	// ShouldFreeze recomputes the freeze predicate from the current aggregate
	ShouldFreeze(ctx context.Context, scholarshipID int64) (bool, error)

	// Recompute overwrites the frozen flag with the predicate result and
	// returns the new value
	Recompute(ctx context.Context, scholarshipID int64) (bool, error)

	// ManualSetFrozen is the administrative override. It may leave the flag
	// diverged from the predicate until the next rating recomputes it.
	ManualSetFrozen(ctx context.Context, scholarshipID int64, frozen bool) error
}
