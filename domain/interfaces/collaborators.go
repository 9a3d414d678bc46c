package interfaces

import (
	"context"

	"scholarfund/domain/entities"
)

// TokenGateway is the external asset layer the ledger consumes: escrow
// movement, asset metadata, and stake verification. Calls complete
// synchronously inside the ledger's atomic step; a failure aborts the whole
// operation.
type TokenGateway interface {
	// Transfer moves amount of asset between accounts
	Transfer(ctx context.Context, asset, from, to string, amount int64) error

	// Decimals returns the fixed-point decimal scale of an asset
	Decimals(ctx context.Context, asset string) (int64, error)

	// StakeBalance returns how many staking tokens an investor holds
	StakeBalance(ctx context.Context, investor string) (int64, error)
}

// RewardMinter issues reward tokens to investors when they fund a scholarship
type RewardMinter interface {
	// Mint issues amount of asset to an account
	Mint(ctx context.Context, asset, to string, amount int64) error
}

// ReputationCache is an optional read-side cache for reputation aggregates.
// The database aggregate row is always the source of truth; a cache failure
// must never fail a ledger operation.
type ReputationCache interface {
	// Get returns the cached aggregate, nil on miss
	Get(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error)

	// Set stores the aggregate
	Set(ctx context.Context, aggregate *entities.ReputationAggregate) error

	// Invalidate drops the cached entry for a scholarship
	Invalidate(ctx context.Context, scholarshipID int64) error
}
