package application

import (
	"context"

	"scholarfund/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// Every ledger operation runs entirely inside one unit of work so its
// precondition checks and mutations form a single indivisible step.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	ScholarshipRepository() interfaces.ScholarshipRepository
	ContributionRepository() interfaces.ContributionRepository
	WithdrawalRepository() interfaces.WithdrawalRepository
	RatingRepository() interfaces.RatingRepository
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a fresh, unstarted unit of work
	Create() UnitOfWork
}
