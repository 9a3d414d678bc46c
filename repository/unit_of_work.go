package repository

import (
	"context"
	"fmt"

	"scholarfund/application"
	"scholarfund/database"
	"scholarfund/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context

	scholarshipRepo  interfaces.ScholarshipRepository
	contributionRepo interfaces.ContributionRepository
	withdrawalRepo   interfaces.WithdrawalRepository
	ratingRepo       interfaces.RatingRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

// Create returns a fresh, unstarted unit of work
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{db: f.db}
}

// Begin starts a new transaction and binds the repositories to it
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.scholarshipRepo = newScholarshipRepository(tx)
	u.contributionRepo = newContributionRepository(tx)
	u.withdrawalRepo = newWithdrawalRepository(tx)
	u.ratingRepo = newRatingRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	if err := u.tx.Rollback(u.ctx); err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// ScholarshipRepository returns the scholarship repository for this unit of work
func (u *unitOfWork) ScholarshipRepository() interfaces.ScholarshipRepository {
	if u.scholarshipRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.scholarshipRepo
}

// ContributionRepository returns the contribution repository for this unit of work
func (u *unitOfWork) ContributionRepository() interfaces.ContributionRepository {
	if u.contributionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.contributionRepo
}

// WithdrawalRepository returns the withdrawal repository for this unit of work
func (u *unitOfWork) WithdrawalRepository() interfaces.WithdrawalRepository {
	if u.withdrawalRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.withdrawalRepo
}

// RatingRepository returns the rating repository for this unit of work
func (u *unitOfWork) RatingRepository() interfaces.RatingRepository {
	if u.ratingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ratingRepo
}
