package interfaces

import (
	"context"

	"scholarfund/domain/entities"
)

// ScholarshipRepository defines the interface for scholarship record access
type ScholarshipRepository interface {
	// Create mints a new scholarship record for a student. The store assigns
	// the monotonic id.
	Create(ctx context.Context, student string) (*entities.Scholarship, error)

	// GetByID retrieves a scholarship by id, nil if unknown
	GetByID(ctx context.Context, id int64) (*entities.Scholarship, error)

	// UpdateBalances sets the escrow balance and total funding atomically
	UpdateBalances(ctx context.Context, id int64, balance, totalFunding int64) error

	// SetFrozen overwrites the frozen flag
	SetFrozen(ctx context.Context, id int64, frozen bool) error

	// GetAll returns every scholarship record, ordered by id
	GetAll(ctx context.Context) ([]*entities.Scholarship, error)
}

// ContributionRepository defines the interface for per-investor contribution access
type ContributionRepository interface {
	// GetByInvestor retrieves one investor's cumulative contribution, nil if
	// the investor has never funded this scholarship
	GetByInvestor(ctx context.Context, scholarshipID int64, investor string) (*entities.Contribution, error)

	// Record adds amount to the investor's cumulative contribution, creating
	// the membership row on first contribution
	Record(ctx context.Context, scholarshipID int64, investor string, amount int64) (*entities.Contribution, error)

	// ListInvestors returns investor identities in first-contribution order
	ListInvestors(ctx context.Context, scholarshipID int64) ([]string, error)

	// GetAllByScholarship returns all contributions in first-contribution order
	GetAllByScholarship(ctx context.Context, scholarshipID int64) ([]*entities.Contribution, error)

	// CountInvestors returns the number of distinct investors
	CountInvestors(ctx context.Context, scholarshipID int64) (int64, error)

	// SumAmounts returns the sum of all cumulative contributions
	SumAmounts(ctx context.Context, scholarshipID int64) (int64, error)
}

// WithdrawalRepository defines the interface for the append-only withdrawal log
type WithdrawalRepository interface {
	// Record appends a withdrawal entry and fills in its id and timestamp
	Record(ctx context.Context, withdrawal *entities.Withdrawal) error

	// GetByScholarship returns the full history in append order
	GetByScholarship(ctx context.Context, scholarshipID int64) ([]*entities.Withdrawal, error)

	// GetStats returns aggregate withdrawal statistics
	GetStats(ctx context.Context, scholarshipID int64) (*entities.WithdrawalStats, error)
}

// RatingRepository defines the interface for ratings and the derived aggregate
type RatingRepository interface {
	// GetByInvestor retrieves an investor's current rating, nil if they have
	// never rated this scholarship
	GetByInvestor(ctx context.Context, scholarshipID int64, investor string) (*entities.Rating, error)

	// Upsert stores a rating, replacing any prior rating from the same investor
	Upsert(ctx context.Context, rating *entities.Rating) error

	// CountByScholarship returns the number of stored ratings
	CountByScholarship(ctx context.Context, scholarshipID int64) (int64, error)

	// GetAggregate returns the derived aggregate, zero-valued if never rated
	GetAggregate(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error)

	// SaveAggregate upserts the derived aggregate row
	SaveAggregate(ctx context.Context, aggregate *entities.ReputationAggregate) error
}
