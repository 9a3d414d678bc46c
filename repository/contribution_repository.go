package repository

import (
	"context"
	"fmt"

	"scholarfund/database"
	"scholarfund/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ContributionRepository implements the ContributionRepository interface
type ContributionRepository struct {
	q Queryable
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *database.DB) *ContributionRepository {
	return &ContributionRepository{q: db.Pool}
}

// newContributionRepository creates a repository bound to a transaction
func newContributionRepository(q Queryable) *ContributionRepository {
	return &ContributionRepository{q: q}
}

// GetByInvestor retrieves one investor's cumulative contribution, nil if the
// investor has never funded this scholarship
func (r *ContributionRepository) GetByInvestor(ctx context.Context, scholarshipID int64, investor string) (*entities.Contribution, error) {
	query := `
		SELECT id, scholarship_id, investor, amount, created_at, updated_at
		FROM contributions
		WHERE scholarship_id = $1 AND investor = $2
	`

	var c entities.Contribution
	err := r.q.QueryRow(ctx, query, scholarshipID, investor).Scan(
		&c.ID,
		&c.ScholarshipID,
		&c.Investor,
		&c.Amount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contribution for investor %s on scholarship %d: %w", investor, scholarshipID, err)
	}

	return &c, nil
}

// Record adds amount to the investor's cumulative contribution. The first
// contribution creates the membership row; later ones only grow the amount,
// so the investor list never gains duplicates.
func (r *ContributionRepository) Record(ctx context.Context, scholarshipID int64, investor string, amount int64) (*entities.Contribution, error) {
	query := `
		INSERT INTO contributions (scholarship_id, investor, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (scholarship_id, investor)
		DO UPDATE SET amount = contributions.amount + EXCLUDED.amount, updated_at = NOW()
		RETURNING id, scholarship_id, investor, amount, created_at, updated_at
	`

	var c entities.Contribution
	err := r.q.QueryRow(ctx, query, scholarshipID, investor, amount).Scan(
		&c.ID,
		&c.ScholarshipID,
		&c.Investor,
		&c.Amount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record contribution for investor %s on scholarship %d: %w", investor, scholarshipID, err)
	}

	return &c, nil
}

// ListInvestors returns investor identities in first-contribution order
func (r *ContributionRepository) ListInvestors(ctx context.Context, scholarshipID int64) ([]string, error) {
	query := `
		SELECT investor
		FROM contributions
		WHERE scholarship_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investors for scholarship %d: %w", scholarshipID, err)
	}
	defer rows.Close()

	var investors []string
	for rows.Next() {
		var investor string
		if err := rows.Scan(&investor); err != nil {
			return nil, fmt.Errorf("failed to scan investor: %w", err)
		}
		investors = append(investors, investor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investors: %w", err)
	}

	return investors, nil
}

// GetAllByScholarship returns all contributions in first-contribution order
func (r *ContributionRepository) GetAllByScholarship(ctx context.Context, scholarshipID int64) ([]*entities.Contribution, error) {
	query := `
		SELECT id, scholarship_id, investor, amount, created_at, updated_at
		FROM contributions
		WHERE scholarship_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contributions for scholarship %d: %w", scholarshipID, err)
	}
	defer rows.Close()

	var contributions []*entities.Contribution
	for rows.Next() {
		var c entities.Contribution
		err := rows.Scan(
			&c.ID,
			&c.ScholarshipID,
			&c.Investor,
			&c.Amount,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions: %w", err)
	}

	return contributions, nil
}

// CountInvestors returns the number of distinct investors
func (r *ContributionRepository) CountInvestors(ctx context.Context, scholarshipID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM contributions WHERE scholarship_id = $1`

	var count int64
	if err := r.q.QueryRow(ctx, query, scholarshipID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count investors for scholarship %d: %w", scholarshipID, err)
	}

	return count, nil
}

// SumAmounts returns the sum of all cumulative contributions
func (r *ContributionRepository) SumAmounts(ctx context.Context, scholarshipID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM contributions WHERE scholarship_id = $1`

	var sum int64
	if err := r.q.QueryRow(ctx, query, scholarshipID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum contributions for scholarship %d: %w", scholarshipID, err)
	}

	return sum, nil
}
