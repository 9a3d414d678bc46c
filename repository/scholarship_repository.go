package repository

import (
	"context"
	"fmt"

	"scholarfund/database"
	"scholarfund/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ScholarshipRepository implements the ScholarshipRepository interface
type ScholarshipRepository struct {
	q Queryable
}

// NewScholarshipRepository creates a new scholarship repository
func NewScholarshipRepository(db *database.DB) *ScholarshipRepository {
	return &ScholarshipRepository{q: db.Pool}
}

// newScholarshipRepository creates a repository bound to a transaction
func newScholarshipRepository(q Queryable) *ScholarshipRepository {
	return &ScholarshipRepository{q: q}
}

// Create mints a new scholarship record. The id sequence is the ledger's
// monotonic counter.
func (r *ScholarshipRepository) Create(ctx context.Context, student string) (*entities.Scholarship, error) {
	query := `
		INSERT INTO scholarships (student)
		VALUES ($1)
		RETURNING id, student, balance, total_funding, frozen, created_at, updated_at
	`

	var s entities.Scholarship
	err := r.q.QueryRow(ctx, query, student).Scan(
		&s.ID,
		&s.Student,
		&s.Balance,
		&s.TotalFunding,
		&s.Frozen,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scholarship for student %s: %w", student, err)
	}

	return &s, nil
}

// GetByID retrieves a scholarship by id, nil if unknown
func (r *ScholarshipRepository) GetByID(ctx context.Context, id int64) (*entities.Scholarship, error) {
	query := `
		SELECT id, student, balance, total_funding, frozen, created_at, updated_at
		FROM scholarships
		WHERE id = $1
	`

	var s entities.Scholarship
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Student,
		&s.Balance,
		&s.TotalFunding,
		&s.Frozen,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship %d: %w", id, err)
	}

	return &s, nil
}

// UpdateBalances sets the escrow balance and total funding atomically
func (r *ScholarshipRepository) UpdateBalances(ctx context.Context, id int64, balance, totalFunding int64) error {
	query := `
		UPDATE scholarships
		SET balance = $1, total_funding = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.q.Exec(ctx, query, balance, totalFunding, id)
	if err != nil {
		return fmt.Errorf("failed to update balances for scholarship %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("scholarship %d not found", id)
	}

	return nil
}

// SetFrozen overwrites the frozen flag
func (r *ScholarshipRepository) SetFrozen(ctx context.Context, id int64, frozen bool) error {
	query := `
		UPDATE scholarships
		SET frozen = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.q.Exec(ctx, query, frozen, id)
	if err != nil {
		return fmt.Errorf("failed to set frozen flag for scholarship %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("scholarship %d not found", id)
	}

	return nil
}

// GetAll returns every scholarship record, ordered by id
func (r *ScholarshipRepository) GetAll(ctx context.Context) ([]*entities.Scholarship, error) {
	query := `
		SELECT id, student, balance, total_funding, frozen, created_at, updated_at
		FROM scholarships
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarships: %w", err)
	}
	defer rows.Close()

	var scholarships []*entities.Scholarship
	for rows.Next() {
		var s entities.Scholarship
		err := rows.Scan(
			&s.ID,
			&s.Student,
			&s.Balance,
			&s.TotalFunding,
			&s.Frozen,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scholarship: %w", err)
		}
		scholarships = append(scholarships, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scholarships: %w", err)
	}

	return scholarships, nil
}
