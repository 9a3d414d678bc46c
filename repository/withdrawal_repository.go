package repository

import (
	"context"
	"fmt"

	"scholarfund/database"
	"scholarfund/domain/entities"
)

// WithdrawalRepository implements the WithdrawalRepository interface
type WithdrawalRepository struct {
	q Queryable
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *database.DB) *WithdrawalRepository {
	return &WithdrawalRepository{q: db.Pool}
}

// newWithdrawalRepository creates a repository bound to a transaction
func newWithdrawalRepository(q Queryable) *WithdrawalRepository {
	return &WithdrawalRepository{q: q}
}

// Record appends a withdrawal entry to the history log
func (r *WithdrawalRepository) Record(ctx context.Context, withdrawal *entities.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (scholarship_id, net_amount, fee_amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		withdrawal.ScholarshipID,
		withdrawal.NetAmount,
		withdrawal.FeeAmount,
		withdrawal.CreatedAt,
	).Scan(&withdrawal.ID)
	if err != nil {
		return fmt.Errorf("failed to record withdrawal for scholarship %d: %w", withdrawal.ScholarshipID, err)
	}

	return nil
}

// GetByScholarship returns the full history in append order
func (r *WithdrawalRepository) GetByScholarship(ctx context.Context, scholarshipID int64) ([]*entities.Withdrawal, error) {
	query := `
		SELECT id, scholarship_id, net_amount, fee_amount, created_at
		FROM withdrawals
		WHERE scholarship_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawals for scholarship %d: %w", scholarshipID, err)
	}
	defer rows.Close()

	var withdrawals []*entities.Withdrawal
	for rows.Next() {
		var w entities.Withdrawal
		err := rows.Scan(
			&w.ID,
			&w.ScholarshipID,
			&w.NetAmount,
			&w.FeeAmount,
			&w.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		withdrawals = append(withdrawals, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate withdrawals: %w", err)
	}

	return withdrawals, nil
}

// GetStats returns aggregate withdrawal statistics
func (r *WithdrawalRepository) GetStats(ctx context.Context, scholarshipID int64) (*entities.WithdrawalStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(net_amount), 0), COALESCE(SUM(fee_amount), 0)
		FROM withdrawals
		WHERE scholarship_id = $1
	`

	var stats entities.WithdrawalStats
	err := r.q.QueryRow(ctx, query, scholarshipID).Scan(
		&stats.Count,
		&stats.TotalNet,
		&stats.TotalFees,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal stats for scholarship %d: %w", scholarshipID, err)
	}

	return &stats, nil
}
