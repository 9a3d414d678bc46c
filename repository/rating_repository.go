package repository

import (
	"context"
	"fmt"

	"scholarfund/database"
	"scholarfund/domain/entities"

	"github.com/jackc/pgx/v5"
)

// RatingRepository implements the RatingRepository interface
type RatingRepository struct {
	q Queryable
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *database.DB) *RatingRepository {
	return &RatingRepository{q: db.Pool}
}

// newRatingRepository creates a repository bound to a transaction
func newRatingRepository(q Queryable) *RatingRepository {
	return &RatingRepository{q: q}
}

// GetByInvestor retrieves an investor's current rating, nil if they have
// never rated this scholarship
func (r *RatingRepository) GetByInvestor(ctx context.Context, scholarshipID int64, investor string) (*entities.Rating, error) {
	query := `
		SELECT scholarship_id, investor, score, tokens_used, updated_at
		FROM ratings
		WHERE scholarship_id = $1 AND investor = $2
	`

	var rating entities.Rating
	err := r.q.QueryRow(ctx, query, scholarshipID, investor).Scan(
		&rating.ScholarshipID,
		&rating.Investor,
		&rating.Score,
		&rating.TokensUsed,
		&rating.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating by investor %s on scholarship %d: %w", investor, scholarshipID, err)
	}

	return &rating, nil
}

// Upsert stores a rating, replacing any prior rating from the same investor
func (r *RatingRepository) Upsert(ctx context.Context, rating *entities.Rating) error {
	query := `
		INSERT INTO ratings (scholarship_id, investor, score, tokens_used, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scholarship_id, investor)
		DO UPDATE SET score = EXCLUDED.score, tokens_used = EXCLUDED.tokens_used, updated_at = EXCLUDED.updated_at
	`

	_, err := r.q.Exec(ctx, query,
		rating.ScholarshipID,
		rating.Investor,
		rating.Score,
		rating.TokensUsed,
		rating.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rating by investor %s on scholarship %d: %w", rating.Investor, rating.ScholarshipID, err)
	}

	return nil
}

// CountByScholarship returns the number of stored ratings
func (r *RatingRepository) CountByScholarship(ctx context.Context, scholarshipID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings WHERE scholarship_id = $1`

	var count int64
	if err := r.q.QueryRow(ctx, query, scholarshipID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ratings for scholarship %d: %w", scholarshipID, err)
	}

	return count, nil
}

// GetAggregate returns the derived aggregate, zero-valued if never rated
func (r *RatingRepository) GetAggregate(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error) {
	query := `
		SELECT scholarship_id, weighted_sum, total_tokens, rater_count
		FROM reputation_aggregates
		WHERE scholarship_id = $1
	`

	var aggregate entities.ReputationAggregate
	err := r.q.QueryRow(ctx, query, scholarshipID).Scan(
		&aggregate.ScholarshipID,
		&aggregate.WeightedSum,
		&aggregate.TotalTokens,
		&aggregate.RaterCount,
	)

	if err == pgx.ErrNoRows {
		return &entities.ReputationAggregate{ScholarshipID: scholarshipID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation aggregate for scholarship %d: %w", scholarshipID, err)
	}

	return &aggregate, nil
}

// SaveAggregate upserts the derived aggregate row
func (r *RatingRepository) SaveAggregate(ctx context.Context, aggregate *entities.ReputationAggregate) error {
	query := `
		INSERT INTO reputation_aggregates (scholarship_id, weighted_sum, total_tokens, rater_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (scholarship_id)
		DO UPDATE SET weighted_sum = EXCLUDED.weighted_sum, total_tokens = EXCLUDED.total_tokens, rater_count = EXCLUDED.rater_count
	`

	_, err := r.q.Exec(ctx, query,
		aggregate.ScholarshipID,
		aggregate.WeightedSum,
		aggregate.TotalTokens,
		aggregate.RaterCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save reputation aggregate for scholarship %d: %w", aggregate.ScholarshipID, err)
	}

	return nil
}
