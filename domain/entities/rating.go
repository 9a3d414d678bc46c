package entities

import "time"

// Rating score bounds and stake tiers.
const (
	MinScore = 1
	MaxScore = 10

	// BaseStakePerScorePoint is the advisory stake tier unit: a rating of N
	// is expected to be backed by N times this many tokens. This is guidance
	// for callers, not a precondition enforced by the ledger.
	BaseStakePerScorePoint = 100
)

// Rating is the latest token-weighted score an investor has given a
// scholarship. A re-rating replaces the stored row entirely.
type Rating struct {
	ScholarshipID int64     `db:"scholarship_id"`
	Investor      string    `db:"investor"`
	Score         int64     `db:"score"`
	TokensUsed    int64     `db:"tokens_used"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Validate checks the rating's hard preconditions
func (r *Rating) Validate() error {
	if r.Score < MinScore || r.Score > MaxScore {
		return ErrScoreOutOfRange
	}
	if r.TokensUsed <= 0 {
		return ErrTokensNotPositive
	}
	return nil
}

// RecommendedStake returns the advisory minimum stake for a given score.
// Higher scores are expected to carry proportionally more stake.
func RecommendedStake(score int64) int64 {
	if score < MinScore {
		return BaseStakePerScorePoint
	}
	return score * BaseStakePerScorePoint
}
