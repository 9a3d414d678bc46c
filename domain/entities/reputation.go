package entities

// FreezeThresholdFixed is the auto-freeze cutoff on the hundredths scale:
// a weighted average below 3.00/10.00 freezes the scholarship.
const FreezeThresholdFixed = 300

// ReputationAggregate is the derived per-scholarship rating state: a running
// token-weighted sum maintained incrementally so re-ratings never require a
// rescan of all stored ratings.
type ReputationAggregate struct {
	ScholarshipID int64 `db:"scholarship_id"`
	WeightedSum   int64 `db:"weighted_sum"`
	TotalTokens   int64 `db:"total_tokens"`
	RaterCount    int64 `db:"rater_count"`
}

// HasRatings reports whether any rating weight is currently in the aggregate
func (a *ReputationAggregate) HasRatings() bool {
	return a.TotalTokens > 0
}

// AverageScoreFixed returns the weighted average on the hundredths scale
// (300 means 3.00), truncated toward zero. ok is false when no ratings exist;
// the zero-token case is "no rating", never a division fault.
func (a *ReputationAggregate) AverageScoreFixed() (int64, bool) {
	if a.TotalTokens <= 0 {
		return 0, false
	}
	return a.WeightedSum * 100 / a.TotalTokens, true
}

// ShouldFreeze is the pure freeze predicate: rated and averaging below the
// threshold. The persisted frozen flag is reconciled against this.
func (a *ReputationAggregate) ShouldFreeze() bool {
	avg, ok := a.AverageScoreFixed()
	return ok && avg < FreezeThresholdFixed
}
