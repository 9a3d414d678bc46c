package testutil

import (
	"time"

	"scholarfund/domain/entities"
)

// CreateTestRating creates a rating with default token weight
func CreateTestRating(scholarshipID int64, investor string, score int64) *entities.Rating {
	return &entities.Rating{
		ScholarshipID: scholarshipID,
		Investor:      investor,
		Score:         score,
		TokensUsed:    100,
		UpdatedAt:     time.Now().UTC(),
	}
}

// CreateTestRatingWithTokens creates a rating with a specific token weight
func CreateTestRatingWithTokens(scholarshipID int64, investor string, score, tokens int64) *entities.Rating {
	rating := CreateTestRating(scholarshipID, investor, score)
	rating.TokensUsed = tokens
	return rating
}

// CreateTestWithdrawal creates a withdrawal entry with the given split
func CreateTestWithdrawal(scholarshipID, netAmount, feeAmount int64) *entities.Withdrawal {
	return &entities.Withdrawal{
		ScholarshipID: scholarshipID,
		NetAmount:     netAmount,
		FeeAmount:     feeAmount,
		CreatedAt:     time.Now().UTC(),
	}
}

// CreateTestAggregate creates a reputation aggregate with explicit totals
func CreateTestAggregate(scholarshipID, weightedSum, totalTokens, raterCount int64) *entities.ReputationAggregate {
	return &entities.ReputationAggregate{
		ScholarshipID: scholarshipID,
		WeightedSum:   weightedSum,
		TotalTokens:   totalTokens,
		RaterCount:    raterCount,
	}
}
