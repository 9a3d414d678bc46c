package services

import (
	"context"
	"fmt"
	"math"

	"scholarfund/domain/entities"
	"scholarfund/domain/interfaces"
	"scholarfund/domain/utils"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// maxWeightedSum keeps the running weighted sum small enough that the
// hundredths-scale average (weightedSum×100/totalTokens) cannot overflow.
const maxWeightedSum = math.MaxInt64 / 100

type reputationService struct {
	scholarshipRepo interfaces.ScholarshipRepository
	ratingRepo      interfaces.RatingRepository
	tokens          interfaces.TokenGateway
	freeze          interfaces.FreezeService
	clock           clockwork.Clock
}

// NewReputationService creates a new reputation service
func NewReputationService(scholarshipRepo interfaces.ScholarshipRepository, ratingRepo interfaces.RatingRepository, tokens interfaces.TokenGateway, freeze interfaces.FreezeService, clock clockwork.Clock) interfaces.ReputationService {
	return &reputationService{
		scholarshipRepo: scholarshipRepo,
		ratingRepo:      ratingRepo,
		tokens:          tokens,
		freeze:          freeze,
		clock:           clock,
	}
}

// Rate upserts an investor's token-weighted rating. A repeat rating first
// subtracts the prior weight from the running sums, then adds the new one, so
// the aggregate stays exact without rescanning stored ratings. The freeze
// flag is recomputed unconditionally afterwards.
func (s *reputationService) Rate(ctx context.Context, scholarshipID int64, investor string, score, tokens int64) (*entities.ReputationAggregate, error) {
	rating := &entities.Rating{
		ScholarshipID: scholarshipID,
		Investor:      investor,
		Score:         score,
		TokensUsed:    tokens,
		UpdatedAt:     s.clock.Now().UTC(),
	}
	if err := rating.Validate(); err != nil {
		return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, err)
	}

	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	if scholarship == nil {
		return nil, fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
	}

	// The stake transfer itself is the collaborator's job; the ledger only
	// verifies the rater holds what they claim to commit.
	stake, err := s.tokens.StakeBalance(ctx, investor)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake balance: %w", err)
	}
	if stake < tokens {
		return nil, fmt.Errorf("investor %s has %d staking tokens, needs %d: %w", investor, stake, tokens, entities.ErrInsufficientStake)
	}

	aggregate, err := s.ratingRepo.GetAggregate(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation aggregate: %w", err)
	}
	previous, err := s.ratingRepo.GetByInvestor(ctx, scholarshipID, investor)
	if err != nil {
		return nil, fmt.Errorf("failed to get prior rating: %w", err)
	}

	weightedSum := aggregate.WeightedSum
	totalTokens := aggregate.TotalTokens
	raterCount := aggregate.RaterCount

	if previous != nil {
		oldWeight, err := utils.CheckedMul(previous.Score, previous.TokensUsed)
		if err != nil {
			return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, err)
		}
		if weightedSum, err = utils.CheckedSub(weightedSum, oldWeight); err != nil {
			return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, err)
		}
		if totalTokens, err = utils.CheckedSub(totalTokens, previous.TokensUsed); err != nil {
			return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, err)
		}
	} else {
		raterCount++
	}

	newWeight, err := utils.CheckedMul(score, tokens)
	if err != nil {
		return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, err)
	}
	if weightedSum, err = utils.CheckedAdd(weightedSum, newWeight); err != nil {
		return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, err)
	}
	if totalTokens, err = utils.CheckedAdd(totalTokens, tokens); err != nil {
		return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, err)
	}
	if weightedSum > maxWeightedSum {
		return nil, fmt.Errorf("rating scholarship %d: %w", scholarshipID, entities.ErrArithmeticOverflow)
	}

	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to store rating: %w", err)
	}

	updated := &entities.ReputationAggregate{
		ScholarshipID: scholarshipID,
		WeightedSum:   weightedSum,
		TotalTokens:   totalTokens,
		RaterCount:    raterCount,
	}
	if err := s.ratingRepo.SaveAggregate(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save reputation aggregate: %w", err)
	}

	frozen, err := s.freeze.Recompute(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute freeze state: %w", err)
	}

	avg, _ := updated.AverageScoreFixed()
	log.Infof("Rated scholarship %d: investor=%s score=%d tokens=%d avg=%d frozen=%v", scholarshipID, investor, score, tokens, avg, frozen)

	return updated, nil
}

// Aggregate returns the current derived aggregate
func (s *reputationService) Aggregate(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error) {
	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	if scholarship == nil {
		return nil, fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
	}

	aggregate, err := s.ratingRepo.GetAggregate(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation aggregate: %w", err)
	}
	return aggregate, nil
}
