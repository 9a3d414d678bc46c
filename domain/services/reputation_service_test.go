package services

import (
	"context"
	"testing"

	"scholarfund/domain/entities"
	"scholarfund/domain/testhelpers"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReputationFixture() (*testhelpers.MockScholarshipRepository, *testhelpers.MockRatingRepository, *testhelpers.MockTokenGateway, *testhelpers.MockFreezeService, *reputationService) {
	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockRatingRepo := new(testhelpers.MockRatingRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockFreeze := new(testhelpers.MockFreezeService)

	service := NewReputationService(mockScholarshipRepo, mockRatingRepo, mockTokens, mockFreeze, clockwork.NewFakeClock()).(*reputationService)
	return mockScholarshipRepo, mockRatingRepo, mockTokens, mockFreeze, service
}

func TestReputationService_RateFirstRating(t *testing.T) {
	ctx := context.Background()
	mockScholarshipRepo, mockRatingRepo, mockTokens, mockFreeze, service := newReputationFixture()

	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)
	mockTokens.On("StakeBalance", ctx, "bob").Return(int64(500), nil)
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(&entities.ReputationAggregate{ScholarshipID: 1}, nil)
	mockRatingRepo.On("GetByInvestor", ctx, int64(1), "bob").Return(nil, nil)
	mockRatingRepo.On("Upsert", ctx, mock.MatchedBy(func(r *entities.Rating) bool {
		return r.ScholarshipID == 1 && r.Investor == "bob" && r.Score == 8 && r.TokensUsed == 100
	})).Return(nil)
	mockRatingRepo.On("SaveAggregate", ctx, mock.MatchedBy(func(a *entities.ReputationAggregate) bool {
		return a.WeightedSum == 800 && a.TotalTokens == 100 && a.RaterCount == 1
	})).Return(nil)
	mockFreeze.On("Recompute", ctx, int64(1)).Return(false, nil)

	aggregate, err := service.Rate(ctx, 1, "bob", 8, 100)

	require.NoError(t, err)
	avg, ok := aggregate.AverageScoreFixed()
	assert.True(t, ok)
	assert.Equal(t, int64(800), avg)
	mockRatingRepo.AssertExpectations(t)
	mockFreeze.AssertExpectations(t)
}

func TestReputationService_RateWeightedBlend(t *testing.T) {
	ctx := context.Background()
	mockScholarshipRepo, mockRatingRepo, mockTokens, mockFreeze, service := newReputationFixture()

	// Carol's 9x50 joins bob's existing 2x100: avg = 650*100/150 = 433.
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)
	mockTokens.On("StakeBalance", ctx, "carol").Return(int64(50), nil)
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(
		&entities.ReputationAggregate{ScholarshipID: 1, WeightedSum: 200, TotalTokens: 100, RaterCount: 1}, nil)
	mockRatingRepo.On("GetByInvestor", ctx, int64(1), "carol").Return(nil, nil)
	mockRatingRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.Rating")).Return(nil)
	mockRatingRepo.On("SaveAggregate", ctx, mock.MatchedBy(func(a *entities.ReputationAggregate) bool {
		return a.WeightedSum == 650 && a.TotalTokens == 150 && a.RaterCount == 2
	})).Return(nil)
	mockFreeze.On("Recompute", ctx, int64(1)).Return(false, nil)

	aggregate, err := service.Rate(ctx, 1, "carol", 9, 50)

	require.NoError(t, err)
	avg, _ := aggregate.AverageScoreFixed()
	assert.Equal(t, int64(433), avg)
	assert.False(t, aggregate.ShouldFreeze())
}

func TestReputationService_ReRatingReplacesOldWeight(t *testing.T) {
	ctx := context.Background()
	mockScholarshipRepo, mockRatingRepo, mockTokens, mockFreeze, service := newReputationFixture()

	// Bob previously rated 2 with 100 tokens; re-rating 8 with 200 subtracts
	// the old weight before adding the new one, and the rater count stays 1.
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)
	mockTokens.On("StakeBalance", ctx, "bob").Return(int64(500), nil)
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(
		&entities.ReputationAggregate{ScholarshipID: 1, WeightedSum: 200, TotalTokens: 100, RaterCount: 1}, nil)
	mockRatingRepo.On("GetByInvestor", ctx, int64(1), "bob").Return(
		&entities.Rating{ScholarshipID: 1, Investor: "bob", Score: 2, TokensUsed: 100}, nil)
	mockRatingRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.Rating")).Return(nil)
	mockRatingRepo.On("SaveAggregate", ctx, mock.MatchedBy(func(a *entities.ReputationAggregate) bool {
		return a.WeightedSum == 1600 && a.TotalTokens == 200 && a.RaterCount == 1
	})).Return(nil)
	mockFreeze.On("Recompute", ctx, int64(1)).Return(false, nil)

	aggregate, err := service.Rate(ctx, 1, "bob", 8, 200)

	require.NoError(t, err)
	assert.Equal(t, int64(1), aggregate.RaterCount)
	avg, _ := aggregate.AverageScoreFixed()
	assert.Equal(t, int64(800), avg)
}

func TestReputationService_RateValidation(t *testing.T) {
	ctx := context.Background()
	mockScholarshipRepo, mockRatingRepo, mockTokens, _, service := newReputationFixture()

	_, err := service.Rate(ctx, 1, "bob", 0, 100)
	assert.ErrorIs(t, err, entities.ErrScoreOutOfRange)

	_, err = service.Rate(ctx, 1, "bob", 11, 100)
	assert.ErrorIs(t, err, entities.ErrScoreOutOfRange)

	_, err = service.Rate(ctx, 1, "bob", 5, 0)
	assert.ErrorIs(t, err, entities.ErrTokensNotPositive)

	// Validation happens before any repository access.
	mockScholarshipRepo.AssertNotCalled(t, "GetByID")
	mockRatingRepo.AssertNotCalled(t, "Upsert")
	mockTokens.AssertNotCalled(t, "StakeBalance")
}

func TestReputationService_RateUnknownScholarship(t *testing.T) {
	ctx := context.Background()
	mockScholarshipRepo, mockRatingRepo, _, _, service := newReputationFixture()

	mockScholarshipRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := service.Rate(ctx, 99, "bob", 5, 100)
	assert.ErrorIs(t, err, entities.ErrScholarshipNotFound)
	mockRatingRepo.AssertNotCalled(t, "Upsert")
}

func TestReputationService_RateInsufficientStake(t *testing.T) {
	ctx := context.Background()
	mockScholarshipRepo, mockRatingRepo, mockTokens, _, service := newReputationFixture()

	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)
	mockTokens.On("StakeBalance", ctx, "bob").Return(int64(50), nil)

	_, err := service.Rate(ctx, 1, "bob", 5, 100)
	assert.ErrorIs(t, err, entities.ErrInsufficientStake)
	mockRatingRepo.AssertNotCalled(t, "Upsert")
	mockRatingRepo.AssertNotCalled(t, "SaveAggregate")
}

func TestReputationService_Aggregate(t *testing.T) {
	ctx := context.Background()
	mockScholarshipRepo, mockRatingRepo, _, _, service := newReputationFixture()

	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)
	mockScholarshipRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(
		&entities.ReputationAggregate{ScholarshipID: 1, WeightedSum: 650, TotalTokens: 150, RaterCount: 2}, nil)

	aggregate, err := service.Aggregate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), aggregate.RaterCount)

	_, err = service.Aggregate(ctx, 99)
	assert.ErrorIs(t, err, entities.ErrScholarshipNotFound)
}
