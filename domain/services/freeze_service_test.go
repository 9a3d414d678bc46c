package services

import (
	"context"
	"testing"

	"scholarfund/domain/entities"
	"scholarfund/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreezeService_ShouldFreeze(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockRatingRepo := new(testhelpers.MockRatingRepository)
	service := NewFreezeService(mockScholarshipRepo, mockRatingRepo)

	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)

	// Below-threshold average.
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(
		&entities.ReputationAggregate{ScholarshipID: 1, WeightedSum: 200, TotalTokens: 100, RaterCount: 1}, nil).Once()
	should, err := service.ShouldFreeze(ctx, 1)
	require.NoError(t, err)
	assert.True(t, should)

	// Unrated never freezes.
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(
		&entities.ReputationAggregate{ScholarshipID: 1}, nil).Once()
	should, err = service.ShouldFreeze(ctx, 1)
	require.NoError(t, err)
	assert.False(t, should)
}

func TestFreezeService_RecomputeTransitions(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockRatingRepo := new(testhelpers.MockRatingRepository)
	service := NewFreezeService(mockScholarshipRepo, mockRatingRepo)

	// Currently unfrozen, predicate says freeze.
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(
		&entities.Scholarship{ID: 1, Student: "alice", Frozen: false}, nil)
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(
		&entities.ReputationAggregate{ScholarshipID: 1, WeightedSum: 299, TotalTokens: 100, RaterCount: 1}, nil)
	mockScholarshipRepo.On("SetFrozen", ctx, int64(1), true).Return(nil)

	frozen, err := service.Recompute(ctx, 1)
	require.NoError(t, err)
	assert.True(t, frozen)
	mockScholarshipRepo.AssertExpectations(t)
}

func TestFreezeService_RecomputeClearsManualFreeze(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockRatingRepo := new(testhelpers.MockRatingRepository)
	service := NewFreezeService(mockScholarshipRepo, mockRatingRepo)

	// Manually frozen despite a healthy average: recompute overwrites the
	// override with the predicate result.
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(
		&entities.Scholarship{ID: 1, Student: "alice", Frozen: true}, nil)
	mockRatingRepo.On("GetAggregate", ctx, int64(1)).Return(
		&entities.ReputationAggregate{ScholarshipID: 1, WeightedSum: 800, TotalTokens: 100, RaterCount: 1}, nil)
	mockScholarshipRepo.On("SetFrozen", ctx, int64(1), false).Return(nil)

	frozen, err := service.Recompute(ctx, 1)
	require.NoError(t, err)
	assert.False(t, frozen)
}

func TestFreezeService_ManualSetFrozen(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockRatingRepo := new(testhelpers.MockRatingRepository)
	service := NewFreezeService(mockScholarshipRepo, mockRatingRepo)

	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)
	mockScholarshipRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)
	mockScholarshipRepo.On("SetFrozen", ctx, int64(1), true).Return(nil)

	// The override does not consult the aggregate at all.
	err := service.ManualSetFrozen(ctx, 1, true)
	require.NoError(t, err)
	mockRatingRepo.AssertNotCalled(t, "GetAggregate")

	err = service.ManualSetFrozen(ctx, 99, true)
	assert.ErrorIs(t, err, entities.ErrScholarshipNotFound)
}
