package repository

import (
	"context"
	"testing"

	"scholarfund/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRepository_UpsertReplacesRow(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	scholarshipRepo := NewScholarshipRepository(testDB.DB)
	repo := NewRatingRepository(testDB.DB)
	ctx := context.Background()

	scholarship, err := scholarshipRepo.Create(ctx, "alice")
	require.NoError(t, err)

	rating := testutil.CreateTestRatingWithTokens(scholarship.ID, "bob", 2, 100)
	require.NoError(t, repo.Upsert(ctx, rating))

	// Re-rating replaces the stored row entirely.
	rerating := testutil.CreateTestRatingWithTokens(scholarship.ID, "bob", 8, 200)
	require.NoError(t, repo.Upsert(ctx, rerating))

	stored, err := repo.GetByInvestor(ctx, scholarship.ID, "bob")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(8), stored.Score)
	assert.Equal(t, int64(200), stored.TokensUsed)

	count, err := repo.CountByScholarship(ctx, scholarship.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRatingRepository_GetByInvestorMiss(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	scholarshipRepo := NewScholarshipRepository(testDB.DB)
	repo := NewRatingRepository(testDB.DB)
	ctx := context.Background()

	scholarship, err := scholarshipRepo.Create(ctx, "alice")
	require.NoError(t, err)

	rating, err := repo.GetByInvestor(ctx, scholarship.ID, "stranger")
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestRatingRepository_Aggregate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	scholarshipRepo := NewScholarshipRepository(testDB.DB)
	repo := NewRatingRepository(testDB.DB)
	ctx := context.Background()

	scholarship, err := scholarshipRepo.Create(ctx, "alice")
	require.NoError(t, err)

	t.Run("zero-valued when never rated", func(t *testing.T) {
		aggregate, err := repo.GetAggregate(ctx, scholarship.ID)
		require.NoError(t, err)
		require.NotNil(t, aggregate)
		assert.Equal(t, scholarship.ID, aggregate.ScholarshipID)
		assert.Equal(t, int64(0), aggregate.TotalTokens)
		assert.False(t, aggregate.HasRatings())
	})

	t.Run("save and reload round-trips", func(t *testing.T) {
		saved := testutil.CreateTestAggregate(scholarship.ID, 650, 150, 2)
		require.NoError(t, repo.SaveAggregate(ctx, saved))

		aggregate, err := repo.GetAggregate(ctx, scholarship.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(650), aggregate.WeightedSum)
		assert.Equal(t, int64(150), aggregate.TotalTokens)
		assert.Equal(t, int64(2), aggregate.RaterCount)

		avg, ok := aggregate.AverageScoreFixed()
		assert.True(t, ok)
		assert.Equal(t, int64(433), avg)
	})

	t.Run("save again overwrites", func(t *testing.T) {
		updated := testutil.CreateTestAggregate(scholarship.ID, 1600, 200, 1)
		require.NoError(t, repo.SaveAggregate(ctx, updated))

		aggregate, err := repo.GetAggregate(ctx, scholarship.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1600), aggregate.WeightedSum)
		assert.Equal(t, int64(200), aggregate.TotalTokens)
	})
}
