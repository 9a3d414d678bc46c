package services

import (
	"context"
	"testing"

	"scholarfund/domain/entities"
	"scholarfund/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFundingParams() FundingParams {
	return FundingParams{
		FundingAsset:      "USDC",
		RewardAsset:       "SCHLR",
		EscrowAccount:     "scholarship-escrow",
		RewardRatePerUnit: 1_000_000_000_000_000_000, // 1:1
	}
}

func TestFundingService_Fund(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockContributionRepo := new(testhelpers.MockContributionRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockMinter := new(testhelpers.MockRewardMinter)

	service := NewFundingService(mockScholarshipRepo, mockContributionRepo, mockTokens, mockMinter, testFundingParams())

	scholarship := &entities.Scholarship{ID: 1, Student: "alice", Balance: 500, TotalFunding: 500}
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(scholarship, nil)
	mockTokens.On("Transfer", ctx, "USDC", "bob", "scholarship-escrow", int64(1_000_000)).Return(nil)
	mockContributionRepo.On("Record", ctx, int64(1), "bob", int64(1_000_000)).Return(
		&entities.Contribution{ScholarshipID: 1, Investor: "bob", Amount: 1_000_000}, nil)
	mockScholarshipRepo.On("UpdateBalances", ctx, int64(1), int64(1_000_500), int64(1_000_500)).Return(nil)
	mockTokens.On("Decimals", ctx, "USDC").Return(int64(6), nil)
	// 1.0 USDC at 1:1 mints 1.0 reward at 18 decimals.
	mockMinter.On("Mint", ctx, "SCHLR", "bob", int64(1_000_000_000_000_000_000)).Return(nil)

	contribution, err := service.Fund(ctx, 1, "bob", 1_000_000)

	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), contribution.Amount)
	mockScholarshipRepo.AssertExpectations(t)
	mockContributionRepo.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
	mockMinter.AssertExpectations(t)
}

func TestFundingService_FundAccumulatesAcrossInvestors(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockContributionRepo := new(testhelpers.MockContributionRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockMinter := new(testhelpers.MockRewardMinter)

	params := testFundingParams()
	params.RewardRatePerUnit = 0 // no reward program for this deployment
	service := NewFundingService(mockScholarshipRepo, mockContributionRepo, mockTokens, mockMinter, params)

	// First funding by bob.
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(
		&entities.Scholarship{ID: 1, Student: "alice"}, nil).Once()
	mockTokens.On("Transfer", ctx, "USDC", "bob", "scholarship-escrow", int64(1000)).Return(nil)
	mockContributionRepo.On("Record", ctx, int64(1), "bob", int64(1000)).Return(
		&entities.Contribution{ScholarshipID: 1, Investor: "bob", Amount: 1000}, nil)
	mockScholarshipRepo.On("UpdateBalances", ctx, int64(1), int64(1000), int64(1000)).Return(nil)
	mockTokens.On("Decimals", ctx, "USDC").Return(int64(6), nil)

	_, err := service.Fund(ctx, 1, "bob", 1000)
	require.NoError(t, err)

	// Second funding by carol sees the updated balances.
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(
		&entities.Scholarship{ID: 1, Student: "alice", Balance: 1000, TotalFunding: 1000}, nil).Once()
	mockTokens.On("Transfer", ctx, "USDC", "carol", "scholarship-escrow", int64(2500)).Return(nil)
	mockContributionRepo.On("Record", ctx, int64(1), "carol", int64(2500)).Return(
		&entities.Contribution{ScholarshipID: 1, Investor: "carol", Amount: 2500}, nil)
	mockScholarshipRepo.On("UpdateBalances", ctx, int64(1), int64(3500), int64(3500)).Return(nil)

	_, err = service.Fund(ctx, 1, "carol", 2500)
	require.NoError(t, err)

	// Zero rate means no mint call at all.
	mockMinter.AssertNotCalled(t, "Mint")
	mockScholarshipRepo.AssertExpectations(t)
}

func TestFundingService_FundUnknownScholarship(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockContributionRepo := new(testhelpers.MockContributionRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockMinter := new(testhelpers.MockRewardMinter)

	service := NewFundingService(mockScholarshipRepo, mockContributionRepo, mockTokens, mockMinter, testFundingParams())

	mockScholarshipRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := service.Fund(ctx, 99, "bob", 1000)
	assert.ErrorIs(t, err, entities.ErrScholarshipNotFound)
	mockTokens.AssertNotCalled(t, "Transfer")
}

func TestFundingService_FundNonpositiveAmount(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockContributionRepo := new(testhelpers.MockContributionRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockMinter := new(testhelpers.MockRewardMinter)

	service := NewFundingService(mockScholarshipRepo, mockContributionRepo, mockTokens, mockMinter, testFundingParams())

	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)

	_, err := service.Fund(ctx, 1, "bob", 0)
	assert.ErrorIs(t, err, entities.ErrAmountNotPositive)

	_, err = service.Fund(ctx, 1, "bob", -500)
	assert.ErrorIs(t, err, entities.ErrAmountNotPositive)

	mockTokens.AssertNotCalled(t, "Transfer")
	mockContributionRepo.AssertNotCalled(t, "Record")
}

func TestFundingService_FundFrozenScholarship(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockContributionRepo := new(testhelpers.MockContributionRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockMinter := new(testhelpers.MockRewardMinter)

	service := NewFundingService(mockScholarshipRepo, mockContributionRepo, mockTokens, mockMinter, testFundingParams())

	frozen := &entities.Scholarship{ID: 1, Student: "alice", Balance: 5000, TotalFunding: 5000, Frozen: true}
	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(frozen, nil)

	_, err := service.Fund(ctx, 1, "bob", 1000)

	assert.ErrorIs(t, err, entities.ErrScholarshipFrozen)
	mockTokens.AssertNotCalled(t, "Transfer")
	mockContributionRepo.AssertNotCalled(t, "Record")
	mockScholarshipRepo.AssertNotCalled(t, "UpdateBalances")
}

func TestFundingService_ContributionOf(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockContributionRepo := new(testhelpers.MockContributionRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockMinter := new(testhelpers.MockRewardMinter)

	service := NewFundingService(mockScholarshipRepo, mockContributionRepo, mockTokens, mockMinter, testFundingParams())

	mockContributionRepo.On("GetByInvestor", ctx, int64(1), "bob").Return(
		&entities.Contribution{ScholarshipID: 1, Investor: "bob", Amount: 3500}, nil)
	mockContributionRepo.On("GetByInvestor", ctx, int64(1), "stranger").Return(nil, nil)

	amount, err := service.ContributionOf(ctx, 1, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(3500), amount)

	// Never-funded investors read as zero, not as an error.
	amount, err = service.ContributionOf(ctx, 1, "stranger")
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)
}

func TestFundingService_Investors(t *testing.T) {
	ctx := context.Background()

	mockScholarshipRepo := new(testhelpers.MockScholarshipRepository)
	mockContributionRepo := new(testhelpers.MockContributionRepository)
	mockTokens := new(testhelpers.MockTokenGateway)
	mockMinter := new(testhelpers.MockRewardMinter)

	service := NewFundingService(mockScholarshipRepo, mockContributionRepo, mockTokens, mockMinter, testFundingParams())

	mockScholarshipRepo.On("GetByID", ctx, int64(1)).Return(&entities.Scholarship{ID: 1, Student: "alice"}, nil)
	mockContributionRepo.On("ListInvestors", ctx, int64(1)).Return([]string{"bob", "carol"}, nil)
	mockContributionRepo.On("CountInvestors", ctx, int64(1)).Return(int64(2), nil)

	investors, err := service.Investors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, investors)

	count, err := service.InvestorCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
