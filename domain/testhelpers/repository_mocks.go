package testhelpers

import (
	"context"

	"scholarfund/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockScholarshipRepository is a mock implementation of ScholarshipRepository
type MockScholarshipRepository struct {
	mock.Mock
}

func (m *MockScholarshipRepository) Create(ctx context.Context, student string) (*entities.Scholarship, error) {
	args := m.Called(ctx, student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Scholarship), args.Error(1)
}

func (m *MockScholarshipRepository) GetByID(ctx context.Context, id int64) (*entities.Scholarship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Scholarship), args.Error(1)
}

func (m *MockScholarshipRepository) UpdateBalances(ctx context.Context, id int64, balance, totalFunding int64) error {
	args := m.Called(ctx, id, balance, totalFunding)
	return args.Error(0)
}

func (m *MockScholarshipRepository) SetFrozen(ctx context.Context, id int64, frozen bool) error {
	args := m.Called(ctx, id, frozen)
	return args.Error(0)
}

func (m *MockScholarshipRepository) GetAll(ctx context.Context) ([]*entities.Scholarship, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Scholarship), args.Error(1)
}

// MockContributionRepository is a mock implementation of ContributionRepository
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) GetByInvestor(ctx context.Context, scholarshipID int64, investor string) (*entities.Contribution, error) {
	args := m.Called(ctx, scholarshipID, investor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contribution), args.Error(1)
}

func (m *MockContributionRepository) Record(ctx context.Context, scholarshipID int64, investor string, amount int64) (*entities.Contribution, error) {
	args := m.Called(ctx, scholarshipID, investor, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contribution), args.Error(1)
}

func (m *MockContributionRepository) ListInvestors(ctx context.Context, scholarshipID int64) ([]string, error) {
	args := m.Called(ctx, scholarshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContributionRepository) GetAllByScholarship(ctx context.Context, scholarshipID int64) ([]*entities.Contribution, error) {
	args := m.Called(ctx, scholarshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Contribution), args.Error(1)
}

func (m *MockContributionRepository) CountInvestors(ctx context.Context, scholarshipID int64) (int64, error) {
	args := m.Called(ctx, scholarshipID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContributionRepository) SumAmounts(ctx context.Context, scholarshipID int64) (int64, error) {
	args := m.Called(ctx, scholarshipID)
	return args.Get(0).(int64), args.Error(1)
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Record(ctx context.Context, withdrawal *entities.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByScholarship(ctx context.Context, scholarshipID int64) ([]*entities.Withdrawal, error) {
	args := m.Called(ctx, scholarshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) GetStats(ctx context.Context, scholarshipID int64) (*entities.WithdrawalStats, error) {
	args := m.Called(ctx, scholarshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WithdrawalStats), args.Error(1)
}

// MockRatingRepository is a mock implementation of RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) GetByInvestor(ctx context.Context, scholarshipID int64, investor string) (*entities.Rating, error) {
	args := m.Called(ctx, scholarshipID, investor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Rating), args.Error(1)
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *entities.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) CountByScholarship(ctx context.Context, scholarshipID int64) (int64, error) {
	args := m.Called(ctx, scholarshipID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) GetAggregate(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error) {
	args := m.Called(ctx, scholarshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReputationAggregate), args.Error(1)
}

func (m *MockRatingRepository) SaveAggregate(ctx context.Context, aggregate *entities.ReputationAggregate) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

// MockTokenGateway is a mock implementation of TokenGateway
type MockTokenGateway struct {
	mock.Mock
}

func (m *MockTokenGateway) Transfer(ctx context.Context, asset, from, to string, amount int64) error {
	args := m.Called(ctx, asset, from, to, amount)
	return args.Error(0)
}

func (m *MockTokenGateway) Decimals(ctx context.Context, asset string) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenGateway) StakeBalance(ctx context.Context, investor string) (int64, error) {
	args := m.Called(ctx, investor)
	return args.Get(0).(int64), args.Error(1)
}

// MockRewardMinter is a mock implementation of RewardMinter
type MockRewardMinter struct {
	mock.Mock
}

func (m *MockRewardMinter) Mint(ctx context.Context, asset, to string, amount int64) error {
	args := m.Called(ctx, asset, to, amount)
	return args.Error(0)
}

// MockFreezeService is a mock implementation of FreezeService
type MockFreezeService struct {
	mock.Mock
}

func (m *MockFreezeService) ShouldFreeze(ctx context.Context, scholarshipID int64) (bool, error) {
	args := m.Called(ctx, scholarshipID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFreezeService) Recompute(ctx context.Context, scholarshipID int64) (bool, error) {
	args := m.Called(ctx, scholarshipID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFreezeService) ManualSetFrozen(ctx context.Context, scholarshipID int64, frozen bool) error {
	args := m.Called(ctx, scholarshipID, frozen)
	return args.Error(0)
}

// MockReputationCache is a mock implementation of ReputationCache
type MockReputationCache struct {
	mock.Mock
}

func (m *MockReputationCache) Get(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error) {
	args := m.Called(ctx, scholarshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReputationAggregate), args.Error(1)
}

func (m *MockReputationCache) Set(ctx context.Context, aggregate *entities.ReputationAggregate) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReputationCache) Invalidate(ctx context.Context, scholarshipID int64) error {
	args := m.Called(ctx, scholarshipID)
	return args.Error(0)
}
