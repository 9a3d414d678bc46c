package services

import (
	"context"
	"fmt"

	"scholarfund/domain/entities"
	"scholarfund/domain/interfaces"
	"scholarfund/domain/utils"

	log "github.com/sirupsen/logrus"
)

// FundingParams holds the protocol parameters a funding operation needs
type FundingParams struct {
	FundingAsset      string
	RewardAsset       string
	EscrowAccount     string
	RewardRatePerUnit int64 // 18-decimal fixed point
}

type fundingService struct {
	scholarshipRepo  interfaces.ScholarshipRepository
	contributionRepo interfaces.ContributionRepository
	tokens           interfaces.TokenGateway
	minter           interfaces.RewardMinter
	converter        *RewardConverter
	params           FundingParams
}

// NewFundingService creates a new funding service
func NewFundingService(scholarshipRepo interfaces.ScholarshipRepository, contributionRepo interfaces.ContributionRepository, tokens interfaces.TokenGateway, minter interfaces.RewardMinter, params FundingParams) interfaces.FundingService {
	return &fundingService{
		scholarshipRepo:  scholarshipRepo,
		contributionRepo: contributionRepo,
		tokens:           tokens,
		minter:           minter,
		converter:        NewRewardConverter(),
		params:           params,
	}
}

// Fund applies one investor contribution to a scholarship. Every precondition
// is checked before any mutation; callers run this inside a transaction so a
// failure at any step leaves no partial state.
func (s *fundingService) Fund(ctx context.Context, scholarshipID int64, investor string, amount int64) (*entities.Contribution, error) {
	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	if scholarship == nil {
		return nil, fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
	}

	if err := scholarship.ValidateFunding(amount); err != nil {
		return nil, fmt.Errorf("funding scholarship %d: %w", scholarshipID, err)
	}

	newBalance, err := utils.CheckedAdd(scholarship.Balance, amount)
	if err != nil {
		return nil, fmt.Errorf("funding scholarship %d: %w", scholarshipID, err)
	}
	newTotal, err := utils.CheckedAdd(scholarship.TotalFunding, amount)
	if err != nil {
		return nil, fmt.Errorf("funding scholarship %d: %w", scholarshipID, err)
	}

	// Move the funds into escrow before touching ledger state; a failed
	// transfer aborts the whole operation.
	if err := s.tokens.Transfer(ctx, s.params.FundingAsset, investor, s.params.EscrowAccount, amount); err != nil {
		return nil, fmt.Errorf("failed to transfer funds to escrow: %w", err)
	}

	contribution, err := s.contributionRepo.Record(ctx, scholarshipID, investor, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}

	if err := s.scholarshipRepo.UpdateBalances(ctx, scholarshipID, newBalance, newTotal); err != nil {
		return nil, fmt.Errorf("failed to update scholarship balances: %w", err)
	}

	// Reward minting is a downstream effect of funding, performed in the same
	// atomic step.
	decimals, err := s.tokens.Decimals(ctx, s.params.FundingAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to get funding asset decimals: %w", err)
	}
	mintAmount, err := s.converter.Convert(amount, decimals, s.params.RewardRatePerUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to convert reward amount: %w", err)
	}
	if mintAmount > 0 {
		if err := s.minter.Mint(ctx, s.params.RewardAsset, investor, mintAmount); err != nil {
			return nil, fmt.Errorf("failed to mint reward: %w", err)
		}
	}

	log.Infof("Funded scholarship %d: investor=%s amount=%d reward=%d", scholarshipID, investor, amount, mintAmount)

	return contribution, nil
}

// TotalFunding returns the lifetime funding received by a scholarship
func (s *fundingService) TotalFunding(ctx context.Context, scholarshipID int64) (int64, error) {
	scholarship, err := s.mustGet(ctx, scholarshipID)
	if err != nil {
		return 0, err
	}
	return scholarship.TotalFunding, nil
}

// Investors returns investor identities in first-contribution order
func (s *fundingService) Investors(ctx context.Context, scholarshipID int64) ([]string, error) {
	if _, err := s.mustGet(ctx, scholarshipID); err != nil {
		return nil, err
	}
	investors, err := s.contributionRepo.ListInvestors(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}
	return investors, nil
}

// ContributionOf returns an investor's cumulative contribution. Investors who
// never funded this scholarship get 0, not an error.
func (s *fundingService) ContributionOf(ctx context.Context, scholarshipID int64, investor string) (int64, error) {
	contribution, err := s.contributionRepo.GetByInvestor(ctx, scholarshipID, investor)
	if err != nil {
		return 0, fmt.Errorf("failed to get contribution: %w", err)
	}
	if contribution == nil {
		return 0, nil
	}
	return contribution.Amount, nil
}

// InvestorCount returns the number of distinct investors
func (s *fundingService) InvestorCount(ctx context.Context, scholarshipID int64) (int64, error) {
	count, err := s.contributionRepo.CountInvestors(ctx, scholarshipID)
	if err != nil {
		return 0, fmt.Errorf("failed to count investors: %w", err)
	}
	return count, nil
}

func (s *fundingService) mustGet(ctx context.Context, scholarshipID int64) (*entities.Scholarship, error) {
	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	if scholarship == nil {
		return nil, fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
	}
	return scholarship, nil
}
