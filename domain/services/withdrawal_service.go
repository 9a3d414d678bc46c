package services

import (
	"context"
	"fmt"

	"scholarfund/domain/entities"
	"scholarfund/domain/interfaces"
	"scholarfund/domain/utils"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// MaxFeeBps is the hard cap on the protocol withdrawal fee: 1000 basis
// points, i.e. 10%.
const MaxFeeBps = 1000

// feeDenominator converts basis points to a fraction
const feeDenominator = 10000

// WithdrawalParams holds the protocol parameters a withdrawal needs
type WithdrawalParams struct {
	FeeBps        int64
	FeeRecipient  string
	FundingAsset  string
	EscrowAccount string

	// BlockWhenFrozen decides whether a frozen scholarship also rejects
	// withdrawals. Freezing is only required to block funding; this is a
	// deployment policy.
	BlockWhenFrozen bool
}

type withdrawalService struct {
	scholarshipRepo interfaces.ScholarshipRepository
	withdrawalRepo  interfaces.WithdrawalRepository
	tokens          interfaces.TokenGateway
	clock           clockwork.Clock
	params          WithdrawalParams
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(scholarshipRepo interfaces.ScholarshipRepository, withdrawalRepo interfaces.WithdrawalRepository, tokens interfaces.TokenGateway, clock clockwork.Clock, params WithdrawalParams) interfaces.WithdrawalService {
	return &withdrawalService{
		scholarshipRepo: scholarshipRepo,
		withdrawalRepo:  withdrawalRepo,
		tokens:          tokens,
		clock:           clock,
		params:          params,
	}
}

// Withdraw debits the gross amount from escrow, pays out net to the student
// and fee to the protocol recipient, and appends the history entry.
func (s *withdrawalService) Withdraw(ctx context.Context, scholarshipID int64, requester string, amount int64) (*entities.Withdrawal, error) {
	if s.params.FeeBps < 0 || s.params.FeeBps > MaxFeeBps {
		return nil, fmt.Errorf("fee rate %d bps: %w", s.params.FeeBps, entities.ErrFeeRateTooHigh)
	}

	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	if scholarship == nil {
		return nil, fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
	}

	if s.params.BlockWhenFrozen && scholarship.Frozen {
		return nil, fmt.Errorf("withdrawing from scholarship %d: %w", scholarshipID, entities.ErrScholarshipFrozen)
	}
	if err := scholarship.ValidateWithdrawal(requester, amount); err != nil {
		return nil, fmt.Errorf("withdrawing from scholarship %d: %w", scholarshipID, err)
	}

	fee, err := utils.MulDivFloor(amount, s.params.FeeBps, feeDenominator)
	if err != nil {
		return nil, fmt.Errorf("withdrawing from scholarship %d: %w", scholarshipID, err)
	}
	net := amount - fee

	// The full gross amount leaves escrow.
	newBalance := scholarship.Balance - amount
	if err := s.scholarshipRepo.UpdateBalances(ctx, scholarshipID, newBalance, scholarship.TotalFunding); err != nil {
		return nil, fmt.Errorf("failed to debit escrow balance: %w", err)
	}

	withdrawal := &entities.Withdrawal{
		ScholarshipID: scholarshipID,
		NetAmount:     net,
		FeeAmount:     fee,
		CreatedAt:     s.clock.Now().UTC(),
	}
	if err := s.withdrawalRepo.Record(ctx, withdrawal); err != nil {
		return nil, fmt.Errorf("failed to record withdrawal: %w", err)
	}

	if err := s.tokens.Transfer(ctx, s.params.FundingAsset, s.params.EscrowAccount, requester, net); err != nil {
		return nil, fmt.Errorf("failed to transfer net amount: %w", err)
	}
	if fee > 0 {
		if err := s.tokens.Transfer(ctx, s.params.FundingAsset, s.params.EscrowAccount, s.params.FeeRecipient, fee); err != nil {
			return nil, fmt.Errorf("failed to transfer fee: %w", err)
		}
	}

	log.Infof("Withdrawal from scholarship %d: net=%d fee=%d balance=%d", scholarshipID, net, fee, newBalance)

	return withdrawal, nil
}

// History returns the full withdrawal history in append order
func (s *withdrawalService) History(ctx context.Context, scholarshipID int64) ([]*entities.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.GetByScholarship(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal history: %w", err)
	}
	return withdrawals, nil
}

// Stats returns aggregate withdrawal statistics
func (s *withdrawalService) Stats(ctx context.Context, scholarshipID int64) (*entities.WithdrawalStats, error) {
	stats, err := s.withdrawalRepo.GetStats(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal stats: %w", err)
	}
	return stats, nil
}
