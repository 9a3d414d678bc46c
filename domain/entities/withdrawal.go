package entities

import "time"

// Withdrawal is one immutable entry in a scholarship's withdrawal history.
// The gross amount (net + fee) is what left escrow.
type Withdrawal struct {
	ID            int64     `db:"id"`
	ScholarshipID int64     `db:"scholarship_id"`
	NetAmount     int64     `db:"net_amount"`
	FeeAmount     int64     `db:"fee_amount"`
	CreatedAt     time.Time `db:"created_at"`
}

// Gross returns the total amount debited from escrow for this withdrawal
func (w *Withdrawal) Gross() int64 {
	return w.NetAmount + w.FeeAmount
}

// WithdrawalStats aggregates a scholarship's withdrawal history
type WithdrawalStats struct {
	Count     int64
	TotalNet  int64
	TotalFees int64
}

// TotalGross returns the total amount ever debited from escrow
func (s *WithdrawalStats) TotalGross() int64 {
	return s.TotalNet + s.TotalFees
}

// AverageFeeRateBps returns the effective fee rate across all withdrawals in
// basis points, rounded half-up. Returns 0 when nothing has been withdrawn.
func (s *WithdrawalStats) AverageFeeRateBps() int64 {
	gross := s.TotalGross()
	if gross == 0 {
		return 0
	}
	return (s.TotalFees*10000 + gross/2) / gross
}

// AverageFeeRatePercent returns the effective fee rate as a percentage with
// two-decimal precision, e.g. 1.25 for 125 basis points.
func (s *WithdrawalStats) AverageFeeRatePercent() float64 {
	return float64(s.AverageFeeRateBps()) / 100
}
