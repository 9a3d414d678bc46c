package entities

import "time"

// Scholarship represents a funded scholarship record with its escrow balance
type Scholarship struct {
	ID           int64     `db:"id"`
	Student      string    `db:"student"`
	Balance      int64     `db:"balance"`
	TotalFunding int64     `db:"total_funding"`
	Frozen       bool      `db:"frozen"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsStudent checks whether the given identity owns this scholarship
func (s *Scholarship) IsStudent(identity string) bool {
	return s.Student == identity
}

// HasSufficientBalance checks if the escrow balance covers a withdrawal amount
func (s *Scholarship) HasSufficientBalance(amount int64) bool {
	return s.Balance >= amount
}

// ValidateWithdrawal checks the withdrawal preconditions that depend only on
// this record: requester identity, positive amount, sufficient escrow balance
func (s *Scholarship) ValidateWithdrawal(requester string, amount int64) error {
	if !s.IsStudent(requester) {
		return ErrNotStudent
	}
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	if !s.HasSufficientBalance(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ValidateFunding checks the funding preconditions that depend only on this
// record. Frozen records reject funding before any state change.
func (s *Scholarship) ValidateFunding(amount int64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	if s.Frozen {
		return ErrScholarshipFrozen
	}
	return nil
}
