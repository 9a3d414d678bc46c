package entities

import "errors"

// Typed errors for every precondition the ledger enforces. Callers classify
// failures with errors.Is; services wrap these with operation context.
var (
	// ErrScholarshipNotFound is returned when the scholarship id is unknown.
	ErrScholarshipNotFound = errors.New("scholarship not found")

	// ErrAmountNotPositive is returned for zero or negative fund/withdraw amounts.
	ErrAmountNotPositive = errors.New("amount must be positive")

	// ErrScholarshipFrozen is returned when funding a frozen scholarship.
	ErrScholarshipFrozen = errors.New("scholarship is frozen")

	// ErrNotStudent is returned when a withdrawal requester does not own the record.
	ErrNotStudent = errors.New("requester is not the scholarship student")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the escrow balance.
	ErrInsufficientBalance = errors.New("insufficient escrow balance")

	// ErrScoreOutOfRange is returned for rating scores outside [1,10].
	ErrScoreOutOfRange = errors.New("score must be between 1 and 10")

	// ErrTokensNotPositive is returned for non-positive rating stakes.
	ErrTokensNotPositive = errors.New("token stake must be positive")

	// ErrInsufficientStake is returned when the rater holds fewer tokens than staked.
	ErrInsufficientStake = errors.New("insufficient token stake")

	// ErrArithmeticOverflow is returned when a fee or reward computation would
	// exceed int64 range. Operations fail closed, never wrap.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInvalidDecimals is returned when an asset reports a decimal scale
	// outside the supported [0,18] range.
	ErrInvalidDecimals = errors.New("asset decimals out of supported range")

	// ErrFeeRateTooHigh is returned when the protocol fee exceeds the 10% cap.
	ErrFeeRateTooHigh = errors.New("fee rate exceeds maximum")
)
