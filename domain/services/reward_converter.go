package services

import (
	"math/big"

	"scholarfund/domain/entities"
)

// RewardDecimals is the fixed-point convention for reward rates: rates are
// always expressed with 18 decimals regardless of the funding asset's scale.
const RewardDecimals = 18

var rewardUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(RewardDecimals), nil)

// RewardConverter converts a funding amount into a reward-mint amount across
// differing fixed-point decimal scales.
type RewardConverter struct{}

// NewRewardConverter creates a new reward converter
func NewRewardConverter() *RewardConverter {
	return &RewardConverter{}
}

// Convert computes amount × 10^(18−srcDecimals) × ratePerUnit / 10^18.
// Intermediates use big.Int and the single floor division happens at the end,
// so no rounding error accumulates across steps. Results that do not fit in
// int64 fail closed.
func (c *RewardConverter) Convert(amount, srcDecimals, ratePerUnit int64) (int64, error) {
	if amount <= 0 {
		return 0, entities.ErrAmountNotPositive
	}
	if srcDecimals < 0 || srcDecimals > RewardDecimals {
		return 0, entities.ErrInvalidDecimals
	}
	if ratePerUnit < 0 {
		return 0, entities.ErrArithmeticOverflow
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(RewardDecimals-srcDecimals), nil)
	mint := new(big.Int).Mul(big.NewInt(amount), scale)
	mint.Mul(mint, big.NewInt(ratePerUnit))
	mint.Quo(mint, rewardUnit)

	if !mint.IsInt64() {
		return 0, entities.ErrArithmeticOverflow
	}
	return mint.Int64(), nil
}
