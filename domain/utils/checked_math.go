package utils

import (
	"math"

	"scholarfund/domain/entities"
)

// Checked int64 arithmetic for money and token amounts. Every multiplication
// in fee and reward computation goes through these; on overflow the operation
// fails closed with entities.ErrArithmeticOverflow instead of wrapping.

// CheckedAdd returns a+b, or an error if the sum overflows int64
func CheckedAdd(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, entities.ErrArithmeticOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, entities.ErrArithmeticOverflow
	}
	return a + b, nil
}

// CheckedSub returns a-b, or an error if the difference overflows int64
func CheckedSub(a, b int64) (int64, error) {
	if b < 0 && a > math.MaxInt64+b {
		return 0, entities.ErrArithmeticOverflow
	}
	if b > 0 && a < math.MinInt64+b {
		return 0, entities.ErrArithmeticOverflow
	}
	return a - b, nil
}

// CheckedMul returns a*b, or an error if the product overflows int64
func CheckedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, entities.ErrArithmeticOverflow
	}
	product := a * b
	if product/b != a {
		return 0, entities.ErrArithmeticOverflow
	}
	return product, nil
}

// MulDivFloor returns floor(a*b/div) with an overflow-checked intermediate
// product. div must be positive.
func MulDivFloor(a, b, div int64) (int64, error) {
	product, err := CheckedMul(a, b)
	if err != nil {
		return 0, err
	}
	result := product / div
	// Integer division truncates toward zero; floor differs for negatives.
	if product%div != 0 && (product < 0) != (div < 0) {
		result--
	}
	return result, nil
}
