package services

import (
	"math"
	"testing"

	"scholarfund/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardConverter_Convert(t *testing.T) {
	converter := NewRewardConverter()
	oneToOne := int64(1_000_000_000_000_000_000) // 1.0 at 18 decimals

	tests := []struct {
		name        string
		amount      int64
		srcDecimals int64
		ratePerUnit int64
		want        int64
	}{
		{
			name:        "six decimal asset at 1:1 scales up",
			amount:      1_000_000, // 1.0 USDC
			srcDecimals: 6,
			ratePerUnit: oneToOne,
			want:        1_000_000_000_000_000_000, // 1.0 reward
		},
		{
			name:        "eighteen decimal asset at 1:1 is identity",
			amount:      42,
			srcDecimals: 18,
			ratePerUnit: oneToOne,
			want:        42,
		},
		{
			name:        "half rate floors once at the end",
			amount:      3,
			srcDecimals: 18,
			ratePerUnit: oneToOne / 2,
			want:        1, // floor(3 * 0.5) = 1, not floor(0.5)*3 = 0
		},
		{
			name:        "zero rate mints nothing",
			amount:      1_000_000,
			srcDecimals: 6,
			ratePerUnit: 0,
			want:        0,
		},
		{
			name:        "sub-unit dust floors to zero",
			amount:      1,
			srcDecimals: 18,
			ratePerUnit: oneToOne / 2,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := converter.Convert(tt.amount, tt.srcDecimals, tt.ratePerUnit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewardConverter_ConvertErrors(t *testing.T) {
	converter := NewRewardConverter()
	oneToOne := int64(1_000_000_000_000_000_000)

	_, err := converter.Convert(0, 6, oneToOne)
	assert.ErrorIs(t, err, entities.ErrAmountNotPositive)

	_, err = converter.Convert(-100, 6, oneToOne)
	assert.ErrorIs(t, err, entities.ErrAmountNotPositive)

	_, err = converter.Convert(100, -1, oneToOne)
	assert.ErrorIs(t, err, entities.ErrInvalidDecimals)

	_, err = converter.Convert(100, 19, oneToOne)
	assert.ErrorIs(t, err, entities.ErrInvalidDecimals)

	_, err = converter.Convert(100, 6, -1)
	assert.ErrorIs(t, err, entities.ErrArithmeticOverflow)

	// A max-int64 amount in a low-decimal asset cannot fit back into int64:
	// the conversion fails closed rather than wrapping.
	_, err = converter.Convert(math.MaxInt64, 0, oneToOne)
	assert.ErrorIs(t, err, entities.ErrArithmeticOverflow)
}
