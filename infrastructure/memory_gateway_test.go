package infrastructure

import (
	"context"
	"testing"

	"scholarfund/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenGateway_Transfer(t *testing.T) {
	ctx := context.Background()
	gateway := NewMemoryTokenGateway()
	gateway.SetBalance("USDC", "bob", 1000)

	err := gateway.Transfer(ctx, "USDC", "bob", "escrow", 400)
	require.NoError(t, err)
	assert.Equal(t, int64(600), gateway.BalanceOf("USDC", "bob"))
	assert.Equal(t, int64(400), gateway.BalanceOf("USDC", "escrow"))

	err = gateway.Transfer(ctx, "USDC", "bob", "escrow", 601)
	assert.ErrorIs(t, err, entities.ErrInsufficientBalance)

	err = gateway.Transfer(ctx, "USDC", "bob", "escrow", 0)
	assert.ErrorIs(t, err, entities.ErrAmountNotPositive)

	// Unknown assets behave as empty balances.
	err = gateway.Transfer(ctx, "DOGE", "bob", "escrow", 1)
	assert.ErrorIs(t, err, entities.ErrInsufficientBalance)
}

func TestMemoryTokenGateway_MintAndMetadata(t *testing.T) {
	ctx := context.Background()
	gateway := NewMemoryTokenGateway()
	gateway.SetDecimals("USDC", 6)
	gateway.SetStake("bob", 500)

	require.NoError(t, gateway.Mint(ctx, "SCHLR", "bob", 1000))
	require.NoError(t, gateway.Mint(ctx, "SCHLR", "bob", 500))
	assert.Equal(t, int64(1500), gateway.BalanceOf("SCHLR", "bob"))

	err := gateway.Mint(ctx, "SCHLR", "bob", -1)
	assert.ErrorIs(t, err, entities.ErrAmountNotPositive)

	decimals, err := gateway.Decimals(ctx, "USDC")
	require.NoError(t, err)
	assert.Equal(t, int64(6), decimals)

	decimals, err = gateway.Decimals(ctx, "UNKNOWN")
	require.NoError(t, err)
	assert.Equal(t, int64(0), decimals)

	stake, err := gateway.StakeBalance(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(500), stake)
}
