package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"scholarfund/domain/entities"
	"scholarfund/domain/interfaces"
)

// MemoryTokenGateway is an in-process token ledger implementing both
// TokenGateway and RewardMinter. It backs local development and tests where
// no external asset layer is available.
type MemoryTokenGateway struct {
	mu       sync.Mutex
	balances map[string]map[string]int64 // asset -> account -> balance
	decimals map[string]int64
	stakes   map[string]int64
}

// NewMemoryTokenGateway creates an empty in-memory token gateway
func NewMemoryTokenGateway() *MemoryTokenGateway {
	return &MemoryTokenGateway{
		balances: make(map[string]map[string]int64),
		decimals: make(map[string]int64),
		stakes:   make(map[string]int64),
	}
}

// Transfer moves amount of asset between accounts, failing when the source
// holds less than amount
func (g *MemoryTokenGateway) Transfer(ctx context.Context, asset, from, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer of %d %s: %w", amount, asset, entities.ErrAmountNotPositive)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	accounts := g.balances[asset]
	if accounts == nil || accounts[from] < amount {
		return fmt.Errorf("transfer of %d %s from %s: %w", amount, asset, from, entities.ErrInsufficientBalance)
	}

	accounts[from] -= amount
	accounts[to] += amount
	return nil
}

// Decimals returns the fixed-point scale registered for an asset, 0 for
// unregistered assets
func (g *MemoryTokenGateway) Decimals(ctx context.Context, asset string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decimals[asset], nil
}

// StakeBalance returns the investor's registered staking token balance
func (g *MemoryTokenGateway) StakeBalance(ctx context.Context, investor string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stakes[investor], nil
}

// Mint issues amount of asset to an account
func (g *MemoryTokenGateway) Mint(ctx context.Context, asset, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("mint of %d %s: %w", amount, asset, entities.ErrAmountNotPositive)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.balances[asset] == nil {
		g.balances[asset] = make(map[string]int64)
	}
	g.balances[asset][to] += amount
	return nil
}

// SetBalance seeds an account balance
func (g *MemoryTokenGateway) SetBalance(asset, account string, amount int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.balances[asset] == nil {
		g.balances[asset] = make(map[string]int64)
	}
	g.balances[asset][account] = amount
}

// SetDecimals registers the fixed-point scale of an asset
func (g *MemoryTokenGateway) SetDecimals(asset string, decimals int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.decimals[asset] = decimals
}

// SetStake seeds an investor's staking token balance
func (g *MemoryTokenGateway) SetStake(investor string, tokens int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stakes[investor] = tokens
}

// BalanceOf reads an account balance
func (g *MemoryTokenGateway) BalanceOf(asset, account string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.balances[asset][account]
}

var (
	_ interfaces.TokenGateway = (*MemoryTokenGateway)(nil)
	_ interfaces.RewardMinter = (*MemoryTokenGateway)(nil)
)
