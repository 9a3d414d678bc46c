package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"scholarfund/database"
)

// MaxFeeBps is the protocol-wide cap on the withdrawal fee: 10%.
// Loading a config above the cap fails outright.
const MaxFeeBps = 1000

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Redis configuration (optional; empty disables the reputation cache)
	RedisAddr string

	// Protocol parameters
	FeeBps            int64  // withdrawal fee in basis points
	FeeRecipient      string // account receiving withdrawal fees
	EscrowAccount     string // account holding escrowed funds
	FundingAsset      string // asset contributed by investors
	RewardAsset       string // asset minted to investors on funding
	RewardRatePerUnit int64  // reward rate, 18-decimal fixed point

	// WithdrawWhenFrozen controls whether a frozen scholarship may still be
	// withdrawn from. Freezing always blocks funding; withdrawal is policy.
	WithdrawWhenFrozen bool

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),

		FeeBps:            100, // 1% default
		FeeRecipient:      getEnvWithDefault("FEE_RECIPIENT", "protocol-treasury"),
		EscrowAccount:     getEnvWithDefault("ESCROW_ACCOUNT", "scholarship-escrow"),
		FundingAsset:      getEnvWithDefault("FUNDING_ASSET", "USDC"),
		RewardAsset:       getEnvWithDefault("REWARD_ASSET", "SCHLR"),
		RewardRatePerUnit: 1_000_000_000_000_000_000, // 1:1 at 18 decimals

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if feeBps := os.Getenv("FEE_BPS"); feeBps != "" {
		parsed, err := strconv.ParseInt(feeBps, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FEE_BPS: %w", err)
		}
		config.FeeBps = parsed
	}
	if config.FeeBps < 0 || config.FeeBps > MaxFeeBps {
		return nil, fmt.Errorf("FEE_BPS %d exceeds the %d bps cap", config.FeeBps, MaxFeeBps)
	}

	if rate := os.Getenv("REWARD_RATE_PER_UNIT"); rate != "" {
		parsed, err := strconv.ParseInt(rate, 10, 64)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid REWARD_RATE_PER_UNIT %q", rate)
		}
		config.RewardRatePerUnit = parsed
	}

	if v := os.Getenv("WITHDRAW_WHEN_FROZEN"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WITHDRAW_WHEN_FROZEN: %w", err)
		}
		config.WithdrawWhenFrozen = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		FeeBps:             100,
		FeeRecipient:       "protocol-treasury",
		EscrowAccount:      "scholarship-escrow",
		FundingAsset:       "USDC",
		RewardAsset:        "SCHLR",
		RewardRatePerUnit:  1_000_000_000_000_000_000,
		WithdrawWhenFrozen: false,
	}
}
