package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scholarfund/domain/entities"
	"scholarfund/domain/interfaces"

	"github.com/redis/go-redis/v9"
)

const reputationCacheTTL = 5 * time.Minute

// RedisReputationCache caches reputation aggregates in Redis. The aggregate
// row in Postgres remains the source of truth; entries are invalidated after
// every committed rating.
type RedisReputationCache struct {
	client *redis.Client
}

// NewRedisReputationCache creates a reputation cache backed by the given
// Redis address
func NewRedisReputationCache(addr string) (*RedisReputationCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisReputationCache{client: client}, nil
}

func reputationKey(scholarshipID int64) string {
	return fmt.Sprintf("reputation:agg:%d", scholarshipID)
}

// Get returns the cached aggregate, nil on miss
func (c *RedisReputationCache) Get(ctx context.Context, scholarshipID int64) (*entities.ReputationAggregate, error) {
	data, err := c.client.Get(ctx, reputationKey(scholarshipID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached aggregate for scholarship %d: %w", scholarshipID, err)
	}

	var aggregate entities.ReputationAggregate
	if err := json.Unmarshal(data, &aggregate); err != nil {
		return nil, fmt.Errorf("failed to decode cached aggregate for scholarship %d: %w", scholarshipID, err)
	}
	return &aggregate, nil
}

// Set stores the aggregate with a TTL
func (c *RedisReputationCache) Set(ctx context.Context, aggregate *entities.ReputationAggregate) error {
	data, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate for scholarship %d: %w", aggregate.ScholarshipID, err)
	}

	if err := c.client.Set(ctx, reputationKey(aggregate.ScholarshipID), data, reputationCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache aggregate for scholarship %d: %w", aggregate.ScholarshipID, err)
	}
	return nil
}

// Invalidate drops the cached entry for a scholarship
func (c *RedisReputationCache) Invalidate(ctx context.Context, scholarshipID int64) error {
	if err := c.client.Del(ctx, reputationKey(scholarshipID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached aggregate for scholarship %d: %w", scholarshipID, err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (c *RedisReputationCache) Close() error {
	return c.client.Close()
}

var _ interfaces.ReputationCache = (*RedisReputationCache)(nil)
