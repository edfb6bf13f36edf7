package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atmx/payoff-engine/internal/model"
)

// RedisCache implements Cache on Redis, storing calculations as JSON.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a Redis-backed cache.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (*model.Calculation, bool, error) {
	data, err := c.rdb.Get(ctx, calcKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var calc model.Calculation
	if err := json.Unmarshal(data, &calc); err != nil {
		// Unreadable entry: treat as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &calc, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, calc *model.Calculation) error {
	data, err := json.Marshal(calc)
	if err != nil {
		return fmt.Errorf("encode calculation: %w", err)
	}
	if err := c.rdb.Set(ctx, calcKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
