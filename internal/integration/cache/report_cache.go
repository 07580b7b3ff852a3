// Package cache implements the report cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/auction-ledger/backend/internal/application/adapter"
)

const keyPrefix = "auction-ledger:"

// reportCache implements the adapter.ReportCache interface.
type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a Redis backed report cache. Entries expire after ttl.
func NewReportCache(client *redis.Client, ttl time.Duration) adapter.ReportCache {
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

// Get decodes the JSON stored under key into dest.
func (c *reportCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return adapter.ErrCacheMiss
		}
		return fmt.Errorf("failed to read report cache: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode cached report: %w", err)
	}
	return nil
}

// Set stores value as JSON under key.
func (c *reportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}

// Ping checks Redis is reachable.
func (c *reportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
