// Package cache provides a Redis read-through cache for weekly summaries.
// The engine invalidates on every write path (evidence, punishment, balance
// override), so the TTL only bounds staleness across process boundaries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"regimen/internal/engine"
)

// Redis caches summaries under one key per user.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis constructs the cache. ttl must be positive.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func key(userID string) string {
	return "regimen:summary:" + userID
}

// Get returns the cached summary or (nil, nil) on a miss. A cache error is
// returned but callers treat it as a miss; the store of record always wins.
func (c *Redis) Get(ctx context.Context, userID string) (*engine.Summary, error) {
	raw, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("summary cache get: %w", err)
	}
	var summary engine.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("summary cache decode: %w", err)
	}
	return &summary, nil
}

func (c *Redis) Set(ctx context.Context, summary engine.Summary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key(summary.UserID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("summary cache set: %w", err)
	}
	return nil
}

func (c *Redis) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("summary cache invalidate: %w", err)
	}
	return nil
}
