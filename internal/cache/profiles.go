// Package cache provides a short-lived read-through cache of team metric
// profiles. The cache is purely an optimization: every path works identically
// with a nil cache, only slower.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fixturecast/stats-api/internal/models"
)

// RedisGetSetter is the slice of the redis client the cache needs.
type RedisGetSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ProfileCache caches TeamMetricProfile values in Redis with a bounded TTL.
// Concurrent requests for the same key collapse into one computation via
// singleflight, so the get-or-compute is atomic per key within the process.
type ProfileCache struct {
	client RedisGetSetter
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.SugaredLogger
}

func NewProfileCache(client RedisGetSetter, ttl time.Duration, logger *zap.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &ProfileCache{client: client, ttl: ttl, logger: logger.Sugar()}
}

// GetOrCompute returns the cached profile for key, computing and storing it
// on a miss. Redis failures degrade to computing directly; they are logged,
// never surfaced, because the cache must not affect correctness.
func (c *ProfileCache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (*models.TeamMetricProfile, error)) (*models.TeamMetricProfile, error) {
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if c.client != nil {
			data, err := c.client.Get(ctx, key).Bytes()
			if err == nil {
				var profile models.TeamMetricProfile
				if json.Unmarshal(data, &profile) == nil {
					return &profile, nil
				}
				// Corrupt entry: fall through and recompute.
			} else if err != redis.Nil {
				c.logger.Warnw("Profile cache read failed", "error", err, "key", key)
			}
		}

		profile, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		if c.client != nil {
			if data, err := json.Marshal(profile); err == nil {
				if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
					c.logger.Warnw("Profile cache write failed", "error", err, "key", key)
				}
			}
		}
		return profile, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.TeamMetricProfile), nil
}
