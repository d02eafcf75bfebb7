// Package cache keeps dashboard statistics in Redis between catalog writes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inventory/internal/config"
	"inventory/internal/logger"
	"inventory/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "toko:stats"
	versionKey = keyPrefix + ":version"
	globalKey  = "all"
)

// StatsCache stores product statistics per read scope.
type StatsCache interface {
	Get(ctx context.Context, scope string) (*models.ProductStats, bool)
	Set(ctx context.Context, scope string, stats *models.ProductStats)
	// Invalidate drops every cached scope.
	Invalidate(ctx context.Context)
}

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RedisStats caches statistics under a generation number; bumping the
// generation invalidates every scope at once.
type RedisStats struct {
	store cmdable
	ttl   time.Duration
	log   *logger.Logger
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRedisStats wraps a Redis client. Cache failures are logged and treated as misses.
func NewRedisStats(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *RedisStats {
	return newRedisStats(client, ttl, log)
}

func newRedisStats(store cmdable, ttl time.Duration, log *logger.Logger) *RedisStats {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisStats{store: store, ttl: ttl, log: log}
}

func (c *RedisStats) key(ctx context.Context, scope string) (string, error) {
	version, err := c.store.Get(ctx, versionKey).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		return "", err
	}
	if scope == "" {
		scope = globalKey
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, version, scope), nil
}

// Get returns cached statistics for scope.
func (c *RedisStats) Get(ctx context.Context, scope string) (*models.ProductStats, bool) {
	key, err := c.key(ctx, scope)
	if err != nil {
		c.log.Warn(ctx, "stats cache version lookup failed", err)
		return nil, false
	}
	raw, err := c.store.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn(ctx, "stats cache get failed", err)
		}
		return nil, false
	}
	var stats models.ProductStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		c.log.Warn(ctx, "stats cache entry is corrupt", err)
		return nil, false
	}
	return &stats, true
}

// Set stores statistics for scope with the configured TTL.
func (c *RedisStats) Set(ctx context.Context, scope string, stats *models.ProductStats) {
	key, err := c.key(ctx, scope)
	if err != nil {
		c.log.Warn(ctx, "stats cache version lookup failed", err)
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		c.log.Warn(ctx, "stats cache marshal failed", err)
		return
	}
	if err := c.store.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		c.log.Warn(ctx, "stats cache set failed", err)
	}
}

// Invalidate advances the generation so older entries are never read again.
func (c *RedisStats) Invalidate(ctx context.Context) {
	if err := c.store.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn(ctx, "stats cache invalidation failed", err)
	}
}

// Noop never caches anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.ProductStats, bool) { return nil, false }
func (Noop) Set(context.Context, string, *models.ProductStats)         {}
func (Noop) Invalidate(context.Context)                                {}
