// Package cache provides the Redis-backed cache for validated oracle
// completions.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis cache configuration.
type Config struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis caches oracle completions with a TTL. A disabled cache still returns
// a usable instance whose calls are no-ops, so callers never branch on it.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to Redis when the cache is enabled.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Redis, error) {
	r := &Redis{
		ttl:    cfg.TTL,
		logger: logger.With("component", "cache"),
	}

	if !cfg.Enabled {
		return r, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	r.client = client
	return r, nil
}

// Get returns the cached value for key. Errors degrade to a miss: the cache
// must never take extraction down with it.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	if r.client == nil {
		return "", false
	}

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Debug("cache get failed", "key", key, "error", err)
		}
		return "", false
	}

	return val, true
}

// Set stores value under key for the configured TTL. Write failures are
// logged and swallowed.
func (r *Redis) Set(ctx context.Context, key, value string) {
	if r.client == nil {
		return
	}

	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		r.logger.Debug("cache set failed", "key", key, "error", err)
	}
}

// Close releases the Redis connection.
func (r *Redis) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
