// Package cache provides the redis-backed score cache. The rest of the
// application talks to the trust.ScoreCache port, so a missing redis
// deployment degrades to the noop cache instead of failing startup.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kofiannan/biztrack-api/pkg/config"
)

// Redis wraps a go-redis client behind the score cache port.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings. Callers should fall back to a noop cache
// when this fails; caching is an optimization, not a dependency.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// Get reports (score, found, err). A missing key is not an error.
func (r *Redis) Get(ctx context.Context, key string) (int, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	score, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("redis get %q: bad payload: %w", key, err)
	}
	return score, true, nil
}

// Set stores the score with a TTL.
func (r *Redis) Set(ctx context.Context, key string, score int, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, strconv.Itoa(score), ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
