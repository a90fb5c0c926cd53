package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/logger"
	"github.com/redis/go-redis/v9"
)

// redisCache keeps catalog responses as JSON under an optional namespace.
// Bumping the namespace on deploy orphans entries written with an older
// catalog shape; the ones that still get read and no longer decode are
// deleted and reported as a miss.
type redisCache struct {
	client     *redis.Client
	namespace  string
	defaultTTL time.Duration
}

func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	return &redisCache{
		client:     client,
		namespace:  cfg.Namespace,
		defaultTTL: cfg.DefaultTTL,
	}
}

func (r *redisCache) scoped(key string) string {
	if r.namespace == "" {
		return key
	}

	return Key(r.namespace, key)
}

func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	k := r.scoped(key)

	data, err := r.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to get key %s from redis: %w", k, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		logger.FromContext(ctx).Warn("Dropping undecodable cache entry", slog.String("key", k), slog.Any("error", err))

		if err := r.client.Del(ctx, k).Err(); err != nil {
			return false, fmt.Errorf("failed to drop stale cache entry %s: %w", k, err)
		}

		return false, nil
	}

	return true, nil
}

// Set falls back to the configured default TTL when ttl is not positive.
func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	k := r.scoped(key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", k, err)
	}

	if ttl <= 0 {
		ttl = r.defaultTTL
	}

	if err := r.client.Set(ctx, k, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", k, err)
	}

	return nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	k := r.scoped(key)

	if err := r.client.Del(ctx, k).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", k, err)
	}

	return nil
}

// Close is a no-op; the shared client is closed by its owner.
func (r *redisCache) Close() error {
	return nil
}
