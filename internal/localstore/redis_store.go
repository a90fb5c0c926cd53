package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frameart/storefront/internal/cache"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	scope  string
	ttl    time.Duration
}

// NewRedisStore stores keys under guest:<scope>:<key>. Every write resets the TTL.
func NewRedisStore(client *redis.Client, scope string, ttl time.Duration) SessionStore {
	return &redisStore{client: client, scope: scope, ttl: ttl}
}

func RedisFactory(client *redis.Client, ttl time.Duration) Factory {
	return func(sessionID string) SessionStore {
		return NewRedisStore(client, sessionID, ttl)
	}
}

func (r *redisStore) key(key string) string {
	return cache.Key(cache.GuestKeyPrefix, r.scope+":"+key)
}

func (r *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	k := r.key(key)

	v, err := r.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to get key %s from redis: %w", k, err)
	}

	return v, true, nil
}

func (r *redisStore) Set(ctx context.Context, key, value string) error {
	k := r.key(key)

	if err := r.client.Set(ctx, k, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", k, err)
	}

	return nil
}

func (r *redisStore) Remove(ctx context.Context, key string) error {
	k := r.key(key)

	if err := r.client.Del(ctx, k).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", k, err)
	}

	return nil
}
