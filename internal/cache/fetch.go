package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/frameart/storefront/internal/logger"
)

// Fetch is read-through caching around load. Cache errors are logged and
// skipped; only load errors reach the caller.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx)

	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("Cache read failed, loading from source", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
