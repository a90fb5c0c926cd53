package utils

import (
	"context"
	"time"
)

// DefaultDBTimeout bounds a single call to the document store or index.
const DefaultDBTimeout = 5 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}
