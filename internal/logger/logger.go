package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type logContextKey string

// LoggerKey is exported so tests can seed a request context with a discard logger.
const LoggerKey = logContextKey("logger")

// New builds the process logger. Anything that is not production logs at debug.
func New(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == "production" || env == "prod" {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
