package scraper

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type loggerKey struct{}

// WithLogger attaches log to ctx for the sites to use.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// LoggerFrom returns the logger attached to ctx, or a no-op logger.
func LoggerFrom(ctx context.Context) *zap.Logger {
	return loggerOr(ctx, zap.NewNop())
}

func loggerOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return log
	}
	return fallback
}

// Outcome classifies err for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLoginFailed):
		return "login_failed"
	case errors.Is(err, ErrUnexpectedLayout):
		return "layout"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
