package slogx

import (
	"context"
	"log/slog"
)

type (
	loggerKey struct{}
	holderKey struct{}
)

// loggerHolder lets the request middleware observe loggers enriched by
// handlers further down the chain.
type loggerHolder struct {
	logger *slog.Logger
}

func withHolder(ctx context.Context, h *loggerHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request logger, or slog.Default outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithUserID tags the contextual logger, and the request's final
// http_request line, with the authenticated user.
func WithUserID(ctx context.Context, userID string) context.Context {
	l := FromContext(ctx).With(slog.String("user_id", userID))
	if h, ok := ctx.Value(holderKey{}).(*loggerHolder); ok {
		h.logger = l
	}
	return WithContext(ctx, l)
}
