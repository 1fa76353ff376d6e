package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type so no other package can collide with the
// logger's context key.
type contextKey struct{}

var loggerKey = contextKey{}

// WithLogger returns a copy of ctx carrying the given logger. Handlers put
// a request-scoped logger (with trace id attached) into the context so that
// services and stores log with the same correlation fields.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger carried by ctx, or the process default
// logger if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger carried by ctx, falling back to
// the provided component logger instead of the process default. Components
// pass their own logger so component attributes survive when no request
// logger is present (e.g. in tests or background work).
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
