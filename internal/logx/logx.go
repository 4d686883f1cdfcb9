// Package logx provides the application's structured logger and helpers
// for carrying a request-scoped logger through a context.
package logx

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// context key type to avoid collisions
type ctxKey struct{}

var (
	once       sync.Once
	baseLogger *slog.Logger
)

// Init initializes the global logger. Should be called early in main.
// Env vars:
//
//	LOG_LEVEL=debug|info|warn|error (default: info)
//	LOG_FORMAT=json|text (default: text)
func Init() {
	once.Do(func() {
		var lvl slog.Level
		switch os.Getenv("LOG_LEVEL") {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: lvl}
		var handler slog.Handler
		if os.Getenv("LOG_FORMAT") == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}

		baseLogger = slog.New(handler).With("app", "mailshare")
		slog.SetDefault(baseLogger)
	})
}

// FromContext retrieves the context-scoped logger or returns the base logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return base()
	}
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return base()
}

// With returns a new context containing a logger with additional attributes.
func With(ctx context.Context, args ...any) context.Context {
	l := FromContext(ctx).With(args...)
	return context.WithValue(ctx, ctxKey{}, l)
}

// base returns the initialized base logger (initializing if necessary).
func base() *slog.Logger {
	if baseLogger == nil {
		Init()
	}
	return baseLogger
}
