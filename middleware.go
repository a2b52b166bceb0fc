package clip

import (
	"context"
	"log/slog"
	"time"
)

// Next resumes the downstream chain. A middleware that never calls it
// short-circuits everything below, the action included.
type Next func(ctx context.Context) error

// Middleware wraps the action with around-advice. Code placed after the
// next call runs once the entire downstream chain has completed, which is
// what timing and cleanup wrappers rely on. Errors propagate outward
// through every middleware already entered.
type Middleware func(ctx context.Context, c *Context, next Next) error

// composeChain builds the onion: the first middleware in the slice is the
// outermost layer. With no middleware the action runs directly.
func composeChain(middleware []Middleware, c *Context, action ActionFunc) Next {
	next := func(ctx context.Context) error {
		return action(ctx, c)
	}
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		inner := next
		next = func(ctx context.Context) error {
			return mw(ctx, c, inner)
		}
	}
	return next
}

// LoggingMiddleware attaches logger to the Context and records the command's
// start, outcome, and duration around the downstream chain.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, c *Context, next Next) error {
		c.SetLogger(logger)
		logger.DebugContext(ctx, "command starting", "command", c.Command.Name())
		start := time.Now()
		err := next(ctx)
		if err != nil && !IsExitRequest(err) {
			logger.ErrorContext(ctx, "command failed", "command", c.Command.Name(), "duration", time.Since(start), "error", err)
			return err
		}
		logger.DebugContext(ctx, "command finished", "command", c.Command.Name(), "duration", time.Since(start))
		return err
	}
}
