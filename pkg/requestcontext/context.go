// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services and tests read them,
// and neither side pulls in net/http to do so.
package requestcontext

import (
	"context"
	"time"
)

type requestTimeKey struct{}

// WithTime injects a specific time into a context. Middleware uses it to pin
// one "now" per request; tests use it to freeze the clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now retrieves the request-scoped time, falling back to the wall clock when
// no middleware ran (background jobs, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}
