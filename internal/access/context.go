package access

import (
	"context"
)

type contextKey struct{}

// WithCaller attaches the resolved caller identity to the request context.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, caller)
}

// CallerFrom returns the caller stored in ctx, or Anonymous when the
// authentication middleware did not run or found no credentials.
func CallerFrom(ctx context.Context) Caller {
	if caller, ok := ctx.Value(contextKey{}).(Caller); ok {
		return caller
	}
	return Anonymous
}
