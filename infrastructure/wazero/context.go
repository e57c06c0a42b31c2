package wazero

import (
	"context"
)

type contextKey struct {
	name string
}

var callerNameKey = &contextKey{name: "caller_name"}

// WithCallerName records the name of the calling guest module in ctx.
func WithCallerName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, callerNameKey, name)
}

// CallerNameFromContext returns the calling guest module's name.
func CallerNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(callerNameKey).(string)
	return name, ok
}
