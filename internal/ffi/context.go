package ffi

import (
	"context"
	"errors"
)

// ErrNoInvocation is returned by capability calls made outside of Run.
var ErrNoInvocation = errors.New("ffi: no invocation bound to context")

type envKey struct{}

// WithEnv returns a context carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromContext returns the Env bound to ctx.
func FromContext(ctx context.Context) (*Env, bool) {
	if ctx == nil {
		return nil, false
	}
	env, ok := ctx.Value(envKey{}).(*Env)
	return env, ok && env != nil
}

// Lookup returns the Env bound to ctx or ErrNoInvocation.
func Lookup(ctx context.Context) (*Env, error) {
	env, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoInvocation
	}
	return env, nil
}
