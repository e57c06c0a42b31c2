package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/runnable-sdk/cache"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
	hostcache "github.com/reglet-dev/runnable-sdk/infrastructure/cache"
	"github.com/reglet-dev/runnable-sdk/runnabletest"
)

func newContext(t *testing.T, caps hostfuncs.Capabilities) context.Context {
	t.Helper()
	h, err := runnabletest.New(caps)
	require.NoError(t, err)

	ctx, done := h.Context(context.Background(), nil)
	t.Cleanup(done)
	return ctx
}

func TestSetGet(t *testing.T) {
	store := hostcache.New(8)
	ctx := newContext(t, hostfuncs.Capabilities{Cache: store})

	cache.Set(ctx, "greeting", []byte("hello"), 0)
	assert.Equal(t, []byte("hello"), cache.Get(ctx, "greeting"))

	cache.Set(ctx, "greeting", []byte("hi"), 60)
	assert.Equal(t, []byte("hi"), cache.Get(ctx, "greeting"))
	assert.Equal(t, 1, store.Len())
}

func TestGet_Missing(t *testing.T) {
	ctx := newContext(t, hostfuncs.Capabilities{Cache: hostcache.New(8)})

	val := cache.Get(ctx, "nope")
	assert.NotNil(t, val)
	assert.Empty(t, val)
}

func TestDisabled(t *testing.T) {
	ctx := newContext(t, hostfuncs.Capabilities{})

	cache.Set(ctx, "k", []byte("v"), 0)
	assert.Empty(t, cache.Get(ctx, "k"))
}

func TestNoInvocation(t *testing.T) {
	ctx := context.Background()

	cache.Set(ctx, "k", []byte("v"), 0)
	assert.Empty(t, cache.Get(ctx, "k"))
}
