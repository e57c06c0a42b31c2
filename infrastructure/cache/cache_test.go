package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New(10)

	require.NoError(t, c.Set("k", []byte("v"), 0))

	got, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_MissingKey(t *testing.T) {
	c := New(10)

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCache_TTL(t *testing.T) {
	c := New(10)

	require.NoError(t, c.Set("short", []byte("v"), 20*time.Millisecond))
	require.NoError(t, c.Set("long", []byte("v"), time.Hour))

	assert.Eventually(t, func() bool {
		_, err := c.Get("short")
		return err != nil
	}, time.Second, 10*time.Millisecond)

	_, err := c.Get("long")
	assert.NoError(t, err)
}

func TestCache_StoresCopy(t *testing.T) {
	c := New(10)
	val := []byte("abc")

	require.NoError(t, c.Set("k", val, 0))
	val[0] = 'x'

	got, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestCache_EvictsLRU(t *testing.T) {
	c := New(2)

	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Set("b", []byte("2"), 0))
	_, _ = c.Get("a")
	require.NoError(t, c.Set("c", []byte("3"), 0))

	_, err := c.Get("b")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	c.Delete("a")
	_, err = c.Get("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
