// Package cache stores and loads byte values in the host cache.
package cache

import (
	"context"

	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// Set stores val under key for ttl seconds; 0 keeps it until evicted.
// The host's status is not reported.
func Set(ctx context.Context, key string, val []byte, ttl int) {
	env, ok := ffi.FromContext(ctx)
	if !ok {
		return
	}

	keyAddr, keyLen, releaseKey := env.PassString(key)
	defer releaseKey()
	valAddr, valLen, releaseVal := env.Pass(val)
	defer releaseVal()

	env.Host().CacheSet(keyAddr, keyLen, valAddr, valLen, int32(ttl), env.Ident()) //nolint:gosec // G115: ttl is i32 on the wire
}

// Get loads the value stored under key.
// A missing key and a failed host call both return an empty slice.
func Get(ctx context.Context, key string) []byte {
	env, ok := ffi.FromContext(ctx)
	if !ok {
		return []byte{}
	}

	keyAddr, keyLen, release := env.PassString(key)
	defer release()

	size := env.Host().CacheGet(keyAddr, keyLen, env.Ident())
	val, err := env.Result(size)
	if err != nil {
		return []byte{}
	}
	return val
}
