// Package resp sets headers on the response to the current request.
package resp

import (
	"context"

	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// SetHeader sets a response header. Calls are applied in order.
func SetHeader(ctx context.Context, key, val string) {
	env, ok := ffi.FromContext(ctx)
	if !ok {
		return
	}

	keyAddr, keyLen, releaseKey := env.PassString(key)
	defer releaseKey()
	valAddr, valLen, releaseVal := env.PassString(val)
	defer releaseVal()

	env.Host().RespSetHeader(keyAddr, keyLen, valAddr, valLen, env.Ident())
}

// ContentType sets the Content-Type response header.
func ContentType(ctx context.Context, val string) {
	SetHeader(ctx, "Content-Type", val)
}
