// Package file reads static files bundled with the module.
package file

import (
	"context"

	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// GetStatic returns the contents of the named file.
// The bool is false when the file is missing or the host call failed.
func GetStatic(ctx context.Context, name string) ([]byte, bool) {
	env, ok := ffi.FromContext(ctx)
	if !ok {
		return nil, false
	}

	nameAddr, nameLen, release := env.PassString(name)
	defer release()

	size := env.Host().GetStaticFile(nameAddr, nameLen, env.Ident())
	data, err := env.Result(size)
	if err != nil {
		return nil, false
	}
	return data, true
}
