package ffi

import (
	"github.com/reglet-dev/runnable-sdk/domain/entities"
)

// Result completes a size-returning import call.
//
// A size of -1 means the host had nothing to report. Any other value is the
// length of a prepared result, negative when the result is an error message.
// The result is copied into a fresh buffer with get_ffi_result, which must
// report status 0.
func (e *Env) Result(size int32) ([]byte, error) {
	if size == -1 {
		return nil, entities.ErrUnknownHost
	}

	n := int64(size)
	if n < 0 {
		n = -n
	}

	addr := e.arena.Allocate(uint32(n))
	status := e.host.GetFFIResult(int32(addr), e.ident) //nolint:gosec // G115: wasm32 address
	buf, ok := e.arena.Take(addr)
	if !ok {
		buf = []byte{}
	}

	if status != 0 {
		return nil, entities.ErrUnknownHost
	}

	if size < 0 {
		return nil, entities.NewHostErr(string(buf))
	}
	return buf, nil
}
