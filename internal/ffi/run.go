package ffi

import (
	"context"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/internal/abi"
)

// Input buffer errors reported through return_error.
var (
	ErrInputNotAllocated = entities.NewRunErr(entities.DefaultErrCode, "input buffer was not allocated by the module")
	ErrInputTooShort     = entities.NewRunErr(entities.DefaultErrCode, "input buffer is shorter than the declared size")
)

// Run executes one invocation: it binds ident, takes ownership of the input
// at [addr, addr+size), calls the handler and reports the outcome through
// return_result or return_error. Panics raised by the handler propagate.
func (e *Env) Run(addr, size, ident int32) {
	e.ident = ident

	input, err := e.takeInput(addr, size)

	if e.handler == nil {
		e.returnError(entities.ErrNoRunnable)
		return
	}

	if err != nil {
		e.returnError(entities.RunErrFrom(err))
		return
	}

	ctx := WithEnv(context.Background(), e)

	output, err := e.handler.Run(ctx, input)
	if err != nil {
		e.returnError(entities.RunErrFrom(err))
		return
	}

	e.returnResult(output)
}

func (e *Env) takeInput(addr, size int32) ([]byte, error) {
	if addr == 0 || size <= 0 {
		if addr != 0 {
			e.arena.Take(uint32(addr)) //nolint:gosec // G115: wasm32 address
		}
		return []byte{}, nil
	}

	if buf, ok := e.arena.Take(uint32(addr)); ok { //nolint:gosec // G115: wasm32 address
		if len(buf) < int(size) {
			return nil, ErrInputTooShort
		}
		return buf[:size], nil
	}

	if buf, ok := abi.Adopt(uint32(addr), uint32(size)); ok { //nolint:gosec // G115: wasm32 address
		return buf, nil
	}
	return nil, ErrInputNotAllocated
}

func (e *Env) returnResult(output []byte) {
	addr, size, release := e.Pass(output)
	defer release()

	e.host.ReturnResult(addr, size, e.ident)
}

func (e *Env) returnError(runErr entities.RunErr) {
	addr, size, release := e.PassString(runErr.Message)
	defer release()

	e.host.ReturnError(runErr.Code, addr, size, e.ident)
}
