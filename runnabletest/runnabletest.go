// Package runnabletest runs Runnables and capability calls in-process against
// the hostfuncs dev host, without compiling to WASM.
//
//	h, err := runnabletest.New(hostfuncs.Capabilities{Cache: cache.New(100)})
//	h.Use(myRunnable)
//	out, err := h.Invoke(ctx, []byte("input"), hostfuncs.NewRequest("GET", "/", nil))
package runnabletest

import (
	"context"
	"errors"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
	"github.com/reglet-dev/runnable-sdk/internal/abi"
	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// Harness pairs a guest Env with a dev Host.
type Harness struct {
	host  *hostfuncs.Host
	guest *guestHost
	env   *ffi.Env
	arena *abi.Arena
}

// New creates a Harness whose host serves caps.
func New(caps hostfuncs.Capabilities, opts ...hostfuncs.HostOption) (*Harness, error) {
	host := hostfuncs.NewHost(caps, opts...)

	registry, err := hostfuncs.NewRegistry(hostfuncs.WithImports(host.Imports()...))
	if err != nil {
		return nil, err
	}

	arena := abi.NewArena()
	guest := &guestHost{ctx: context.Background(), registry: registry, mem: arena}

	return &Harness{
		host:  host,
		guest: guest,
		env:   ffi.NewEnv(guest, arena),
		arena: arena,
	}, nil
}

// Use registers the Runnable called by Invoke.
func (h *Harness) Use(r ports.Runnable) {
	h.env.Use(r)
}

// Host returns the dev host.
func (h *Harness) Host() *hostfuncs.Host { return h.host }

// Arena returns the guest arena, e.g. to check for leaked buffers.
func (h *Harness) Arena() *abi.Arena { return h.arena }

// Invoke runs the registered Runnable once the way the host's run call does:
// the input is placed in an allocated buffer and the outcome is whatever the
// guest reported through return_result or return_error.
// A nil req gets a GET request for "/".
func (h *Harness) Invoke(ctx context.Context, input []byte, req *hostfuncs.Request) (hostfuncs.Outcome, error) {
	if req == nil {
		req = hostfuncs.NewRequest("GET", "/", nil)
	}

	inv := h.host.Invocations().Begin(req)
	defer h.host.Invocations().End(inv.Ident)

	h.guest.ctx = ctx
	defer func() { h.guest.ctx = context.Background() }()

	var addr uint32
	if len(input) > 0 {
		addr = h.arena.Allocate(uint32(len(input))) //nolint:gosec // G115: test inputs are small
		h.arena.Write(addr, input)
	}

	h.env.Run(int32(addr), int32(len(input)), inv.Ident) //nolint:gosec // G115: wasm32 address

	out := inv.Outcome()
	if !out.Completed {
		return out, errors.New("runnabletest: module returned without reporting a result")
	}
	return out, nil
}

// Context returns a context for calling capability packages directly, bound
// to a fresh invocation for req. Call done when finished.
func (h *Harness) Context(ctx context.Context, req *hostfuncs.Request) (context.Context, func()) {
	if req == nil {
		req = hostfuncs.NewRequest("GET", "/", nil)
	}

	inv := h.host.Invocations().Begin(req)
	h.env.Bind(inv.Ident)
	h.guest.ctx = ctx

	done := func() {
		h.host.Invocations().End(inv.Ident)
		h.guest.ctx = context.Background()
	}
	return ffi.WithEnv(ctx, h.env), done
}
