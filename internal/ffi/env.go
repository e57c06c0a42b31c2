// Package ffi holds the per-process invocation state and the protocol every
// capability uses to talk to the host.
//
// An Env is created once per guest process and passed to the exported entry
// points. Capability calls reach it through the context handed to the Runnable.
package ffi

import (
	"log/slog"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
	"github.com/reglet-dev/runnable-sdk/internal/abi"
)

// Env is the state of a guest process: the host imports, the buffer arena,
// the registered handler and the ident of the invocation in flight.
// It is not safe for concurrent invocations; the host runs one at a time.
type Env struct {
	host    ports.Host
	arena   *abi.Arena
	handler ports.Runnable
	ident   int32
}

// NewEnv creates an Env with no handler registered.
func NewEnv(host ports.Host, arena *abi.Arena) *Env {
	if arena == nil {
		arena = abi.NewArena()
	}
	return &Env{host: host, arena: arena}
}

// Ident returns the ident of the current (or most recent) invocation.
func (e *Env) Ident() int32 { return e.ident }

// Bind sets the ident used by capability calls made outside Run.
func (e *Env) Bind(ident int32) { e.ident = ident }

// Host returns the imports this Env calls.
func (e *Env) Host() ports.Host { return e.host }

// Arena returns the buffers shared with the host.
func (e *Env) Arena() *abi.Arena { return e.arena }

// Handler returns the registered Runnable, or nil.
func (e *Env) Handler() ports.Runnable { return e.handler }

// Use registers the Runnable invoked by Run. The last registration wins.
func (e *Env) Use(r ports.Runnable) {
	if e.handler != nil {
		slog.Warn("runnable: replacing previously registered handler")
	}
	e.handler = r
}

// Pass copies data into a guest buffer for an outgoing import call.
// Call release once the import has returned.
func (e *Env) Pass(data []byte) (addr, size int32, release func()) {
	a, s, release := e.arena.Pass(data)
	return int32(a), int32(s), release //nolint:gosec // G115: wasm32 addresses and lengths are i32 on the wire
}

// PassString is Pass for string arguments.
func (e *Env) PassString(s string) (addr, size int32, release func()) {
	return e.Pass([]byte(s))
}
