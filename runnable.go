// Package runnable is the guest-side SDK for modules executed by a runnable host.
//
// A module registers one Runnable from init. Modules are built as reactors
// (-buildmode=c-shared), so main never runs:
//
//	func main() {}
//
//	func init() {
//	    runnable.Register(runnable.RunnableFunc(func(ctx context.Context, input []byte) ([]byte, error) {
//	        name := req.Header(ctx, "X-Name")
//	        return []byte("hello " + name), nil
//	    }))
//	}
//
// The host then calls the module's run export once per request. Capability
// packages (req, http, cache, db, file, graphql, resp, log) take the ctx passed
// to Run and use it to reach the host.
package runnable

import (
	"context"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/domain/ports"
	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// Runnable handles one invocation.
type Runnable = ports.Runnable

// RunnableFunc adapts a function to the Runnable interface.
type RunnableFunc func(ctx context.Context, input []byte) ([]byte, error)

// Run calls f.
func (f RunnableFunc) Run(ctx context.Context, input []byte) ([]byte, error) {
	return f(ctx, input)
}

// RunErr is an application error with a code reported to the host.
type RunErr = entities.RunErr

// HostErr is returned when a host call fails.
type HostErr = entities.HostErr

// NewError creates a RunErr. Returning it from Run reports code to the host;
// any other error is reported with code 500.
func NewError(code int, message string) RunErr {
	return entities.NewRunErr(int32(code), message) //nolint:gosec // G115: codes are i32 on the wire
}

var pending Runnable

// Register sets the Runnable bound when the host calls the init export.
// Registering again replaces the previous Runnable.
func Register(r Runnable) {
	pending = r
}

// bind hands the registered Runnable to env. Without one, env keeps
// reporting "No runnable set".
func bind(env *ffi.Env) {
	if pending != nil {
		env.Use(pending)
	}
}
