// Package host runs runnable modules under wazero.
//
// An Executor owns one wazero runtime with WASI and the "env" host module
// registered. Load compiles a module, runs its reactor initializer and its
// init export. Each Instance.Invoke is one invocation: the input is copied into
// guest memory through allocate, run is called with a fresh ident, and the
// outcome the guest reports through return_result or return_error is returned.
package host
