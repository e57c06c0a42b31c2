// Package hostfuncs implements the host side of the runnable import contract.
//
// Nothing here depends on a WASM runtime. Import functions operate on a
// Memory (wazero's api.Memory satisfies it, so does the guest arena in tests)
// and on the Invocation identified by the ident argument. Capability backends
// are plugged in through Capabilities.
package hostfuncs
