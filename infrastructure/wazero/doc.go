// Package wazero binds the hostfuncs import table to the wazero runtime.
//
// Every import is exported from a host module (default "env") with its exact
// i32 signature. Arguments are passed straight through; the import reads and
// writes the calling module's linear memory.
//
// # Basic Usage
//
//	host := hostfuncs.NewHost(caps)
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware(nil)),
//	    hostfuncs.WithImports(host.Imports()...),
//	)
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	err = wzadapter.RegisterWithRuntime(ctx, runtime, registry)
//
// # Custom Handlers
//
// Functions outside the import table can be added with WithCustomHandler:
//
//	wzadapter.RegisterWithRuntime(ctx, runtime, registry,
//	    wzadapter.WithCustomHandler(wzadapter.CustomHandler{
//	        Name:        "now_ms",
//	        Handler:     nowHandler,
//	        ResultTypes: []api.ValueType{api.ValueTypeI64},
//	    }),
//	)
package wazero
