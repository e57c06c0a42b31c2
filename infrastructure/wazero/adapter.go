package wazero

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
)

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// ModuleName is the host module name (default: "env").
	ModuleName string

	// CustomHandlers are exported next to the registry's imports.
	CustomHandlers []CustomHandler
}

// CustomHandler is a wazero function exported alongside the import table.
type CustomHandler struct {
	Handler     api.GoModuleFunc
	Name        string
	ParamTypes  []api.ValueType
	ResultTypes []api.ValueType
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name (default: "env").
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithCustomHandler adds a custom wazero handler.
func WithCustomHandler(h CustomHandler) AdapterOption {
	return func(c *AdapterConfig) {
		c.CustomHandlers = append(c.CustomHandlers, h)
	}
}

func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{ModuleName: ports.HostModuleName}
}

// Signature returns the wasm parameter and result types of imp.
func Signature(imp hostfuncs.Import) (params, results []api.ValueType) {
	params = make([]api.ValueType, imp.Params)
	for i := range params {
		params[i] = api.ValueTypeI32
	}
	results = make([]api.ValueType, imp.Results)
	for i := range results {
		results[i] = api.ValueTypeI32
	}
	return params, results
}

// RegisterWithRuntime instantiates a host module exporting every import in
// registry, plus any custom handlers.
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *hostfuncs.Registry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)

	for _, name := range registry.Names() {
		imp, _ := registry.Get(name)
		params, results := Signature(imp)

		fn := imp.Fn
		importName := name
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				ctx = hostfuncs.WithImportName(WithCallerName(ctx, mod.Name()), importName)
				fn(ctx, memoryOf(mod), stack)
			}), params, results).
			WithName(name).
			Export(name)
	}

	for _, ch := range cfg.CustomHandlers {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(ch.Handler, ch.ParamTypes, ch.ResultTypes).
			Export(ch.Name)
	}

	_, err := builder.Instantiate(ctx)
	return err
}

// memoryOf returns the caller's memory, or an empty one for modules without
// memory (e.g. a host function called directly).
func memoryOf(mod api.Module) hostfuncs.Memory {
	if mem := mod.Memory(); mem != nil {
		return mem
	}
	return noMemory{}
}

type noMemory struct{}

func (noMemory) Read(_, byteCount uint32) ([]byte, bool) { return nil, byteCount == 0 }
func (noMemory) Write(_ uint32, data []byte) bool        { return len(data) == 0 }
