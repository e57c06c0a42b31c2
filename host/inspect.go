package host

import (
	"context"
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
)

// FuncInfo describes one imported or exported function.
type FuncInfo struct {
	Module  string   `json:"module,omitempty"`
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Results []string `json:"results"`
}

// ModuleInfo lists what a module imports and exports.
type ModuleInfo struct {
	Imports []FuncInfo `json:"imports"`
	Exports []FuncInfo `json:"exports"`
	// Missing are required exports the module lacks.
	Missing []string `json:"missing,omitempty"`
	// Unknown are "env" imports this host does not serve.
	Unknown []string `json:"unknown,omitempty"`
}

// Runnable reports whether the module can be loaded by an Executor.
func (m ModuleInfo) Runnable() bool {
	return len(m.Missing) == 0 && len(m.Unknown) == 0
}

// Inspect compiles wasmBytes without instantiating it.
func (e *Executor) Inspect(ctx context.Context, wasmBytes []byte) (ModuleInfo, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return ModuleInfo{}, fmt.Errorf("failed to compile module: %w", err)
	}
	defer compiled.Close(ctx) //nolint:errcheck

	info := ModuleInfo{Missing: missingExports(compiled)}

	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		info.Imports = append(info.Imports, funcInfo(module, name, def))
		if module == ports.HostModuleName && !e.registry.Has(name) {
			info.Unknown = append(info.Unknown, name)
		}
	}

	exports := compiled.ExportedFunctions()
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		info.Exports = append(info.Exports, funcInfo("", name, exports[name]))
	}

	return info, nil
}

func funcInfo(module, name string, def api.FunctionDefinition) FuncInfo {
	return FuncInfo{
		Module:  module,
		Name:    name,
		Params:  typeNames(def.ParamTypes()),
		Results: typeNames(def.ResultTypes()),
	}
}

func typeNames(types []api.ValueType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = api.ValueTypeName(t)
	}
	return names
}

