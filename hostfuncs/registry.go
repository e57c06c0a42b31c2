package hostfuncs

import (
	"context"
	"fmt"
	"sort"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
)

// ImportFunc serves one import call. Arguments are read from stack and the
// result, if any, is written to stack[0].
type ImportFunc func(ctx context.Context, mem Memory, stack []uint64)

// Import describes a host function exported to the module under Name.
// Every parameter and result is an i32.
type Import struct {
	Fn      ImportFunc
	Name    string
	Params  int
	Results int
}

// Registry is an immutable collection of imports.
// Once created via NewRegistry, imports cannot be added or removed.
type Registry struct {
	imports map[string]Import
	names   []string // sorted for consistent iteration
}

type registryBuilder struct {
	imports    map[string]Import
	middleware []Middleware
	errors     []error
}

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any import name is registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware(slog.Default())),
//	    WithImports(host.Imports()...),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{imports: make(map[string]Import)}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.imports))
	wrapped := make(map[string]Import, len(b.imports))
	for name, imp := range b.imports {
		names = append(names, name)

		fn := imp.Fn
		// first middleware wraps outermost
		for i := len(b.middleware) - 1; i >= 0; i-- {
			fn = b.middleware[i](fn)
		}
		imp.Fn = fn
		wrapped[name] = imp
	}
	sort.Strings(names)

	return &Registry{imports: wrapped, names: names}, nil
}

// Invoke dispatches an import call by name.
func (r *Registry) Invoke(ctx context.Context, name string, mem Memory, stack []uint64) error {
	imp, ok := r.imports[name]
	if !ok {
		return fmt.Errorf("import not registered: %q", name)
	}
	if len(stack) < max(imp.Params, imp.Results) {
		return fmt.Errorf("import %q: stack has %d slots, need %d", name, len(stack), max(imp.Params, imp.Results))
	}

	imp.Fn(WithImportName(ctx, name), mem, stack)
	return nil
}

// Get returns the import registered under name, with middleware applied.
func (r *Registry) Get(name string) (Import, bool) {
	imp, ok := r.imports[name]
	return imp, ok
}

// Has returns true if an import with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.imports[name]
	return ok
}

// Names returns a sorted list of all registered import names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

func (b *registryBuilder) addImport(imp Import) error {
	if imp.Name == "" {
		return fmt.Errorf("import name cannot be empty")
	}
	if imp.Fn == nil {
		return fmt.Errorf("import %q has no function", imp.Name)
	}
	if _, exists := b.imports[imp.Name]; exists {
		return fmt.Errorf("duplicate import name: %q", imp.Name)
	}
	b.imports[imp.Name] = imp
	return nil
}

// WithImports registers imports.
func WithImports(imports ...Import) RegistryOption {
	return func(b *registryBuilder) {
		for _, imp := range imports {
			if err := b.addImport(imp); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

func arg(stack []uint64, i int) int32 {
	return DecodeI32(stack[i])
}

// Imports returns the full import table served by h.
func (h *Host) Imports() []Import {
	return []Import{
		{Name: ports.ImportReturnResult, Params: 3, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			h.ReturnResult(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2))
		}},
		{Name: ports.ImportReturnError, Params: 4, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			h.ReturnError(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3))
		}},
		{Name: ports.ImportGetFFIResult, Params: 2, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.GetFFIResult(ctx, mem, arg(s, 0), arg(s, 1)))
		}},
		{Name: ports.ImportAddFFIVar, Params: 5, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.AddFFIVar(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3), arg(s, 4)))
		}},
		{Name: ports.ImportFetchURL, Params: 6, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.FetchURL(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3), arg(s, 4), arg(s, 5)))
		}},
		{Name: ports.ImportGraphQLQuery, Params: 5, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.GraphQLQuery(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3), arg(s, 4)))
		}},
		{Name: ports.ImportCacheSet, Params: 6, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.CacheSet(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3), arg(s, 4), arg(s, 5)))
		}},
		{Name: ports.ImportCacheGet, Params: 3, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.CacheGet(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2)))
		}},
		{Name: ports.ImportDBExec, Params: 4, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.DBExec(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3)))
		}},
		{Name: ports.ImportGetStaticFile, Params: 3, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.GetStaticFile(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2)))
		}},
		{Name: ports.ImportRequestGetField, Params: 4, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.RequestGetField(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3)))
		}},
		{Name: ports.ImportRequestSetField, Params: 6, Results: 1, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			s[0] = EncodeI32(h.RequestSetField(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3), arg(s, 4), arg(s, 5)))
		}},
		{Name: ports.ImportRespSetHeader, Params: 5, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			h.RespSetHeader(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3), arg(s, 4))
		}},
		{Name: ports.ImportLogMsg, Params: 4, Fn: func(ctx context.Context, mem Memory, s []uint64) {
			h.LogMsg(ctx, mem, arg(s, 0), arg(s, 1), arg(s, 2), arg(s, 3))
		}},
	}
}
