package host

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
	wzadapter "github.com/reglet-dev/runnable-sdk/infrastructure/wazero"
)

const tracerName = "github.com/reglet-dev/runnable-sdk/host"

// ErrMissingExport is returned when a module lacks a required export.
var ErrMissingExport = errors.New("module is missing a required export")

// ErrNoOutcome is returned when run returns without the module reporting
// a result or an error.
var ErrNoOutcome = errors.New("module returned without reporting a result")

// RequiredExports are the functions every runnable module must export.
var RequiredExports = []string{ports.ExportAllocate, ports.ExportDeallocate, ports.ExportInit, ports.ExportRun}

// Executor manages the lifecycle of runnable modules.
type Executor struct {
	runtime        wazero.Runtime
	host           *hostfuncs.Host
	registry       *hostfuncs.Registry
	tracer         trace.Tracer
	tracerProvider trace.TracerProvider
	logger         *slog.Logger
	stdout         io.Writer
	stderr         io.Writer
	caps           hostfuncs.Capabilities
	middleware     []hostfuncs.Middleware
	maxReadSize    uint32
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		logger:      slog.Default(),
		stdout:      io.Discard,
		stderr:      io.Discard,
		maxReadSize: hostfuncs.DefaultMaxReadSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracerProvider == nil {
		e.tracerProvider = otel.GetTracerProvider()
	}
	e.tracer = e.tracerProvider.Tracer(tracerName)

	e.host = hostfuncs.NewHost(e.caps,
		hostfuncs.WithLogger(e.logger),
		hostfuncs.WithMaxReadSize(e.maxReadSize),
	)

	mw := append([]hostfuncs.Middleware{hostfuncs.PanicRecoveryMiddleware(e.logger)}, e.middleware...)
	registry, err := hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(mw...),
		hostfuncs.WithImports(e.host.Imports()...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create import registry: %w", err)
	}
	e.registry = registry

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := wzadapter.RegisterWithRuntime(ctx, rt, registry); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Host returns the host serving imports for this executor's modules.
func (e *Executor) Host() *hostfuncs.Host {
	return e.host
}

// Close releases resources held by the executor and every loaded module.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Instance is a loaded runnable module. Invocations on one instance are
// serialized since a module has a single linear memory.
type Instance struct {
	exec     *Executor
	module   api.Module
	allocate api.Function
	run      api.Function
	name     string
	mu       sync.Mutex
}

// Load compiles and instantiates a runnable module, calls _initialize when
// present and then init.
func (e *Executor) Load(ctx context.Context, name string, wasmBytes []byte) (*Instance, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	if missing := missingExports(compiled); len(missing) > 0 {
		_ = compiled.Close(ctx)
		return nil, errors.Wrapf(ErrMissingExport, "%v", missing)
	}

	cfg := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions(ports.ExportInitialize).
		WithStdout(e.stdout).
		WithStderr(e.stderr)

	mod, err := e.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if _, err := mod.ExportedFunction(ports.ExportInit).Call(ctx); err != nil {
		_ = mod.Close(ctx)
		return nil, fmt.Errorf("failed to call init: %w", err)
	}

	e.logger.DebugContext(ctx, "module loaded", "module", name)

	return &Instance{
		exec:     e,
		module:   mod,
		allocate: mod.ExportedFunction(ports.ExportAllocate),
		run:      mod.ExportedFunction(ports.ExportRun),
		name:     name,
	}, nil
}

// Name returns the name the module was loaded under.
func (i *Instance) Name() string {
	return i.name
}

// Close releases the module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

// Invoke runs the module once with input while req is the request it sees
// through the req and resp capabilities. A nil req gets a GET request for "/".
// An error is returned only if the module could not be run; errors the module
// reports are in the Outcome.
func (i *Instance) Invoke(ctx context.Context, input []byte, req *hostfuncs.Request) (out hostfuncs.Outcome, err error) {
	if req == nil {
		req = hostfuncs.NewRequest("GET", "/", nil)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	invocations := i.exec.host.Invocations()
	inv := invocations.Begin(req)
	defer invocations.End(inv.Ident)

	ctx, span := i.exec.tracer.Start(ctx, "runnable.invoke", trace.WithAttributes(
		attribute.String("runnable.module", i.name),
		attribute.String("runnable.request_id", req.ID),
		attribute.Int("runnable.ident", int(inv.Ident)),
		attribute.Int("runnable.input_size", len(input)),
	))
	defer func() {
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case out.Err != nil:
			span.SetAttributes(attribute.Int("runnable.error_code", int(out.Err.Code)))
			span.SetStatus(codes.Error, out.Err.Message)
		}
		span.End()
	}()

	var addr uint32
	if len(input) > 0 {
		results, err := i.allocate.Call(ctx, uint64(len(input)))
		if err != nil {
			return out, fmt.Errorf("failed to allocate input: %w", err)
		}
		addr = api.DecodeU32(results[0])
		if !i.module.Memory().Write(addr, input) {
			return out, fmt.Errorf("failed to write input at %d", addr)
		}
	}

	_, err = i.run.Call(ctx,
		api.EncodeU32(addr),
		api.EncodeI32(int32(len(input))), //nolint:gosec // G115: input fits wasm32 memory
		api.EncodeI32(inv.Ident),
	)
	if err != nil {
		return out, fmt.Errorf("run trapped: %w", err)
	}

	out = inv.Outcome()
	if !out.Completed {
		return out, ErrNoOutcome
	}
	return out, nil
}

func missingExports(compiled wazero.CompiledModule) []string {
	exported := compiled.ExportedFunctions()

	var missing []string
	for _, name := range RequiredExports {
		if _, ok := exported[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
