package host

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/reglet-dev/runnable-sdk/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithCapabilities sets the backends served to modules.
func WithCapabilities(caps hostfuncs.Capabilities) Option {
	return func(e *Executor) {
		e.caps = caps
	}
}

// WithLogger sets the logger used for host diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithTracerProvider sets the provider for invocation spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Executor) {
		e.tracerProvider = tp
	}
}

// WithMiddleware adds middleware around every import.
func WithMiddleware(mw ...hostfuncs.Middleware) Option {
	return func(e *Executor) {
		e.middleware = append(e.middleware, mw...)
	}
}

// WithMaxReadSize limits how much guest memory one import argument may span.
func WithMaxReadSize(size uint32) Option {
	return func(e *Executor) {
		e.maxReadSize = size
	}
}

// WithOutput sets where module stdout and stderr are written.
// Both are discarded by default.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}
