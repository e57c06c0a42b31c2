package hostfuncs

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps an ImportFunc to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next ImportFunc) ImportFunc

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics in an import
// and reports -1 to the module instead of crashing the host.
func PanicRecoveryMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ImportFunc) ImportFunc {
		return func(ctx context.Context, mem Memory, stack []uint64) {
			defer func() {
				if r := recover(); r != nil {
					logger.ErrorContext(ctx, "hostfuncs: import panicked", "import", ImportName(ctx), "panic", r)
					if len(stack) > 0 {
						stack[0] = EncodeI32(-1)
					}
				}
			}()
			next(ctx, mem, stack)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every import call at debug level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ImportFunc) ImportFunc {
		return func(ctx context.Context, mem Memory, stack []uint64) {
			start := time.Now()
			next(ctx, mem, stack)
			logger.DebugContext(ctx, "host import served",
				"import", ImportName(ctx),
				"duration", time.Since(start),
			)
		}
	}
}
