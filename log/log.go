package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// Debug logs msg at debug level.
func Debug(ctx context.Context, msg string) {
	Emit(ctx, entities.LogLevelDebug, msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	Emit(ctx, entities.LogLevelDebug, fmt.Sprintf(format, args...))
}

// Info logs msg at info level.
func Info(ctx context.Context, msg string) {
	Emit(ctx, entities.LogLevelInfo, msg)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	Emit(ctx, entities.LogLevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs msg at warn level.
func Warn(ctx context.Context, msg string) {
	Emit(ctx, entities.LogLevelWarn, msg)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	Emit(ctx, entities.LogLevelWarn, fmt.Sprintf(format, args...))
}

// Error logs msg at error level.
func Error(ctx context.Context, msg string) {
	Emit(ctx, entities.LogLevelError, msg)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	Emit(ctx, entities.LogLevelError, fmt.Sprintf(format, args...))
}

// Emit sends msg to the host with the given severity.
func Emit(ctx context.Context, level entities.LogLevel, msg string) {
	emit(ctx, level, msg, os.Stderr)
}

func emit(ctx context.Context, level entities.LogLevel, msg string, fallback io.Writer) {
	env, ok := ffi.FromContext(ctx)
	if !ok {
		if fallback != nil {
			fmt.Fprintf(fallback, "[%s] %s\n", level, msg)
		}
		return
	}

	addr, size, release := env.PassString(msg)
	defer release()

	env.Host().LogMsg(addr, size, level.Code(), env.Ident())
}
