// Package logsink writes module log lines to a zap logger.
package logsink

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/domain/ports"
)

// Sink forwards log_msg calls to zap, tagged with the invocation scope.
type Sink struct {
	logger *zap.Logger
}

var _ ports.LogSink = (*Sink)(nil)

// New creates a Sink. A nil logger discards everything.
func New(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{logger: logger.Named("module")}
}

// Log writes msg at the zap level matching level.
func (s *Sink) Log(level entities.LogLevel, msg string, scope ports.LogScope) {
	ce := s.logger.Check(zapLevel(level), msg)
	if ce == nil {
		return
	}
	ce.Write(
		zap.Int32("ident", scope.Identifier),
		zap.String("request_id", scope.RequestID),
	)
}

// Sync flushes buffered entries.
func (s *Sink) Sync() error {
	return s.logger.Sync()
}

func zapLevel(level entities.LogLevel) zapcore.Level {
	switch level {
	case entities.LogLevelError:
		return zapcore.ErrorLevel
	case entities.LogLevelWarn:
		return zapcore.WarnLevel
	case entities.LogLevelDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
