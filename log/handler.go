// Package log routes guest log output to the host through the log_msg import.
//
// Importing the package installs a WasmLogHandler as the slog default, so
// slog.InfoContext(ctx, ...) inside a Runnable reaches the host. Records
// logged without an invocation context go to stderr.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// WasmLogHandler implements slog.Handler on top of the log_msg import.
type WasmLogHandler struct {
	opts   handlerConfig
	prefix string
	attrs  []string
}

// HandlerOption configures the WasmLogHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	fallback  io.Writer
	level     slog.Level
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level:    slog.LevelInfo,
		fallback: os.Stderr,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level are dropped before reaching the host.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource appends source=file:line to each line.
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithFallback sets where records logged outside an invocation are written.
func WithFallback(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		c.fallback = w
	}
}

// NewHandler creates a new WasmLogHandler with the given options.
func NewHandler(opts ...HandlerOption) *WasmLogHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WasmLogHandler{opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *WasmLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// WithAttrs returns a handler that renders attrs on every line.
func (h *WasmLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	for _, attr := range attrs {
		next.attrs = appendAttr(next.attrs, h.prefix, attr)
	}
	return next
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *WasmLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

// Handle renders the record as "message key=value ..." and sends it to the host.
func (h *WasmLogHandler) Handle(ctx context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)

	fields := append([]string(nil), h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendAttr(fields, h.prefix, attr)
		return true
	})

	if h.opts.addSource && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		fields = append(fields, fmt.Sprintf("source=%s:%d", filepath.Base(frame.File), frame.Line))
	}

	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f)
	}

	emit(ctx, WireLevel(record.Level), b.String(), h.opts.fallback)
	return nil
}

func (h *WasmLogHandler) clone() *WasmLogHandler {
	return &WasmLogHandler{
		opts:   h.opts,
		prefix: h.prefix,
		attrs:  append([]string(nil), h.attrs...),
	}
}

func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
