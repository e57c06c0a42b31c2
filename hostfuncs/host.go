package hostfuncs

import (
	"log/slog"
)

// DefaultMaxReadSize limits how many bytes one import argument may span (16MB).
// This prevents a module from making the host copy arbitrarily large regions.
const DefaultMaxReadSize = 16 * 1024 * 1024

// Host serves the imports for every invocation it tracks.
type Host struct {
	caps        Capabilities
	invocations *Invocations
	logger      *slog.Logger
	maxReadSize uint32
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger for host diagnostics.
func WithLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithMaxReadSize overrides DefaultMaxReadSize.
func WithMaxReadSize(size uint32) HostOption {
	return func(h *Host) {
		h.maxReadSize = size
	}
}

// WithInvocations shares an invocation tracker between hosts.
func WithInvocations(inv *Invocations) HostOption {
	return func(h *Host) {
		h.invocations = inv
	}
}

// NewHost creates a Host backed by caps.
func NewHost(caps Capabilities, opts ...HostOption) *Host {
	h := &Host{
		caps:        caps,
		logger:      slog.Default(),
		maxReadSize: DefaultMaxReadSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.invocations == nil {
		h.invocations = NewInvocations()
	}
	return h
}

// Invocations returns the tracker used to resolve idents.
func (h *Host) Invocations() *Invocations {
	return h.invocations
}

// Capabilities returns the configured backends.
func (h *Host) Capabilities() Capabilities {
	return h.caps
}
