// Package abi tracks the guest buffers that cross the module boundary.
//
// Every buffer handed to the host lives in an Arena until it is either
// deallocated or taken back by the guest. Tracking the slice keeps the Go GC
// from collecting memory the host may still write into.
package abi

import (
	"fmt"
	"sync"
)

// DefaultMaxTotalAllocations caps the bytes an Arena may track at once.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// Arena is a handle table of guest buffers keyed by their 32-bit address.
// In wasip1 builds the address is the buffer's offset in linear memory; in
// native builds it is an opaque handle. Address 0 never refers to a buffer.
type Arena struct {
	bufs           map[uint32][]byte
	maxTotal       int
	totalAllocated int
	next           uint32
	mu             sync.Mutex
}

// Option configures an Arena.
type Option func(*Arena)

// WithMaxTotalAllocations sets the allocation ceiling in bytes.
func WithMaxTotalAllocations(limit int) Option {
	return func(a *Arena) {
		a.maxTotal = limit
	}
}

// NewArena creates an empty Arena.
func NewArena(opts ...Option) *Arena {
	a := &Arena{
		bufs:     make(map[uint32][]byte),
		maxTotal: DefaultMaxTotalAllocations,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate reserves a zeroed buffer of size bytes and returns its address.
// A zero size returns 0 and tracks nothing.
// Panics if the allocation would exceed the configured ceiling.
func (a *Arena) Allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.totalAllocated+int(size) > a.maxTotal {
		panic(fmt.Sprintf("abi: memory allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
			size, a.totalAllocated, a.maxTotal))
	}

	buf := make([]byte, size)
	addr := a.addressFor(buf)

	a.bufs[addr] = buf
	a.totalAllocated += int(size)

	return addr
}

// Deallocate forgets the buffer at addr. Untracked addresses are ignored.
// Accounting uses the stored length, not size.
func (a *Arena) Deallocate(addr, _ uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.forget(addr)
}

// Take removes the buffer at addr from the table and returns it.
// The caller owns the returned slice; no deallocate is needed afterwards.
func (a *Arena) Take(addr uint32) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.forget(addr)
}

// Read returns the first n bytes of the buffer at offset.
// The slice aliases tracked memory; copy it if it must outlive the buffer.
func (a *Arena) Read(offset, n uint32) ([]byte, bool) {
	if n == 0 {
		return []byte{}, true
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.bufs[offset]
	if !ok || int(n) > len(buf) {
		return nil, false
	}
	return buf[:n], true
}

// Write copies data into the buffer at offset.
// It fails if the buffer is untracked or too small.
func (a *Arena) Write(offset uint32, data []byte) bool {
	if len(data) == 0 {
		return true
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.bufs[offset]
	if !ok || len(data) > len(buf) {
		return false
	}
	copy(buf, data)
	return true
}

// Pass copies data into a fresh buffer for a guest to host call.
// The returned release func deallocates it once the call has returned.
func (a *Arena) Pass(data []byte) (addr, size uint32, release func()) {
	if len(data) == 0 {
		return 0, 0, func() {}
	}

	size = uint32(len(data)) //nolint:gosec // G115: guest buffers are bounded by the arena ceiling
	addr = a.Allocate(size)
	a.Write(addr, data)

	return addr, size, func() { a.Deallocate(addr, size) }
}

// Stats reports how many buffers and bytes are currently tracked.
func (a *Arena) Stats() (count, bytes int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.bufs), a.totalAllocated
}

// Reset frees every tracked buffer.
func (a *Arena) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for addr := range a.bufs {
		delete(a.bufs, addr)
	}
	a.totalAllocated = 0
}

func (a *Arena) forget(addr uint32) ([]byte, bool) {
	buf, ok := a.bufs[addr]
	if !ok {
		return nil, false
	}

	delete(a.bufs, addr)
	a.totalAllocated -= len(buf)
	if a.totalAllocated < 0 {
		a.totalAllocated = 0
	}
	return buf, true
}
