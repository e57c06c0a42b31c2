//go:build wasip1

package abi

import "unsafe"

// addressFor returns the linear memory offset of the buffer's first byte.
func (a *Arena) addressFor(buf []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(&buf[0])))
}

// Adopt copies size bytes starting at addr out of linear memory.
// It serves input regions the host wrote without going through allocate.
func Adopt(addr, size uint32) ([]byte, bool) {
	if addr == 0 {
		return nil, false
	}
	// WASM linear memory: uint32 offset -> pointer conversion is safe and necessary
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), size)
	data := make([]byte, size)
	copy(data, src)
	return data, true
}
