//go:build !wasip1

package abi

const (
	handleBase  uint32 = 1 << 16
	handleAlign uint32 = 8
)

// addressFor hands out non-overlapping handles that mimic linear memory offsets.
// Caller holds a.mu.
func (a *Arena) addressFor(buf []byte) uint32 {
	for {
		if a.next < handleBase {
			a.next = handleBase
		}

		addr := a.next
		a.next += (uint32(len(buf)) + handleAlign) &^ (handleAlign - 1) //nolint:gosec // G115: bounded by maxTotal

		if _, used := a.bufs[addr]; !used {
			return addr
		}
	}
}

// Adopt is unavailable outside wasm: there is no linear memory to read from.
func Adopt(_, _ uint32) ([]byte, bool) {
	return nil, false
}
