package hostfuncs

import (
	"github.com/pkg/errors"
)

// Memory is the guest memory an import reads arguments from and writes results to.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, data []byte) bool
}

// EncodeI32 stores v in a stack slot.
func EncodeI32(v int32) uint64 {
	return uint64(uint32(v))
}

// DecodeI32 reads an i32 from a stack slot.
func DecodeI32(v uint64) int32 {
	return int32(uint32(v)) //nolint:gosec // G115: i32 stack slots
}

// readBytes copies size bytes at addr out of mem.
func readBytes(mem Memory, addr, size int32, limit uint32) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	if size < 0 || addr < 0 {
		return nil, errors.Wrapf(ErrMemoryAccess, "addr %d size %d", addr, size)
	}
	if limit > 0 && uint32(size) > limit {
		return nil, errors.Wrapf(ErrReadTooLarge, "%d bytes requested, limit %d", size, limit)
	}

	view, ok := mem.Read(uint32(addr), uint32(size))
	if !ok {
		return nil, errors.Wrapf(ErrMemoryAccess, "addr %d size %d", addr, size)
	}

	data := make([]byte, len(view))
	copy(data, view)
	return data, nil
}

func readString(mem Memory, addr, size int32, limit uint32) (string, error) {
	data, err := readBytes(mem, addr, size, limit)
	return string(data), err
}
