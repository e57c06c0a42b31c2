package host

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DefaultMaxModuleSize caps how large a module file ReadModule accepts (64MB).
const DefaultMaxModuleSize = 64 * 1024 * 1024

// ErrNotWasm is returned for files without the wasm binary magic.
var ErrNotWasm = errors.New("not a wasm binary")

// ErrModuleTooLarge is returned for files over the size cap.
var ErrModuleTooLarge = errors.New("module exceeds maximum size")

var wasmMagic = []byte{0x00, 'a', 's', 'm'}

// ReadModule reads a module binary from path. A maxSize of zero uses
// DefaultMaxModuleSize.
func ReadModule(path string, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxModuleSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open module")
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read module")
	}
	if int64(len(data)) > maxSize {
		return nil, errors.Wrapf(ErrModuleTooLarge, "%s: limit %d bytes", path, maxSize)
	}
	if !bytes.HasPrefix(data, wasmMagic) {
		return nil, errors.Wrap(ErrNotWasm, path)
	}
	return data, nil
}
