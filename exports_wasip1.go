//go:build wasip1

package runnable

import (
	"github.com/reglet-dev/runnable-sdk/infrastructure/wasm"
	"github.com/reglet-dev/runnable-sdk/internal/abi"
	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

var processEnv = ffi.NewEnv(wasm.NewHostImports(), abi.NewArena())

//go:wasmexport allocate
func allocate(size int32) int32 {
	return int32(processEnv.Arena().Allocate(uint32(size))) //nolint:gosec // G115: wasm32 address
}

//go:wasmexport deallocate
func deallocate(addr, size int32) {
	processEnv.Arena().Deallocate(uint32(addr), uint32(size)) //nolint:gosec // G115: wasm32 address
}

//go:wasmexport init
func initRunnable() {
	bind(processEnv)
}

//go:wasmexport run
func run(addr, size, ident int32) {
	processEnv.Run(addr, size, ident)
}
