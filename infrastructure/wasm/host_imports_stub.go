//go:build !wasip1

// Package wasm binds the host's "env" imports for modules compiled to wasip1.
package wasm

const notAvailable = "wasm host imports not available in native build"

// HostImports stub for native builds. Use runnabletest to exercise guest code natively.
type HostImports struct{}

// NewHostImports returns the stub.
func NewHostImports() *HostImports {
	return &HostImports{}
}

func (HostImports) ReturnResult(_, _, _ int32) { panic(notAvailable) }

func (HostImports) ReturnError(_, _, _, _ int32) { panic(notAvailable) }

func (HostImports) GetFFIResult(_, _ int32) int32 { panic(notAvailable) }

func (HostImports) AddFFIVar(_, _, _, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) FetchURL(_, _, _, _, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) CacheSet(_, _, _, _, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) CacheGet(_, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) DBExec(_, _, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) GetStaticFile(_, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) GraphQLQuery(_, _, _, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) RequestGetField(_, _, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) RequestSetField(_, _, _, _, _, _ int32) int32 { panic(notAvailable) }

func (HostImports) RespSetHeader(_, _, _, _, _ int32) { panic(notAvailable) }

func (HostImports) LogMsg(_, _, _, _ int32) { panic(notAvailable) }
