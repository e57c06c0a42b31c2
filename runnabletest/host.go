package runnabletest

import (
	"context"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
)

// guestHost implements ports.Host by dispatching each call through a
// hostfuncs.Registry, with the guest arena standing in for linear memory.
type guestHost struct {
	ctx      context.Context //nolint:containedctx // imports carry no ctx on the guest side
	registry *hostfuncs.Registry
	mem      hostfuncs.Memory
}

var _ ports.Host = (*guestHost)(nil)

func (g *guestHost) call(name string, results int, args ...int32) int32 {
	stack := make([]uint64, max(len(args), results))
	for i, a := range args {
		stack[i] = hostfuncs.EncodeI32(a)
	}

	if err := g.registry.Invoke(g.ctx, name, g.mem, stack); err != nil {
		panic(err)
	}

	if results == 0 {
		return 0
	}
	return hostfuncs.DecodeI32(stack[0])
}

func (g *guestHost) ReturnResult(addr, size, ident int32) {
	g.call(ports.ImportReturnResult, 0, addr, size, ident)
}

func (g *guestHost) ReturnError(code, addr, size, ident int32) {
	g.call(ports.ImportReturnError, 0, code, addr, size, ident)
}

func (g *guestHost) GetFFIResult(addr, ident int32) int32 {
	return g.call(ports.ImportGetFFIResult, 1, addr, ident)
}

func (g *guestHost) AddFFIVar(nameAddr, nameLen, valAddr, valLen, ident int32) int32 {
	return g.call(ports.ImportAddFFIVar, 1, nameAddr, nameLen, valAddr, valLen, ident)
}

func (g *guestHost) FetchURL(method, urlAddr, urlLen, bodyAddr, bodyLen, ident int32) int32 {
	return g.call(ports.ImportFetchURL, 1, method, urlAddr, urlLen, bodyAddr, bodyLen, ident)
}

func (g *guestHost) CacheSet(keyAddr, keyLen, valAddr, valLen, ttl, ident int32) int32 {
	return g.call(ports.ImportCacheSet, 1, keyAddr, keyLen, valAddr, valLen, ttl, ident)
}

func (g *guestHost) CacheGet(keyAddr, keyLen, ident int32) int32 {
	return g.call(ports.ImportCacheGet, 1, keyAddr, keyLen, ident)
}

func (g *guestHost) DBExec(queryType, nameAddr, nameLen, ident int32) int32 {
	return g.call(ports.ImportDBExec, 1, queryType, nameAddr, nameLen, ident)
}

func (g *guestHost) GetStaticFile(nameAddr, nameLen, ident int32) int32 {
	return g.call(ports.ImportGetStaticFile, 1, nameAddr, nameLen, ident)
}

func (g *guestHost) GraphQLQuery(endpointAddr, endpointLen, queryAddr, queryLen, ident int32) int32 {
	return g.call(ports.ImportGraphQLQuery, 1, endpointAddr, endpointLen, queryAddr, queryLen, ident)
}

func (g *guestHost) RequestGetField(fieldType, keyAddr, keyLen, ident int32) int32 {
	return g.call(ports.ImportRequestGetField, 1, fieldType, keyAddr, keyLen, ident)
}

func (g *guestHost) RequestSetField(fieldType, keyAddr, keyLen, valAddr, valLen, ident int32) int32 {
	return g.call(ports.ImportRequestSetField, 1, fieldType, keyAddr, keyLen, valAddr, valLen, ident)
}

func (g *guestHost) RespSetHeader(keyAddr, keyLen, valAddr, valLen, ident int32) {
	g.call(ports.ImportRespSetHeader, 0, keyAddr, keyLen, valAddr, valLen, ident)
}

func (g *guestHost) LogMsg(addr, size, level, ident int32) {
	g.call(ports.ImportLogMsg, 0, addr, size, level, ident)
}
