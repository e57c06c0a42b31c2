//go:build wasip1

// Package wasm binds the host's "env" imports for modules compiled to wasip1.
package wasm

//go:wasmimport env return_result
func returnResult(addr, size, ident int32)

//go:wasmimport env return_error
func returnError(code, addr, size, ident int32)

//go:wasmimport env get_ffi_result
func getFFIResult(addr, ident int32) int32

//go:wasmimport env add_ffi_var
func addFFIVar(nameAddr, nameLen, valAddr, valLen, ident int32) int32

//go:wasmimport env fetch_url
func fetchURL(method, urlAddr, urlLen, bodyAddr, bodyLen, ident int32) int32

//go:wasmimport env cache_set
func cacheSet(keyAddr, keyLen, valAddr, valLen, ttl, ident int32) int32

//go:wasmimport env cache_get
func cacheGet(keyAddr, keyLen, ident int32) int32

//go:wasmimport env db_exec
func dbExec(queryType, nameAddr, nameLen, ident int32) int32

//go:wasmimport env get_static_file
func getStaticFile(nameAddr, nameLen, ident int32) int32

//go:wasmimport env graphql_query
func graphQLQuery(endpointAddr, endpointLen, queryAddr, queryLen, ident int32) int32

//go:wasmimport env request_get_field
func requestGetField(fieldType, keyAddr, keyLen, ident int32) int32

//go:wasmimport env request_set_field
func requestSetField(fieldType, keyAddr, keyLen, valAddr, valLen, ident int32) int32

//go:wasmimport env resp_set_header
func respSetHeader(keyAddr, keyLen, valAddr, valLen, ident int32)

//go:wasmimport env log_msg
func logMsg(addr, size, level, ident int32)

// HostImports implements ports.Host with the module's wasm imports.
type HostImports struct{}

// NewHostImports returns the import bindings.
func NewHostImports() *HostImports {
	return &HostImports{}
}

func (HostImports) ReturnResult(addr, size, ident int32) { returnResult(addr, size, ident) }

func (HostImports) ReturnError(code, addr, size, ident int32) { returnError(code, addr, size, ident) }

func (HostImports) GetFFIResult(addr, ident int32) int32 { return getFFIResult(addr, ident) }

func (HostImports) AddFFIVar(nameAddr, nameLen, valAddr, valLen, ident int32) int32 {
	return addFFIVar(nameAddr, nameLen, valAddr, valLen, ident)
}

func (HostImports) FetchURL(method, urlAddr, urlLen, bodyAddr, bodyLen, ident int32) int32 {
	return fetchURL(method, urlAddr, urlLen, bodyAddr, bodyLen, ident)
}

func (HostImports) CacheSet(keyAddr, keyLen, valAddr, valLen, ttl, ident int32) int32 {
	return cacheSet(keyAddr, keyLen, valAddr, valLen, ttl, ident)
}

func (HostImports) CacheGet(keyAddr, keyLen, ident int32) int32 {
	return cacheGet(keyAddr, keyLen, ident)
}

func (HostImports) DBExec(queryType, nameAddr, nameLen, ident int32) int32 {
	return dbExec(queryType, nameAddr, nameLen, ident)
}

func (HostImports) GetStaticFile(nameAddr, nameLen, ident int32) int32 {
	return getStaticFile(nameAddr, nameLen, ident)
}

func (HostImports) GraphQLQuery(endpointAddr, endpointLen, queryAddr, queryLen, ident int32) int32 {
	return graphQLQuery(endpointAddr, endpointLen, queryAddr, queryLen, ident)
}

func (HostImports) RequestGetField(fieldType, keyAddr, keyLen, ident int32) int32 {
	return requestGetField(fieldType, keyAddr, keyLen, ident)
}

func (HostImports) RequestSetField(fieldType, keyAddr, keyLen, valAddr, valLen, ident int32) int32 {
	return requestSetField(fieldType, keyAddr, keyLen, valAddr, valLen, ident)
}

func (HostImports) RespSetHeader(keyAddr, keyLen, valAddr, valLen, ident int32) {
	respSetHeader(keyAddr, keyLen, valAddr, valLen, ident)
}

func (HostImports) LogMsg(addr, size, level, ident int32) { logMsg(addr, size, level, ident) }
