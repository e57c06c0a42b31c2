package ports

// Host is the guest's view of the imported functions provided by the "env" module.
// Every argument is an i32; addresses and lengths describe guest memory.
// Size-returning calls start the two-step retrieval protocol, status-returning
// calls report 0 on success.
type Host interface {
	ReturnResult(addr, size, ident int32)
	ReturnError(code, addr, size, ident int32)
	GetFFIResult(addr, ident int32) int32
	AddFFIVar(nameAddr, nameLen, valAddr, valLen, ident int32) int32

	FetchURL(method, urlAddr, urlLen, bodyAddr, bodyLen, ident int32) int32
	CacheSet(keyAddr, keyLen, valAddr, valLen, ttl, ident int32) int32
	CacheGet(keyAddr, keyLen, ident int32) int32
	DBExec(queryType, nameAddr, nameLen, ident int32) int32
	GetStaticFile(nameAddr, nameLen, ident int32) int32
	GraphQLQuery(endpointAddr, endpointLen, queryAddr, queryLen, ident int32) int32

	RequestGetField(fieldType, keyAddr, keyLen, ident int32) int32
	RequestSetField(fieldType, keyAddr, keyLen, valAddr, valLen, ident int32) int32
	RespSetHeader(keyAddr, keyLen, valAddr, valLen, ident int32)

	LogMsg(addr, size, level, ident int32)
}

// Import names as exported by the host module.
const (
	HostModuleName = "env"

	ImportReturnResult    = "return_result"
	ImportReturnError     = "return_error"
	ImportGetFFIResult    = "get_ffi_result"
	ImportAddFFIVar       = "add_ffi_var"
	ImportFetchURL        = "fetch_url"
	ImportCacheSet        = "cache_set"
	ImportCacheGet        = "cache_get"
	ImportDBExec          = "db_exec"
	ImportGetStaticFile   = "get_static_file"
	ImportGraphQLQuery    = "graphql_query"
	ImportRequestGetField = "request_get_field"
	ImportRequestSetField = "request_set_field"
	ImportRespSetHeader   = "resp_set_header"
	ImportLogMsg          = "log_msg"
)

// Export names the guest module provides.
const (
	ExportAllocate   = "allocate"
	ExportDeallocate = "deallocate"
	ExportInit       = "init"
	ExportRun        = "run"
	ExportInitialize = "_initialize"
)
