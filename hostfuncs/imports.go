package hostfuncs

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/domain/ports"
)

// Status codes returned by status-returning imports.
const (
	StatusOK       int32 = 0
	StatusNoInvoke int32 = -1
	StatusFailed   int32 = -2
)

// headerDelimiter separates the URL and each header in fetch_url's URL argument.
const headerDelimiter = "::"

const contentTypeOctetStream = "application/octet-stream"

func (h *Host) invocation(ctx context.Context, ident int32) (*Invocation, bool) {
	inv, err := h.invocations.Get(ident)
	if err != nil {
		h.logger.ErrorContext(ctx, "hostfuncs: unknown ident", "import", ImportName(ctx), "error", err)
		return nil, false
	}
	return inv, true
}

// ReturnResult records the payload of a successful invocation.
func (h *Host) ReturnResult(ctx context.Context, mem Memory, addr, size, ident int32) {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return
	}

	data, err := readBytes(mem, addr, size, 0)
	if err != nil {
		runErr := entities.NewRunErr(entities.DefaultErrCode, errors.Wrap(err, "failed to read result").Error())
		inv.complete(nil, &runErr)
		return
	}
	inv.complete(data, nil)
}

// ReturnError records the code and message of a failed invocation.
func (h *Host) ReturnError(ctx context.Context, mem Memory, code, addr, size, ident int32) {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return
	}

	msg, err := readString(mem, addr, size, 0)
	if err != nil {
		msg = errors.Wrap(err, "failed to read error message").Error()
	}

	runErr := entities.NewRunErr(code, msg)
	inv.complete(nil, &runErr)
}

// GetFFIResult copies the pending result into guest memory at addr.
func (h *Host) GetFFIResult(ctx context.Context, mem Memory, addr, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return -1
	}

	data, err := inv.UseFFIResult()
	if err != nil {
		h.logger.ErrorContext(ctx, "hostfuncs: failed to UseFFIResult", "ident", ident, "error", err)
		return -1
	}

	if len(data) > 0 && !mem.Write(uint32(addr), data) { //nolint:gosec // G115: wasm32 address
		h.logger.ErrorContext(ctx, "hostfuncs: failed to write result to guest memory", "ident", ident, "size", len(data))
		return -1
	}
	return 0
}

// AddFFIVar queues a named variable for the next db_exec.
func (h *Host) AddFFIVar(ctx context.Context, mem Memory, nameAddr, nameLen, valAddr, valLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return StatusNoInvoke
	}

	name, err := readString(mem, nameAddr, nameLen, h.maxReadSize)
	if err != nil {
		return StatusFailed
	}
	value, err := readString(mem, valAddr, valLen, h.maxReadSize)
	if err != nil {
		return StatusFailed
	}

	inv.AddVar(name, value)
	return StatusOK
}

// FetchURL performs an outbound HTTP request.
func (h *Host) FetchURL(ctx context.Context, mem Memory, method, urlAddr, urlLen, bodyAddr, bodyLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return -1
	}

	resp, err := func() ([]byte, error) {
		if h.caps.HTTP == nil {
			return nil, errors.Wrap(ErrCapabilityDisabled, "http")
		}

		httpMethod, err := entities.ParseHTTPMethod(method)
		if err != nil {
			return nil, err
		}

		rawURL, err := readString(mem, urlAddr, urlLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}

		urlString, headers, err := ParseEncodedURL(rawURL)
		if err != nil {
			return nil, err
		}

		body, err := readBytes(mem, bodyAddr, bodyLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}

		if len(body) > 0 && headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", contentTypeOctetStream)
		}

		return h.caps.HTTP.Fetch(ctx, httpMethod.String(), urlString, body, headers)
	}()
	if err != nil {
		h.logger.DebugContext(ctx, "hostfuncs: fetch_url failed", "ident", ident, "error", err)
	}

	return inv.SetFFIResult(resp, err)
}

// ParseEncodedURL splits "url::Key:Value::Key:Value" into the URL and its headers.
func ParseEncodedURL(encoded string) (string, http.Header, error) {
	parts := strings.Split(encoded, headerDelimiter)
	headers := http.Header{}

	for _, p := range parts[1:] {
		kv := strings.SplitN(p, ":", 2)
		if len(kv) != 2 || kv[0] == "" {
			return "", nil, errors.Wrapf(ErrInvalidHeader, "%q", p)
		}
		headers.Add(kv[0], kv[1])
	}

	return parts[0], headers, nil
}

// CacheSet stores a value in the cache.
func (h *Host) CacheSet(ctx context.Context, mem Memory, keyAddr, keyLen, valAddr, valLen, ttl, ident int32) int32 {
	if _, ok := h.invocation(ctx, ident); !ok {
		return StatusNoInvoke
	}
	if h.caps.Cache == nil {
		return StatusFailed
	}

	key, err := readString(mem, keyAddr, keyLen, h.maxReadSize)
	if err != nil {
		return StatusFailed
	}
	val, err := readBytes(mem, valAddr, valLen, h.maxReadSize)
	if err != nil {
		return StatusFailed
	}

	if err := h.caps.Cache.Set(key, val, time.Duration(ttl)*time.Second); err != nil {
		h.logger.ErrorContext(ctx, "hostfuncs: failed to set cache key", "key", key, "error", err)
		return StatusFailed
	}
	return StatusOK
}

// CacheGet loads a value from the cache.
func (h *Host) CacheGet(ctx context.Context, mem Memory, keyAddr, keyLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return -1
	}

	val, err := func() ([]byte, error) {
		if h.caps.Cache == nil {
			return nil, errors.Wrap(ErrCapabilityDisabled, "cache")
		}
		key, err := readString(mem, keyAddr, keyLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}
		return h.caps.Cache.Get(key)
	}()
	if err != nil {
		h.logger.DebugContext(ctx, "hostfuncs: cache_get failed", "ident", ident, "error", err)
	}

	return inv.SetFFIResult(val, err)
}

// DBExec runs a prepared query with the variables queued since the last call.
func (h *Host) DBExec(ctx context.Context, mem Memory, queryType, nameAddr, nameLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return -1
	}

	vars := inv.UseVars()

	res, err := func() ([]byte, error) {
		if h.caps.DB == nil {
			return nil, errors.Wrap(ErrCapabilityDisabled, "db")
		}

		qt, err := entities.ParseQueryType(queryType)
		if err != nil {
			return nil, err
		}

		name, err := readString(mem, nameAddr, nameLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}

		values := make([]any, 0, len(vars))
		for _, v := range vars {
			values = append(values, v.Value)
		}

		return h.caps.DB.ExecQuery(ctx, qt, name, values)
	}()
	if err != nil {
		h.logger.DebugContext(ctx, "hostfuncs: db_exec failed", "ident", ident, "error", err)
	}

	return inv.SetFFIResult(res, err)
}

// GetStaticFile reads a bundled file.
func (h *Host) GetStaticFile(ctx context.Context, mem Memory, nameAddr, nameLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return -1
	}

	data, err := func() ([]byte, error) {
		if h.caps.Files == nil {
			return nil, errors.Wrap(ErrCapabilityDisabled, "file")
		}
		name, err := readString(mem, nameAddr, nameLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}
		return h.caps.Files.GetStatic(name)
	}()
	if err != nil {
		h.logger.DebugContext(ctx, "hostfuncs: get_static_file failed", "ident", ident, "error", err)
	}

	return inv.SetFFIResult(data, err)
}

// GraphQLQuery sends a query to a GraphQL endpoint.
func (h *Host) GraphQLQuery(ctx context.Context, mem Memory, endpointAddr, endpointLen, queryAddr, queryLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return -1
	}

	resp, err := func() ([]byte, error) {
		if h.caps.GraphQL == nil {
			return nil, errors.Wrap(ErrCapabilityDisabled, "graphql")
		}
		endpoint, err := readString(mem, endpointAddr, endpointLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}
		query, err := readString(mem, queryAddr, queryLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}
		return h.caps.GraphQL.Do(ctx, endpoint, query)
	}()

	return inv.SetFFIResult(resp, err)
}

// RequestGetField reads a field of the invocation's request.
func (h *Host) RequestGetField(ctx context.Context, mem Memory, fieldType, keyAddr, keyLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return -1
	}

	val, err := func() ([]byte, error) {
		cfg := h.caps.Request
		if !cfg.Enabled || !cfg.AllowGetField {
			return nil, errors.Wrap(ErrCapabilityDisabled, "request get field")
		}
		if inv.Request == nil {
			return nil, ErrReqNotSet
		}

		field, err := entities.ParseFieldType(fieldType)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidFieldType, err.Error())
		}
		key, err := readString(mem, keyAddr, keyLen, h.maxReadSize)
		if err != nil {
			return nil, err
		}
		return inv.Request.GetField(field, key)
	}()

	return inv.SetFFIResult(val, err)
}

// RequestSetField writes a field of the invocation's request.
func (h *Host) RequestSetField(ctx context.Context, mem Memory, fieldType, keyAddr, keyLen, valAddr, valLen, ident int32) int32 {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return StatusNoInvoke
	}

	err := func() error {
		cfg := h.caps.Request
		if !cfg.Enabled || !cfg.AllowSetField {
			return errors.Wrap(ErrCapabilityDisabled, "request set field")
		}
		if inv.Request == nil {
			return ErrReqNotSet
		}

		field, err := entities.ParseFieldType(fieldType)
		if err != nil {
			return errors.Wrap(ErrInvalidFieldType, err.Error())
		}
		key, err := readString(mem, keyAddr, keyLen, h.maxReadSize)
		if err != nil {
			return err
		}
		val, err := readString(mem, valAddr, valLen, h.maxReadSize)
		if err != nil {
			return err
		}
		return inv.Request.SetField(field, key, val)
	}()
	if err != nil {
		h.logger.DebugContext(ctx, "hostfuncs: request_set_field failed", "ident", ident, "error", err)
		return StatusFailed
	}
	return StatusOK
}

// RespSetHeader sets a header on the invocation's response.
func (h *Host) RespSetHeader(ctx context.Context, mem Memory, keyAddr, keyLen, valAddr, valLen, ident int32) {
	inv, ok := h.invocation(ctx, ident)
	if !ok || !h.caps.Request.Enabled || inv.Request == nil {
		return
	}

	key, err := readString(mem, keyAddr, keyLen, h.maxReadSize)
	if err != nil {
		return
	}
	val, err := readString(mem, valAddr, valLen, h.maxReadSize)
	if err != nil {
		return
	}

	inv.Request.SetResponseHeader(key, val)
}

// LogMsg forwards a guest log line to the log sink.
func (h *Host) LogMsg(ctx context.Context, mem Memory, addr, size, level, ident int32) {
	inv, ok := h.invocation(ctx, ident)
	if !ok {
		return
	}

	msg, err := readString(mem, addr, size, h.maxReadSize)
	if err != nil {
		return
	}

	lvl, err := entities.ParseLogLevel(level)
	if err != nil {
		lvl = entities.LogLevelInfo
	}

	scope := ports.LogScope{Identifier: ident}
	if inv.Request != nil {
		scope.RequestID = inv.Request.ID
	}

	if h.caps.Logs == nil {
		h.logger.InfoContext(ctx, msg, "level", lvl.String(), "ident", ident, "request_id", scope.RequestID)
		return
	}
	h.caps.Logs.Log(lvl, msg, scope)
}
