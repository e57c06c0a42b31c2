// Package http makes outbound HTTP requests through the host.
//
// Headers travel inside the URL argument: "url::Key:Value::Key:Value", keys in
// ascending order. The host splits them back out before sending the request.
package http

import (
	"context"
	"sort"
	"strings"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// HeaderDelimiter separates the URL and each header in the encoded URL.
const HeaderDelimiter = "::"

// Method is the wire encoding of an HTTP method.
type Method = entities.HTTPMethod

const (
	MethodGet     = entities.MethodGet
	MethodHead    = entities.MethodHead
	MethodOptions = entities.MethodOptions
	MethodPost    = entities.MethodPost
	MethodPut     = entities.MethodPut
	MethodPatch   = entities.MethodPatch
	MethodDelete  = entities.MethodDelete
)

func GET(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return Do(ctx, MethodGet, url, nil, headers)
}

func HEAD(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return Do(ctx, MethodHead, url, nil, headers)
}

func OPTIONS(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return Do(ctx, MethodOptions, url, nil, headers)
}

func POST(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return Do(ctx, MethodPost, url, body, headers)
}

func PUT(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return Do(ctx, MethodPut, url, body, headers)
}

func PATCH(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return Do(ctx, MethodPatch, url, body, headers)
}

func DELETE(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return Do(ctx, MethodDelete, url, nil, headers)
}

// Do sends a request and returns the response body.
// Statuses above 299 are returned as errors by the host.
func Do(ctx context.Context, method Method, url string, body []byte, headers map[string]string) ([]byte, error) {
	env, err := ffi.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	urlAddr, urlLen, releaseURL := env.PassString(EncodeURL(url, headers))
	defer releaseURL()
	bodyAddr, bodyLen, releaseBody := env.Pass(body)
	defer releaseBody()

	size := env.Host().FetchURL(method.Code(), urlAddr, urlLen, bodyAddr, bodyLen, env.Ident())
	return env.Result(size)
}

// EncodeURL appends headers to url in the form the fetch_url import expects.
func EncodeURL(url string, headers map[string]string) string {
	if len(headers) == 0 {
		return url
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(url)
	for _, k := range keys {
		b.WriteString(HeaderDelimiter)
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(headers[k])
	}
	return b.String()
}
