package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
)

type invokerFunc func(ctx context.Context, input []byte, req *hostfuncs.Request) (hostfuncs.Outcome, error)

func (f invokerFunc) Invoke(ctx context.Context, input []byte, req *hostfuncs.Request) (hostfuncs.Outcome, error) {
	return f(ctx, input, req)
}

func do(t *testing.T, s *Server, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_Result(t *testing.T) {
	var seen *hostfuncs.Request
	s := New(invokerFunc(func(_ context.Context, input []byte, req *hostfuncs.Request) (hostfuncs.Outcome, error) {
		seen = req
		req.SetResponseHeader("Content-Type", "text/plain")
		return hostfuncs.Outcome{Output: append([]byte("hello "), input...), Completed: true}, nil
	}), "/greet/:name")

	req := httptest.NewRequest(http.MethodPost, "/greet/ada?lang=en", strings.NewReader("world"))
	req.Header.Set("X-Trace", "abc")

	resp, body := do(t, s, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello world", body)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))

	require.NotNil(t, seen)
	assert.Equal(t, seen.ID, resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "POST", seen.Method)
	assert.Equal(t, "/greet/ada?lang=en", seen.URL)
	assert.Equal(t, "ada", seen.Params["name"])
	assert.Equal(t, "abc", seen.Headers["x-trace"])
	assert.Equal(t, []byte("world"), seen.Body)
}

func TestServer_RunErr(t *testing.T) {
	tests := []struct {
		name   string
		code   int32
		status int
	}{
		{name: "http status", code: 404, status: http.StatusNotFound},
		{name: "teapot", code: 418, status: http.StatusTeapot},
		{name: "below range", code: 42, status: http.StatusInternalServerError},
		{name: "above range", code: 1000, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(invokerFunc(func(context.Context, []byte, *hostfuncs.Request) (hostfuncs.Outcome, error) {
				runErr := entities.NewRunErr(tt.code, "nope")
				return hostfuncs.Outcome{Err: &runErr, Completed: true}, nil
			}), "/")

			resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "nope", body)
		})
	}
}

func TestServer_InvokeFailure(t *testing.T) {
	s := New(invokerFunc(func(context.Context, []byte, *hostfuncs.Request) (hostfuncs.Outcome, error) {
		return hostfuncs.Outcome{}, errors.New("run trapped")
	}), "/")

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "run trapped", body)
}

func TestServer_UnknownPath(t *testing.T) {
	s := New(invokerFunc(func(context.Context, []byte, *hostfuncs.Request) (hostfuncs.Outcome, error) {
		return hostfuncs.Outcome{Completed: true}, nil
	}), "/only")

	resp, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 100, StatusFor(100))
	assert.Equal(t, 599, StatusFor(599))
	assert.Equal(t, 500, StatusFor(0))
	assert.Equal(t, 500, StatusFor(-1))
}
