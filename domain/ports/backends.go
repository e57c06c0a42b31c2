package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
)

// HTTPFetcher performs outbound requests on behalf of a guest.
// Implementations return the response body, or an error for statuses above 299.
type HTTPFetcher interface {
	Fetch(ctx context.Context, method string, url string, body []byte, headers http.Header) ([]byte, error)
}

// Cache stores byte values with an optional time to live.
type Cache interface {
	Set(key string, val []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
}

// Database executes named, prepared queries.
type Database interface {
	ExecQuery(ctx context.Context, queryType entities.QueryType, name string, vars []any) ([]byte, error)
}

// StaticFiles serves read-only files bundled with a module.
type StaticFiles interface {
	GetStatic(name string) ([]byte, error)
}

// GraphQLClient sends a query document to a GraphQL endpoint.
type GraphQLClient interface {
	Do(ctx context.Context, endpoint, query string) ([]byte, error)
}

// LogScope identifies the invocation a guest log line belongs to.
type LogScope struct {
	RequestID  string `json:"request_id,omitempty"`
	Identifier int32  `json:"ident"`
}

// LogSink receives log lines emitted by guests.
type LogSink interface {
	Log(level entities.LogLevel, msg string, scope LogScope)
}
