package hostfuncs

import (
	"github.com/reglet-dev/runnable-sdk/domain/ports"
)

// RequestConfig controls access to the request and response imports.
type RequestConfig struct {
	Enabled       bool `json:"enabled" yaml:"enabled"`
	AllowGetField bool `json:"allowGetField" yaml:"allowGetField"`
	AllowSetField bool `json:"allowSetField" yaml:"allowSetField"`
}

// DefaultRequestConfig allows reading and writing request fields.
func DefaultRequestConfig() RequestConfig {
	return RequestConfig{Enabled: true, AllowGetField: true, AllowSetField: true}
}

// Capabilities are the backends behind the imports.
// A nil backend disables its imports: calls report ErrCapabilityDisabled.
type Capabilities struct {
	HTTP    ports.HTTPFetcher
	Cache   ports.Cache
	DB      ports.Database
	Files   ports.StaticFiles
	GraphQL ports.GraphQLClient
	Logs    ports.LogSink
	Request RequestConfig
}
