// Package config loads the development host's configuration.
//
// A config file is YAML. It is checked against the JSON Schema generated from
// Config, decoded over Default() and then validated field by field.
package config

import (
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
	"github.com/reglet-dev/runnable-sdk/infrastructure/httpclient"
	"github.com/reglet-dev/runnable-sdk/infrastructure/sqlite"
)

// Config is the development host configuration.
type Config struct {
	Module      string                  `json:"module,omitempty" yaml:"module"`
	Logger      LoggerConfig            `json:"logger" yaml:"logger"`
	Server      ServerConfig            `json:"server" yaml:"server"`
	Tracing     TracingConfig           `json:"tracing" yaml:"tracing"`
	Auth        AuthConfig              `json:"auth" yaml:"auth"`
	DB          DBConfig                `json:"db" yaml:"db"`
	File        FileConfig              `json:"file" yaml:"file"`
	HTTP        HTTPConfig              `json:"http" yaml:"http"`
	GraphQL     GraphQLConfig           `json:"graphql" yaml:"graphql"`
	Cache       CacheConfig             `json:"cache" yaml:"cache"`
	Request     hostfuncs.RequestConfig `json:"requestHandler" yaml:"requestHandler"`
	MaxReadSize uint32                  `json:"maxReadSize,omitempty" yaml:"maxReadSize" validate:"omitempty,min=1024"`
}

// LoggerConfig controls host and module logging.
type LoggerConfig struct {
	Level       string `json:"level" yaml:"level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Development bool   `json:"development" yaml:"development"`
}

// ServerConfig controls serve mode.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" validate:"required"`
	Path string `json:"path" yaml:"path" validate:"required,startswith=/"`
}

// TracingConfig controls the OTLP trace exporter.
type TracingConfig struct {
	Endpoint    string `json:"endpoint,omitempty" yaml:"endpoint" validate:"required_if=Enabled true"`
	ServiceName string `json:"serviceName,omitempty" yaml:"serviceName"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Insecure    bool   `json:"insecure" yaml:"insecure"`
}

// HTTPConfig controls fetch_url.
type HTTPConfig struct {
	Rules          httpclient.Rules `json:"rules" yaml:"rules"`
	MaxBodySize    int64            `json:"maxBodySize,omitempty" yaml:"maxBodySize" validate:"min=0"`
	TimeoutSeconds int              `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds" validate:"min=0"`
	Enabled        bool             `json:"enabled" yaml:"enabled"`
}

// GraphQLConfig controls graphql_query.
type GraphQLConfig struct {
	Rules   httpclient.Rules `json:"rules" yaml:"rules"`
	Enabled bool             `json:"enabled" yaml:"enabled"`
}

// AuthConfig maps hosts to the Authorization header sent to them.
type AuthConfig struct {
	Headers map[string]httpclient.AuthHeader `json:"headers,omitempty" yaml:"headers" validate:"dive"`
	Enabled bool                             `json:"enabled" yaml:"enabled"`
}

// CacheConfig controls cache_set and cache_get.
type CacheConfig struct {
	MaxKeys int  `json:"maxKeys,omitempty" yaml:"maxKeys" validate:"min=0"`
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// FileConfig controls get_static_file.
type FileConfig struct {
	Root     string   `json:"root,omitempty" yaml:"root" validate:"required_if=Enabled true"`
	Patterns []string `json:"patterns,omitempty" yaml:"patterns"`
	Enabled  bool     `json:"enabled" yaml:"enabled"`
}

// DBConfig controls db_exec.
type DBConfig struct {
	DSN     string         `json:"dsn,omitempty" yaml:"dsn" validate:"required_if=Enabled true"`
	Setup   []string       `json:"setup,omitempty" yaml:"setup"`
	Queries []sqlite.Query `json:"queries,omitempty" yaml:"queries" validate:"dive"`
	Enabled bool           `json:"enabled" yaml:"enabled"`
}

// Default returns the configuration used when no file is given: every
// capability that needs no setup is enabled with permissive rules.
func Default() Config {
	return Config{
		Logger:  LoggerConfig{Enabled: true, Level: "info"},
		Server:  ServerConfig{Addr: ":8080", Path: "/"},
		Tracing: TracingConfig{ServiceName: "runnable-host"},
		HTTP: HTTPConfig{
			Enabled:        true,
			Rules:          httpclient.DefaultRules(),
			TimeoutSeconds: 30,
			MaxBodySize:    httpclient.DefaultMaxBodySize,
		},
		GraphQL: GraphQLConfig{Enabled: true, Rules: httpclient.DefaultRules()},
		Auth:    AuthConfig{Enabled: true},
		Cache:   CacheConfig{Enabled: true, MaxKeys: 1024},
		Request: hostfuncs.DefaultRequestConfig(),
	}
}
