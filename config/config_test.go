package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Full(t *testing.T) {
	doc := `
module: ./hello.wasm
logger:
  level: debug
http:
  enabled: true
  timeoutSeconds: 5
  rules:
    allowedDomains: ["*.example.com"]
    allowHTTP: false
    allowIPs: false
    allowPrivate: false
auth:
  enabled: true
  headers:
    api.example.com:
      headerType: Bearer
      value: $TOKEN
cache:
  enabled: false
db:
  enabled: true
  dsn: ":memory:"
  setup:
    - CREATE TABLE users (name TEXT)
  queries:
    - name: InsertUser
      type: insert
      varCount: 1
      query: INSERT INTO users (name) VALUES (?)
requestHandler:
  enabled: true
  allowGetField: true
  allowSetField: false
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "./hello.wasm", cfg.Module)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.Enabled, "defaults are kept for unset fields")
	assert.Equal(t, 5, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, []string{"*.example.com"}, cfg.HTTP.Rules.AllowedDomains)
	assert.False(t, cfg.HTTP.Rules.AllowHTTP)
	assert.Equal(t, "Bearer", cfg.Auth.Headers["api.example.com"].HeaderType)
	assert.False(t, cfg.Cache.Enabled)
	require.Len(t, cfg.DB.Queries, 1)
	assert.Equal(t, "insert", cfg.DB.Queries[0].Type)
	assert.False(t, cfg.Request.AllowSetField)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "modul: x.wasm\n",
		"wrong type":   "cache:\n  maxKeys: lots\n",
		"bad level":    "logger:\n  level: loud\n",
		"invalid yaml": "logger: [\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := map[string]string{
		"db without dsn":     "db:\n  enabled: true\n",
		"bad query type":     "db:\n  enabled: true\n  dsn: x\n  queries:\n    - name: Q\n      type: upsert\n      query: SELECT 1\n",
		"files without root": "file:\n  enabled: true\n",
		"bad path":           "server:\n  path: api\n",
		"bad port":           "http:\n  rules:\n    allowedPorts: [70000]\n",
		"tracing endpoint":   "tracing:\n  enabled: true\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runnable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module: app.wasm\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app.wasm", cfg.Module)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	raw, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "runnable-host configuration", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"module", "http", "db", "cache", "requestHandler"} {
		assert.Contains(t, props, key)
	}
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}
