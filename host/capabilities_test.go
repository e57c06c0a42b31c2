package host_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/runnable-sdk/config"
	"github.com/reglet-dev/runnable-sdk/host"
)

func TestNewBackends_Default(t *testing.T) {
	b, err := host.NewBackends(context.Background(), config.Default(), nil)
	require.NoError(t, err)
	defer b.Close() //nolint:errcheck

	assert.NotNil(t, b.Caps.HTTP)
	assert.NotNil(t, b.Caps.GraphQL)
	assert.NotNil(t, b.Caps.Cache)
	assert.NotNil(t, b.Caps.Logs)
	assert.Nil(t, b.Caps.DB)
	assert.Nil(t, b.Caps.Files)
	assert.True(t, b.Caps.Request.Enabled)
}

func TestNewBackends_All(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Enabled = true
	cfg.DB.DSN = ":memory:"
	cfg.File.Enabled = true
	cfg.File.Root = t.TempDir()
	cfg.HTTP.Enabled = false

	b, err := host.NewBackends(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Nil(t, b.Caps.HTTP)
	assert.NotNil(t, b.Caps.DB)
	assert.NotNil(t, b.Caps.Files)
	assert.NoError(t, b.Close())
}

func TestNewBackends_BadPattern(t *testing.T) {
	cfg := config.Default()
	cfg.File.Enabled = true
	cfg.File.Root = t.TempDir()
	cfg.File.Patterns = []string{"[unterminated"}

	_, err := host.NewBackends(context.Background(), cfg, nil)
	assert.Error(t, err)
}
