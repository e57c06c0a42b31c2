package file_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/runnable-sdk/file"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
	"github.com/reglet-dev/runnable-sdk/infrastructure/files"
	"github.com/reglet-dev/runnable-sdk/runnabletest"
)

func TestGetStatic(t *testing.T) {
	src, err := files.New(fstest.MapFS{
		"templates/index.html": {Data: []byte("<h1>hi</h1>")},
		"secrets/key":          {Data: []byte("s3cret")},
	}, "templates/**")
	require.NoError(t, err)

	h, err := runnabletest.New(hostfuncs.Capabilities{Files: src})
	require.NoError(t, err)
	ctx, done := h.Context(context.Background(), nil)
	defer done()

	data, ok := file.GetStatic(ctx, "templates/index.html")
	assert.True(t, ok)
	assert.Equal(t, "<h1>hi</h1>", string(data))

	for _, name := range []string{"secrets/key", "templates/missing.html", "../etc/passwd", ""} {
		data, ok = file.GetStatic(ctx, name)
		assert.False(t, ok, name)
		assert.Nil(t, data, name)
	}
}

func TestGetStatic_Disabled(t *testing.T) {
	h, err := runnabletest.New(hostfuncs.Capabilities{})
	require.NoError(t, err)
	ctx, done := h.Context(context.Background(), nil)
	defer done()

	_, ok := file.GetStatic(ctx, "anything")
	assert.False(t, ok)

	_, ok = file.GetStatic(context.Background(), "anything")
	assert.False(t, ok)
}
