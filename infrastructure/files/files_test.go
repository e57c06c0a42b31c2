package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":            {Data: []byte("<h1>hi</h1>")},
		"templates/a/page.html": {Data: []byte("page")},
		"secret.env":            {Data: []byte("TOKEN=1")},
	}
}

func TestSource_GetStatic(t *testing.T) {
	s, err := New(testFS())
	require.NoError(t, err)

	got, err := s.GetStatic("index.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", string(got))

	got, err = s.GetStatic("/templates/a/page.html")
	require.NoError(t, err)
	assert.Equal(t, "page", string(got))

	_, err = s.GetStatic("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSource_RejectsTraversal(t *testing.T) {
	s, err := New(testFS())
	require.NoError(t, err)

	for _, name := range []string{"../etc/passwd", "templates/../../x", "", "/"} {
		_, err := s.GetStatic(name)
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}
}

func TestSource_Patterns(t *testing.T) {
	s, err := New(testFS(), "*.html", "templates/**")
	require.NoError(t, err)

	_, err = s.GetStatic("index.html")
	assert.NoError(t, err)
	_, err = s.GetStatic("templates/a/page.html")
	assert.NoError(t, err)
	_, err = s.GetStatic("secret.env")
	assert.ErrorIs(t, err, ErrFileNotAllowed)

	_, err = New(testFS(), "[")
	assert.Error(t, err)
}

func TestNewDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello"), 0o600))

	s, err := NewDir(dir)
	require.NoError(t, err)

	got, err := s.GetStatic("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	_, err = NewDir(filepath.Join(dir, "hello.txt"))
	assert.Error(t, err)
}
