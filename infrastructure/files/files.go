// Package files is the static file backend behind get_static_file.
package files

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

var (
	ErrInvalidPath    = errors.New("invalid static file path")
	ErrFileNotAllowed = errors.New("static file not allowed")
)

// Source serves files from a root filesystem.
type Source struct {
	fsys     fs.FS
	patterns []string
}

// New creates a Source over fsys. When patterns are given, only paths matching
// one of them (doublestar syntax, e.g. "templates/**/*.html") are served.
func New(fsys fs.FS, patterns ...string) (*Source, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid file pattern %q", p)
		}
	}
	return &Source{fsys: fsys, patterns: patterns}, nil
}

// NewDir creates a Source rooted at dir on disk.
func NewDir(dir string, patterns ...string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to Stat static root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("static root %q is not a directory", dir)
	}
	return New(os.DirFS(dir), patterns...)
}

// GetStatic returns the contents of name, relative to the root.
// A leading slash is ignored; paths leaving the root are rejected.
func (s *Source) GetStatic(name string) ([]byte, error) {
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" || !fs.ValidPath(clean) || strings.Contains(name, "..") {
		return nil, errors.Wrapf(ErrInvalidPath, "%q", name)
	}

	if len(s.patterns) > 0 && !s.allowed(clean) {
		return nil, errors.Wrapf(ErrFileNotAllowed, "%q", name)
	}

	data, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		return nil, errors.Wrap(err, "failed to ReadFile")
	}
	return data, nil
}

func (s *Source) allowed(name string) bool {
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
