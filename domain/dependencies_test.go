package domain_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/reglet-dev/runnable-sdk/"

// TestDomainImportsOnlyStdlib keeps the wire types and ports usable from both
// the guest build and the host build: domain packages may import the standard
// library and each other, nothing else.
func TestDomainImportsOnlyStdlib(t *testing.T) {
	fset := token.NewFileSet()

	for _, pkg := range []string{"entities", "ports"} {
		files, err := filepath.Glob(filepath.Join(pkg, "*.go"))
		require.NoError(t, err)
		require.NotEmpty(t, files, "domain/%s has no Go files", pkg)

		for _, file := range files {
			if strings.HasSuffix(file, "_test.go") {
				continue
			}
			checkFileImports(t, fset, file, pkg)
		}
	}
}

func checkFileImports(t *testing.T, fset *token.FileSet, filename, pkg string) {
	t.Helper()

	f, err := parser.ParseFile(fset, filename, nil, parser.ImportsOnly)
	require.NoError(t, err, "failed to parse %s", filename)

	for _, imp := range f.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		if strings.HasPrefix(importPath, modulePath) {
			assert.True(t, strings.HasPrefix(importPath, modulePath+"domain/"),
				"domain/%s (%s) imports non-domain package %s", pkg, filepath.Base(filename), importPath)
			continue
		}

		// standard library paths have no dot in their first element
		first := strings.SplitN(importPath, "/", 2)[0]
		assert.NotContains(t, first, ".",
			"domain/%s (%s) imports third-party package %s", pkg, filepath.Base(filename), importPath)
	}
}
