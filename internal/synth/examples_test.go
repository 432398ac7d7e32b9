package synth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

var examplePackages = []string{
	"builder-gen/examples/basic",
	"builder-gen/examples/command",
	"builder-gen/examples/pointers",
}

// TestExamples_UpToDate regenerates the committed example builders, checks
// they are byte-for-byte what the generator produces now, and type-checks the
// packages with the fresh output overlaid.
func TestExamples_UpToDate(t *testing.T) {
	report, err := New(nil, Options{}).Packages(t.Context(), examplePackages, ModeGenerate)
	require.NoError(t, err)
	require.NoError(t, report.Err())

	files := report.Files()
	require.Len(t, files, 5)

	overlay := make(map[string][]byte)

	for _, f := range files {
		path := filepath.Join(f.Dir, f.Filename)

		committed, err := os.ReadFile(path)
		require.NoError(t, err, "missing committed builder %s", path)

		assert.Equal(t, string(committed), string(f.Content), "%s is stale; run go generate ./examples/...", path)

		overlay[path] = f.Content
	}

	pkgs, err := packages.Load(&packages.Config{
		Context: t.Context(),
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Overlay: overlay,
	}, examplePackages...)
	require.NoError(t, err)
	require.Len(t, pkgs, len(examplePackages))

	for _, p := range pkgs {
		assert.Empty(t, p.Errors, "%s: %s", p.PkgPath, spew.Sdump(p.Errors))
	}
}
