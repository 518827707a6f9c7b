// Package testutil provides shared helpers for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden compares generated content against files under a testdata
// directory. Running the tests with UPDATE_GOLDEN=true rewrites the
// files instead of comparing.
type Golden struct {
	t      *testing.T
	dir    string
	update bool
}

// NewGolden creates a helper rooted at dir.
func NewGolden(t *testing.T, dir string) *Golden {
	t.Helper()
	return &Golden{
		t:      t,
		dir:    dir,
		update: os.Getenv("UPDATE_GOLDEN") == "true",
	}
}

// Assert compares actual with the named golden file, or rewrites the
// file in update mode.
func (g *Golden) Assert(name string, actual []byte) {
	g.t.Helper()

	path := filepath.Join(g.dir, name)

	if g.update {
		require.NoError(g.t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(g.t, os.WriteFile(path, actual, 0o644))
		g.t.Logf("updated golden file %s", path)
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(g.t, err, "missing golden file %s, run with UPDATE_GOLDEN=true", path)
	assert.Equal(g.t, string(want), string(actual), "mismatch against %s", name)
}

// AssertString is Assert for string content.
func (g *Golden) AssertString(name, actual string) {
	g.t.Helper()
	g.Assert(name, []byte(actual))
}

// AssertFile compares the file at actualPath with the named golden file.
func (g *Golden) AssertFile(actualPath, name string) {
	g.t.Helper()

	actual, err := os.ReadFile(actualPath)
	require.NoError(g.t, err)
	g.Assert(name, actual)
}
