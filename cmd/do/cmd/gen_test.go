package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, mod time.Time) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestStaleTemplates(t *testing.T) {
	root := t.TempDir()
	old := time.Now().Add(-time.Hour)
	now := time.Now()

	// generated after the source
	writeFile(t, filepath.Join(root, "pages", "grid.templ"), old)
	writeFile(t, filepath.Join(root, "pages", "grid_templ.go"), now)

	// source edited after generation
	writeFile(t, filepath.Join(root, "pages", "form.templ"), now)
	writeFile(t, filepath.Join(root, "pages", "form_templ.go"), old)

	// never generated
	writeFile(t, filepath.Join(root, "components", "cell", "cell.templ"), old)

	// plain Go files are ignored
	writeFile(t, filepath.Join(root, "render.go"), now)

	stale, err := staleTemplates(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "pages", "form.templ"),
		filepath.Join(root, "components", "cell", "cell.templ"),
	}, stale)
}

func TestStaleTemplates_MissingRoot(t *testing.T) {
	_, err := staleTemplates(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
