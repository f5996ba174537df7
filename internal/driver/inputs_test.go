package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestCollectInputsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.jsonc":           "{}",
		"a.json":            "{}",
		"notes.txt":         "x",
		"sub/e.JSON":        "{}",
		".git/d.json":       "{}",
		"sub/.cache/f.json": "{}",
	})

	got, err := CollectInputs([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.jsonc"),
		filepath.Join(dir, "sub", "e.JSON"),
	}, got)
}

func TestCollectInputsCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.json": "{}", "b.json5": "{}"})

	got, err := CollectInputs([]string{dir}, []string{".json5"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.json5")}, got)
}

func TestCollectInputsKeepsOrderAndDropsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x.json": "{}", "y.txt": "{}"})
	x := filepath.Join(dir, "x.json")
	y := filepath.Join(dir, "y.txt")

	got, err := CollectInputs([]string{y, "-", x, dir, "-"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{y, StdinArg, x}, got, "explicit files are kept regardless of extension")
}

func TestCollectInputsDefaultsToStdin(t *testing.T) {
	got, err := CollectInputs(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{StdinArg}, got)
}

func TestCollectInputsErrors(t *testing.T) {
	_, err := CollectInputs([]string{t.TempDir()}, nil)
	require.ErrorIs(t, err, ErrNoInputs)

	_, err = CollectInputs([]string{filepath.Join(t.TempDir(), "missing.json")}, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}
