package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonfix"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := FindConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	wantAbs, err := filepath.Abs(want)
	require.NoError(t, err)
	assert.Equal(t, wantAbs, got)
}

func TestDiscoverWithoutConfig(t *testing.T) {
	// t.TempDir() lives under the system temp dir, which has no config file
	cfg, ok, err := Discover(t.TempDir())
	require.NoError(t, err)
	if ok {
		t.Skip("a .jsonfix.toml exists above the temp dir")
	}
	assert.Nil(t, cfg)
}

func TestApplyOnlyDefinedKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[format]
indent = 4
sort_keys = "desc"

[repair]
comments = true
quote_keys = false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	got := cfg.Apply(jsonfix.DefaultConfig())
	assert.True(t, got.Beautify, "beautify is not set in the file")
	assert.Equal(t, 4, got.IndentWidth)
	assert.Equal(t, jsonfix.SortDescending, got.SortKeys)
	assert.True(t, got.RemoveComments)
	assert.False(t, got.AutoQuoteKeys)
	assert.False(t, got.RemoveTrailingCommas)

	def := []string{".json"}
	assert.Equal(t, def, cfg.Extensions(def))
	assert.Empty(t, cfg.Unknown)
}

func TestLoadConfigFalseOverridesDefault(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[format]\nbeautify = false\n[files]\nextensions = [\".json\", \".json5\"]\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Apply(jsonfix.DefaultConfig()).Beautify)
	assert.Equal(t, []string{".json", ".json5"}, cfg.Extensions(nil))
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"bad sort":      "[format]\nsort_keys = \"sideways\"\n",
		"bad extension": "[files]\nextensions = [\"json\"]\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, t.TempDir(), body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := LoadConfig(writeConfig(t, t.TempDir(), "[format\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestLoadConfigClampsIndent(t *testing.T) {
	for body, want := range map[string]int{
		"[format]\nindent = 12\n": jsonfix.MaxIndent,
		"[format]\nindent = -3\n": 0,
	} {
		cfg, err := LoadConfig(writeConfig(t, t.TempDir(), body))
		require.NoError(t, err, body)
		require.Len(t, cfg.Warnings, 1, body)
		assert.Contains(t, cfg.Warnings[0], "will be clamped")
		got := cfg.Apply(jsonfix.DefaultConfig()).Normalized()
		assert.Equal(t, want, got.IndentWidth, body)
	}

	cfg, err := LoadConfig(writeConfig(t, t.TempDir(), "[format]\nindent = 8\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadConfigReportsUnknownKeys(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, t.TempDir(), "[format]\nwidth = 80\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"format.width"}, cfg.Unknown)
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	assert.Equal(t, jsonfix.DefaultConfig(), cfg.Apply(jsonfix.DefaultConfig()))
	assert.Equal(t, []string{".json"}, cfg.Extensions([]string{".json"}))
}
