package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

// run executes the CLI inside a fresh temporary working directory (so no
// stray config file is discovered) unless dir is set.
func run(t *testing.T, dir, stdin string, args ...string) runResult {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), &app{stdin: strings.NewReader(stdin)}, args, &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFmtStdin(t *testing.T) {
	res := run(t, "", "{b: 1, a: [1, 2,],}", "fmt", "--trailing-commas", "--sort", "asc")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": 1\n}\n", res.stdout)
}

func TestFmtStdinDash(t *testing.T) {
	res := run(t, "", `{"a": [1, 2]}`, "fmt", "--minify", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\"a\":[1,2]}\n", res.stdout)
}

func TestFmtStdinError(t *testing.T) {
	res := run(t, "", `{"a": }`, "fmt", "--color", "off")
	require.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "<stdin>:1:7: error SYN2001: Unexpected token \"}\" (0x7D) in JSON at position 6\n")
	assert.Contains(t, res.stderr, "1 | {\"a\": }\n")
	assert.Contains(t, res.stderr, "fmt: failed to format 1 of 1 inputs\n")
}

func TestFmtRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	ugly := writeFile(t, dir, "data/ugly.json", `{"a":[1,2]}`)
	good := writeFile(t, dir, "data/good.json", "{}\n")
	skipped := writeFile(t, dir, "data/notes.txt", "{a:1}")

	res := run(t, dir, "", "fmt", "data", "--ui", "off")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "reformatted "+filepath.Join("data", "ugly.json")+"\n", res.stdout)

	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", readFile(t, ugly))
	assert.Equal(t, "{}\n", readFile(t, good))
	assert.Equal(t, "{a:1}", readFile(t, skipped))
}

func TestFmtCheck(t *testing.T) {
	dir := t.TempDir()
	ugly := writeFile(t, dir, "ugly.json", `[1]`)
	writeFile(t, dir, "good.json", "[\n  1\n]\n")

	res := run(t, dir, "", "fmt", "--check", "good.json", "ugly.json")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "ugly.json\n", res.stdout)
	assert.Contains(t, res.stderr, "fmt: 1 of 2 inputs need formatting")
	assert.Equal(t, "[1]", readFile(t, ugly), "--check never writes")

	res = run(t, dir, "", "fmt", "--check", "good.json")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
}

func TestFmtDiff(t *testing.T) {
	dir := t.TempDir()
	ugly := writeFile(t, dir, "ugly.json", "{\"a\":1}\n")

	res := run(t, dir, "", "fmt", "--diff", "ugly.json")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "--- ugly.json\n+++ ugly.json (formatted)\n")
	assert.Contains(t, res.stdout, "-{\"a\":1}\n")
	assert.Contains(t, res.stdout, "+  \"a\": 1\n")
	assert.Equal(t, "{\"a\":1}\n", readFile(t, ugly))
}

func TestFmtStdoutLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	ugly := writeFile(t, dir, "ugly.json", `{"a":1}`)

	res := run(t, dir, "", "fmt", "--stdout", "--indent", "4", "ugly.json")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\n    \"a\": 1\n}\n", res.stdout)
	assert.Equal(t, `{"a":1}`, readFile(t, ugly))
}

func TestFmtJSONOutput(t *testing.T) {
	res := run(t, "", "{a: 1}", "fmt", "--format", "json", "--color", "off")
	require.Equal(t, 0, res.code, res.stderr)
	require.True(t, gjson.Valid(res.stdout), res.stdout)

	assert.Equal(t, "<stdin>", gjson.Get(res.stdout, "files.0.path").String())
	assert.True(t, gjson.Get(res.stdout, "files.0.changed").Bool())
	assert.Equal(t, "bare keys quoted", gjson.Get(res.stdout, "files.0.repairs.0").String())
	assert.Equal(t, "{\n  \"a\": 1\n}\n", gjson.Get(res.stdout, "files.0.formatted").String())
	assert.Equal(t, int64(0), gjson.Get(res.stdout, "failed").Int())
}

func TestFmtJSONOutputError(t *testing.T) {
	res := run(t, "", "{\n  \"a\": tru\n}", "fmt", "--format", "json")
	require.Equal(t, 1, res.code)
	errJSON := gjson.Get(res.stdout, "files.0.error")
	require.True(t, errJSON.Exists(), res.stdout)
	assert.Equal(t, "SYN2001", errJSON.Get("code").String())
	assert.Equal(t, int64(2), errJSON.Get("line").Int())
	assert.Equal(t, int64(1), gjson.Get(res.stdout, "failed").Int())
}

func TestFmtProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jsonfix.toml", "[format]\nindent = 4\nsort_keys = \"desc\"\n\n[repair]\ncomments = true\n")
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	input := "// header\n{a: 1, b: 2}"
	res := run(t, sub, input, "fmt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\n    \"b\": 2,\n    \"a\": 1\n}\n", res.stdout)

	res = run(t, sub, input, "fmt", "--indent", "1", "--sort", "none")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\n \"a\": 1,\n \"b\": 2\n}\n", res.stdout, "explicit flags win over the file")

	res = run(t, sub, input, "fmt", "--comments=false")
	assert.Equal(t, 1, res.code, "flag can switch a file setting off")
}

func TestFmtExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "custom.toml", "[format]\nbeautify = false\n")

	res := run(t, "", `{"a": [1]}`, "--config", cfg, "fmt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\"a\":[1]}\n", res.stdout)

	bad := writeFile(t, dir, "bad.toml", "[format]\nsort_keys = \"sideways\"\n")
	res = run(t, "", `{}`, "--config", bad, "fmt")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "jsonfix: config:")
	assert.Contains(t, res.stderr, "sort_keys")
}

func TestFmtConfigIndentIsClamped(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "wide.toml", "[format]\nindent = 12\n")

	res := run(t, "", `{"a": 1}`, "--config", cfg, "fmt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\n        \"a\": 1\n}\n", res.stdout)
	assert.Contains(t, res.stderr, "[format].indent 12 is outside 0..8 and will be clamped")
}

func TestFmtExtensionsFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", "[1]")
	writeFile(t, dir, "b.json5", "[2]")

	res := run(t, dir, "", "fmt", "--check", "--ext", "json5", ".")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "b.json5\n", res.stdout)
}

func TestFmtFlagErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"fmt", "--sort", "sideways"}, "unknown sort order"},
		{[]string{"fmt", "--format", "yaml"}, "unsupported output format"},
		{[]string{"fmt", "--stdout", "--check"}, "--stdout cannot be used with --check"},
		{[]string{"fmt", "--diff", "--format", "json"}, "--diff is only supported with text output"},
		{[]string{"fmt", "--ui", "maybe"}, "invalid --ui value"},
		{[]string{"--color", "pink", "fmt"}, "invalid --color value"},
		{[]string{"--log-level", "loud", "fmt"}, "loud"},
		{[]string{"fmt", "missing.json"}, "missing.json"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res := run(t, "", "{}", tt.args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestTimingsAndProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	res := run(t, dir, "[1]", "--timings", "--cpuprofile", cpu, "--memprofile", mem, "fmt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "timings:\n")
	assert.Contains(t, res.stderr, "  serialize")
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}
