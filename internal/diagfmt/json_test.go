package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"jsonfix/internal/diag"
	"jsonfix/internal/source"
)

func TestJSONBasic(t *testing.T) {
	bag, fs := newBag(t, "{\n  \"a\": <x>\n}",
		diag.NewError(diag.SynUnexpectedToken, source.Span{Start: 9, End: 10}, `Unexpected token "<" (0x3C) in JSON at position 9`).
			WithNote(source.Span{Start: 0, End: 1}, "bare keys quoted"),
	)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeRelative}))
	out := buf.String()
	require.True(t, gjson.Valid(out), out)

	assert.Equal(t, int64(1), gjson.Get(out, "count").Int())
	assert.Equal(t, "error", gjson.Get(out, "diagnostics.0.severity").String())
	assert.Equal(t, "SYN2001", gjson.Get(out, "diagnostics.0.code").String())
	assert.Equal(t, "Unexpected token", gjson.Get(out, "diagnostics.0.title").String())
	assert.Equal(t, `Unexpected token "<" (0x3C) in JSON at position 9`, gjson.Get(out, "diagnostics.0.message").String())
	assert.Equal(t, "conf/doc.json", gjson.Get(out, "diagnostics.0.location.file").String())
	assert.Equal(t, int64(2), gjson.Get(out, "diagnostics.0.location.start_line").Int())
	assert.Equal(t, int64(8), gjson.Get(out, "diagnostics.0.location.start_col").Int())
	assert.Equal(t, "bare keys quoted", gjson.Get(out, "diagnostics.0.notes.0.message").String())
	assert.Contains(t, out, `"<"`, "HTML characters stay unescaped")
}

func TestJSONWithoutPositionsAndMax(t *testing.T) {
	bag, fs := newBag(t, "[1,2",
		diag.NewError(diag.SynUnexpectedEnd, source.Span{Start: 4, End: 4}, "Unexpected end of JSON input"),
		diag.New(diag.SevInfo, diag.RepCommentsRemoved, source.Span{}, "comments removed"),
	)
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{Max: 1}))
	out := buf.String()

	assert.Equal(t, int64(1), gjson.Get(out, "count").Int())
	assert.False(t, gjson.Get(out, "diagnostics.0.location.start_line").Exists())
	assert.False(t, gjson.Get(out, "diagnostics.0.notes").Exists())
	assert.Equal(t, int64(4), gjson.Get(out, "diagnostics.0.location.start_byte").Int())
}

func TestJSONColor(t *testing.T) {
	bag, fs := newBag(t, "[", diag.NewError(diag.SynUnexpectedEnd, source.Span{Start: 1, End: 1}, "end"))
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{Color: true}))
	assert.True(t, strings.Contains(buf.String(), "\x1b["))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]any{"path": "<stdin>", "changed": true}, false))
	assert.Equal(t, "<stdin>", gjson.Get(buf.String(), "path").String())
	assert.True(t, gjson.Get(buf.String(), "changed").Bool())
}
