package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"jsonfix/internal/diag"
	"jsonfix/internal/source"
)

func newBag(t *testing.T, content string, ds ...diag.Diagnostic) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/work")
	id := fs.AddVirtual("/work/conf/doc.json", []byte(content))
	bag := diag.NewBag(10)
	for _, d := range ds {
		d.Primary.File = id
		for i := range d.Notes {
			d.Notes[i].Span.File = id
		}
		bag.Add(d)
	}
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := newBag(t, `{"a": }`,
		diag.NewError(diag.SynUnexpectedToken, source.Span{Start: 6, End: 7}, `Unexpected token "}" (0x7D) in JSON at position 6`).
			WithNote(source.Span{}, "bare keys quoted"),
	)

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeRelative, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "conf/doc.json:1:7: error SYN2001: Unexpected token \"}\" (0x7D) in JSON at position 6\n" +
		"  |\n" +
		"1 | {\"a\": }\n" +
		"  |       ^\n" +
		"  = note: bare keys quoted\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	bag, fs := newBag(t, `["中文", x]`,
		diag.NewError(diag.SynUnexpectedToken, source.Span{Start: 11, End: 12}, "x"),
	)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "doc.json:1:8: error") {
		t.Fatalf("header = %q", lines[0])
	}
	if want := "  | " + strings.Repeat(" ", 9) + "^"; lines[3] != want {
		t.Fatalf("caret line = %q, want %q", lines[3], want)
	}
}

func TestPrettyUnderlinesSpanAndContext(t *testing.T) {
	content := "{\n  \"a\": tru\n}"
	bag, fs := newBag(t, content,
		diag.NewError(diag.SynUnexpectedToken, source.Span{Start: 9, End: 12}, "bad literal"),
	)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "doc.json:2:8: error SYN2001: bad literal\n" +
		"  |\n" +
		"1 | {\n" +
		"2 |   \"a\": tru\n" +
		"  |        ^~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := newBag(t, `[`,
		diag.NewError(diag.SynUnexpectedEnd, source.Span{Start: 1, End: 1}, "Unexpected end of JSON input"),
	)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI sequences, got %q", buf.String())
	}
}

func TestShort(t *testing.T) {
	bag, fs := newBag(t, "[\n1,\n",
		diag.NewError(diag.SynUnexpectedEnd, source.Span{Start: 5, End: 5}, "Unexpected end of JSON input"),
	)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	if want := "error SYN2002 conf/doc.json:3:1 Unexpected end of JSON input\n"; buf.String() != want {
		t.Fatalf("Short = %q, want %q", buf.String(), want)
	}
}
