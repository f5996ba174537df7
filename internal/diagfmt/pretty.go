package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsonfix/internal/diag"
	"jsonfix/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	gutter, caret, code   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		code:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <sev> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeDiagnostic(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var b strings.Builder
	file := fs.Get(d.Primary.File)

	if file != nil {
		pos := file.Position(d.Primary.Start)
		fmt.Fprintf(&b, "%s:%d:%d: ", file.FormatPath(opts.PathMode.name(), fs.BaseDir()), pos.Line, pos.Col)
	}
	fmt.Fprintf(&b, "%s %s: %s\n",
		pal.severity(d.Severity).Sprint(severityLabel(d.Severity)),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if file != nil && len(file.Content) > 0 {
		writeExcerpt(&b, file, d.Primary, opts.Context, pal)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "  %s %s\n", pal.note.Sprint("= note:"), n.Msg)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeExcerpt prints the primary line (plus context lines before it) and a
// caret line aligned by display width.
func writeExcerpt(b *strings.Builder, file *source.File, span source.Span, context int, pal palette) {
	start := file.Position(span.Start)
	end := file.Position(span.End)

	first := max(int(start.Line)-max(context, 0), 1)
	width := len(strconv.Itoa(int(start.Line)))
	blank := strings.Repeat(" ", width)

	fmt.Fprintf(b, "%s %s\n", blank, pal.gutter.Sprint("|"))
	for ln := first; ln <= int(start.Line); ln++ {
		text := strings.TrimRight(file.GetLine(uint32(ln)), "\r")
		fmt.Fprintf(b, "%s %s %s\n", pal.gutter.Sprintf("%*d", width, ln), pal.gutter.Sprint("|"), text)
	}

	line := []rune(strings.TrimRight(file.GetLine(start.Line), "\r"))
	col := min(int(start.Col)-1, len(line))
	endCol := col + 1
	if end.Line == start.Line && int(end.Col)-1 > col {
		endCol = min(int(end.Col)-1, len(line))
	}

	marker := "^"
	if endCol > col+1 {
		if w := displayWidth(line[col:endCol]); w > 1 {
			marker += strings.Repeat("~", w-1)
		}
	}
	fmt.Fprintf(b, "%s %s %s%s\n", blank, pal.gutter.Sprint("|"), padding(line[:col]), pal.caret.Sprint(marker))
}

// padding повторяет отступ строки: табы сохраняются, остальное заменяется пробелами по ширине.
func padding(prefix []rune) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func displayWidth(rs []rune) int {
	return runewidth.StringWidth(string(rs))
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// Short writes one line per diagnostic, see diag.FormatShortDiagnostics.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
