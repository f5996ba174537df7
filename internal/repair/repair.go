package repair

import (
	"jsonfix/internal/diag"
)

// Options selects which passes run. Passes always run in the order
// comments, trailing commas, bare keys.
type Options struct {
	Comments       bool
	TrailingCommas bool
	BareKeys       bool
}

// Step describes one pass that changed the text.
type Step struct {
	Name  string
	Code  diag.Code
	Note  string
	Edits Layer
}

// Result is the outcome of Run. Steps lists only passes that changed the
// text, in application order.
type Result struct {
	Text  string
	Steps []Step
}

type pass struct {
	name    string
	code    diag.Code
	note    string
	enabled func(Options) bool
	run     func(string) (string, Layer, error)
}

var pipeline = [...]pass{
	{"comments", diag.RepCommentsRemoved, "comments removed", func(o Options) bool { return o.Comments }, StripComments},
	{"trailing-commas", diag.RepTrailingCommas, "trailing commas removed", func(o Options) bool { return o.TrailingCommas }, StripTrailingCommas},
	{"bare-keys", diag.RepBareKeysQuoted, "bare keys quoted", func(o Options) bool { return o.BareKeys }, QuoteBareKeys},
}

// Run applies the enabled passes to text. The input string is not modified.
// On error the returned Result holds the text and steps produced so far.
func Run(text string, opts Options) (Result, error) {
	res := Result{Text: text}
	for _, p := range pipeline {
		if !p.enabled(opts) {
			continue
		}
		out, layer, err := p.run(res.Text)
		if err != nil {
			return res, &PassError{Pass: p.name, Err: err}
		}
		if out == res.Text {
			continue
		}
		res.Steps = append(res.Steps, Step{Name: p.name, Code: p.code, Note: p.note, Edits: layer})
		res.Text = out
	}
	return res, nil
}

// Notes returns the note of each step in application order.
func (r Result) Notes() []string {
	if len(r.Steps) == 0 {
		return nil
	}
	notes := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		notes[i] = s.Note
	}
	return notes
}

// Changed reports whether any pass altered the text.
func (r Result) Changed() bool {
	return len(r.Steps) > 0
}

// MapToInput maps a byte offset in r.Text back to the text passed to Run.
func (r Result) MapToInput(off int) int {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		off = r.Steps[i].Edits.MapBack(off)
	}
	return off
}

// PassError reports a pattern engine failure inside a pass.
type PassError struct {
	Pass string
	Err  error
}

func (e *PassError) Error() string {
	return "repair " + e.Pass + ": " + e.Err.Error()
}

func (e *PassError) Unwrap() error {
	return e.Err
}
