package jsonfix

import (
	"errors"
	"fmt"

	"jsonfix/internal/diag"
	"jsonfix/internal/jsonv"
	"jsonfix/internal/observ"
	"jsonfix/internal/repair"
	"jsonfix/internal/source"
)

// Format repairs, parses, optionally sorts and re-renders text.
// The returned error, if any, is a *FormatError.
func Format(text string, cfg Config) (Result, error) {
	return FormatWithTimer(text, cfg, nil)
}

// FormatWithTimer is Format with phase durations recorded in timer.
// A nil timer records nothing.
func FormatWithTimer(text string, cfg Config, timer *observ.Timer) (Result, error) {
	cfg = cfg.Normalized()

	idx := timer.Begin("repair")
	rep, err := repair.Run(text, repair.Options{
		Comments:       cfg.RemoveComments,
		TrailingCommas: cfg.RemoveTrailingCommas,
		BareKeys:       cfg.AutoQuoteKeys,
	})
	timer.End(idx, fmt.Sprintf("%d changed", len(rep.Steps)))
	if err != nil {
		return Result{}, &FormatError{
			Message: err.Error(),
			Code:    diag.RepPatternFailed,
			Offset:  -1,
			Notes:   rep.Notes(),
			cause:   err,
		}
	}

	idx = timer.Begin("parse")
	v, err := jsonv.Parse(rep.Text)
	timer.End(idx, "")
	if err != nil {
		return Result{}, parseError(text, rep, err)
	}

	if cfg.SortKeys != SortNone {
		idx = timer.Begin("sort")
		v = jsonv.SortKeys(v, cfg.SortKeys.order())
		timer.End(idx, cfg.SortKeys.String())
	}

	idx = timer.Begin("serialize")
	out := jsonv.Encode(v, jsonv.EncodeOptions{Beautify: cfg.Beautify, Indent: cfg.IndentWidth})
	timer.End(idx, "")

	return Result{
		Formatted: out,
		Notes:     rep.Notes(),
		Repairs:   repairs(rep),
	}, nil
}

// parseError locates a syntax error in the caller's text by mapping the
// repaired-text offset back through the repair edits.
func parseError(input string, rep repair.Result, err error) *FormatError {
	var se *jsonv.SyntaxError
	if !errors.As(err, &se) {
		return &FormatError{Message: err.Error(), Offset: -1, Notes: rep.Notes()}
	}

	off := rep.MapToInput(se.Offset)
	if se.AtEOF {
		off = len(input)
	}
	off = min(max(off, 0), len(input))

	fe := &FormatError{
		Code:   se.Code,
		Offset: off,
		Notes:  rep.Notes(),
	}
	if se.Code == diag.SynUnexpectedEnd {
		fe.Message = se.Reason
	} else {
		fe.Message = fmt.Sprintf("%s in JSON at position %d", se.Reason, off)
	}
	pos := source.Locate([]byte(input), off)
	fe.Line, fe.Column = int(pos.Line), int(pos.Col)
	return fe
}

func repairs(rep repair.Result) []Repair {
	if len(rep.Steps) == 0 {
		return nil
	}
	out := make([]Repair, len(rep.Steps))
	for i, s := range rep.Steps {
		out[i] = Repair{Step: s.Name, Code: s.Code, Note: s.Note, Edits: len(s.Edits)}
	}
	return out
}
