package driver

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"jsonfix"
	"jsonfix/internal/diag"
	"jsonfix/internal/source"
)

func reportLoadError(bag *diag.Bag, id source.FileID, err error) {
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOReadFail, source.Span{File: id},
		fmt.Sprintf("failed to read input: %v", err)).Emit()
}

// reportFormatError turns an engine failure into an error diagnostic with
// one note per repair applied before the failure.
func reportFormatError(bag *diag.Bag, file *source.File, err error) {
	r := diag.BagReporter{Bag: bag}
	whole := source.Span{File: file.ID}

	var fe *jsonfix.FormatError
	if !errors.As(err, &fe) {
		bag.Add(diag.NewError(diag.SynInfo, whole, err.Error()))
		return
	}

	span := whole
	if fe.HasPosition() {
		span = offsetSpan(file, fe.Offset)
	}
	code := fe.Code
	if code == 0 {
		code = diag.SynInfo
	}
	b := diag.ReportError(r, code, span, fe.Message)
	for _, n := range fe.Notes {
		b.WithNote(whole, n)
	}
	b.Emit()
}

// reportRepairs records applied repairs as info diagnostics.
func reportRepairs(bag *diag.Bag, id source.FileID, repairs []jsonfix.Repair) {
	r := diag.BagReporter{Bag: bag}
	for _, rp := range repairs {
		msg := fmt.Sprintf("%s (%d edits)", rp.Note, rp.Edits)
		if rp.Edits == 1 {
			msg = fmt.Sprintf("%s (1 edit)", rp.Note)
		}
		diag.ReportInfo(r, rp.Code, source.Span{File: id}, msg).Emit()
	}
}

// offsetSpan covers the character at off, or is empty at the end of input.
func offsetSpan(file *source.File, off int) source.Span {
	off = min(max(off, 0), len(file.Content))
	end := off
	if off < len(file.Content) {
		_, size := utf8.DecodeRune(file.Content[off:])
		end = off + size
	}
	return source.Span{File: file.ID, Start: toU32(off), End: toU32(end)}
}

func toU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
