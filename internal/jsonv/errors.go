package jsonv

import (
	"fmt"

	"jsonfix/internal/diag"
)

// SyntaxError describes why text is not valid JSON.
// Offset is a byte offset into the parsed text; AtEOF is set when the
// parser ran out of input.
type SyntaxError struct {
	Code   diag.Code
	Reason string
	Offset int
	AtEOF  bool
}

func (e *SyntaxError) Error() string {
	if e.Code == diag.SynUnexpectedEnd {
		return e.Reason
	}
	return fmt.Sprintf("%s in JSON at position %d", e.Reason, e.Offset)
}

const msgUnexpectedEnd = "Unexpected end of JSON input"
