package jsonfix

import (
	"errors"

	"jsonfix/internal/diag"
)

// ErrInvalidJSON is matched by errors.Is for every parse failure.
var ErrInvalidJSON = errors.New("invalid JSON")

// FormatError describes a failed Format call.
type FormatError struct {
	// Message is human readable, e.g.
	// `Unexpected token "}" (0x7D) in JSON at position 6`.
	Message string
	Code    diag.Code
	// Offset is the byte offset in the input, or -1 when unknown.
	Offset int
	// Line and Column are 1-based; zero when the error has no position.
	// Column counts Unicode code points.
	Line   int
	Column int
	// Notes lists the repairs applied before the failure.
	Notes []string

	cause error
}

func (e *FormatError) Error() string {
	return e.Message
}

// HasPosition reports whether Line and Column are set.
func (e *FormatError) HasPosition() bool {
	return e.Line > 0 && e.Column > 0
}

func (e *FormatError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return ErrInvalidJSON
}
