// Package jsonfix repairs and formats almost-JSON text.
//
// Format runs a fixed pipeline: optional textual repairs (comment stripping,
// trailing-comma stripping, bare-key quoting), a strict parse, optional key
// sorting and serialization. A call either returns the formatted text with
// the notes of the repairs that changed something, or a *FormatError with a
// message and, when known, the 1-based line and column in the input.
//
// The repairs are regular-expression rewrites and do not understand string
// literals: comment markers, trailing-comma patterns and `,word:` sequences
// inside string values are rewritten too.
//
// Format holds no state between calls and is safe for concurrent use.
package jsonfix
