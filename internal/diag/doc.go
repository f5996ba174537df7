// Package diag defines the diagnostic model shared by the repair, parse and
// driver layers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as SYN2001 or REP1002.
//   - Message – human oriented text; for syntax errors it matches the message
//     carried by jsonfix.FormatError.
//   - Primary span – byte range in the original document.
//   - Notes – optional secondary spans/messages. Repair steps that ran before
//     parsing are attached as notes to the syntax error they preceded.
//
// # Emitting diagnostics
//
// Producers use a Reporter so emission is decoupled from storage. The
// ReportBuilder helpers (ReportError/ReportInfo) allow chaining WithNote before
// Emit. BagReporter collects into a Bag, which supports sorting,
// deduplication and filtering.
//
// Package diag does not perform IO. Rendering lives in internal/diagfmt.
package diag
