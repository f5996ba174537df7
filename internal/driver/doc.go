// Package driver runs the formatting engine over a batch of inputs.
//
// Inputs are files, directories (walked for matching extensions) or stdin.
// Every input is loaded into a shared source.FileSet first, then formatted
// in parallel; results keep input order. Engine failures do not abort the
// batch: they are recorded per file as diagnostics.
package driver
