package jsonfix

import "jsonfix/internal/diag"

// Repair summarizes one repair step that changed the text.
type Repair struct {
	Step  string
	Code  diag.Code
	Note  string
	Edits int
}

// Result is a successful Format outcome.
type Result struct {
	Formatted string
	// Notes has one entry per repair step that changed the text, in
	// application order. Empty when the input was used as is.
	Notes   []string
	Repairs []Repair
}
