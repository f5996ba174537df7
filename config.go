package jsonfix

import (
	"errors"
	"fmt"
	"strings"

	"jsonfix/internal/jsonv"
)

// SortOrder selects how object keys are reordered.
type SortOrder uint8

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

func (s SortOrder) String() string {
	switch s {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	}
	return "none"
}

func (s SortOrder) order() jsonv.Order {
	switch s {
	case SortAscending:
		return jsonv.Ascending
	case SortDescending:
		return jsonv.Descending
	}
	return jsonv.Unsorted
}

// ErrUnknownSortOrder is returned by ParseSortOrder.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// ParseSortOrder maps "none", "asc" and "desc" (also "ascending",
// "descending" and the empty string) to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return SortNone, fmt.Errorf("%w: %q (want none, asc or desc)", ErrUnknownSortOrder, s)
}

const (
	// DefaultIndent is the indentation width used by DefaultConfig.
	DefaultIndent = 2
	// MaxIndent is the largest accepted indentation width.
	MaxIndent = 8
)

// Config selects the repairs and the output layout.
// The zero value disables every repair and produces minified output;
// use DefaultConfig for the documented defaults.
type Config struct {
	Beautify bool
	// IndentWidth is clamped to 0..MaxIndent. Inert unless Beautify is set.
	IndentWidth          int
	AutoQuoteKeys        bool
	RemoveComments       bool
	RemoveTrailingCommas bool
	SortKeys             SortOrder
}

// DefaultConfig returns beautified output with two-space indentation and
// bare-key quoting enabled.
func DefaultConfig() Config {
	return Config{
		Beautify:      true,
		IndentWidth:   DefaultIndent,
		AutoQuoteKeys: true,
	}
}

// Normalized returns c with IndentWidth clamped and an unknown SortKeys
// value replaced by SortNone.
func (c Config) Normalized() Config {
	c.IndentWidth = min(max(c.IndentWidth, 0), MaxIndent)
	if c.SortKeys > SortDescending {
		c.SortKeys = SortNone
	}
	return c
}
