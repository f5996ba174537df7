package fuzztests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jsonfix"
	"jsonfix/internal/jsonv"
	"jsonfix/internal/testkit"
)

const maxFuzzInput = maxSeedBytes

// formatTimeout is the maximum time allowed for formatting a single input.
const formatTimeout = 5 * time.Second

// configFromBits decodes a fuzzer byte into a Config:
// bit 0 beautify, bit 1 quote keys, bit 2 comments, bit 3 trailing commas,
// bits 4-5 sort order (3 is out of range), bits 6-7 indent.
func configFromBits(bits uint8) jsonfix.Config {
	sorts := [...]jsonfix.SortOrder{jsonfix.SortNone, jsonfix.SortAscending, jsonfix.SortDescending, jsonfix.SortOrder(42)}
	indents := [...]int{0, 2, 4, 9}
	return jsonfix.Config{
		Beautify:             bits&1 != 0,
		AutoQuoteKeys:        bits&2 != 0,
		RemoveComments:       bits&4 != 0,
		RemoveTrailingCommas: bits&8 != 0,
		SortKeys:             sorts[(bits>>4)&3],
		IndentWidth:          indents[(bits>>6)&3],
	}
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}

func FuzzFormat(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte, bits uint8) {
		text := clampInput(input)
		cfg := configFromBits(bits)

		res, err := jsonfix.Format(text, cfg)
		if err != nil {
			checkFormatError(t, text, err)
			return
		}
		checkFormatted(t, text, cfg, res)
	})
}

func checkFormatError(t *testing.T, text string, err error) {
	t.Helper()
	var fe *jsonfix.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *jsonfix.FormatError: %v", err, err)
	}
	if fe.Message == "" {
		t.Fatalf("empty error message")
	}
	if fe.Offset < -1 || fe.Offset > len(text) {
		t.Fatalf("offset %d outside [-1, %d]", fe.Offset, len(text))
	}
	if fe.Offset >= 0 {
		if !fe.HasPosition() {
			t.Fatalf("offset %d without line/column", fe.Offset)
		}
		if lines := strings.Count(text, "\n") + 1; fe.Line > lines {
			t.Fatalf("line %d beyond %d lines", fe.Line, lines)
		}
	}
	if fe.Offset >= 0 && !errors.Is(err, jsonfix.ErrInvalidJSON) {
		t.Fatalf("positioned error does not match ErrInvalidJSON: %v", err)
	}
}

func checkFormatted(t *testing.T, text string, cfg jsonfix.Config, res jsonfix.Result) {
	t.Helper()
	out := res.Formatted

	parsed, err := jsonv.Parse(out)
	if err != nil {
		t.Fatalf("output is not strict JSON: %v\noutput: %q", err, out)
	}
	if !cfg.Beautify && strings.Contains(out, "\n") {
		t.Fatalf("minified output contains a newline: %q", out)
	}

	norm := cfg.Normalized()
	order := jsonv.Unsorted
	switch norm.SortKeys {
	case jsonfix.SortAscending:
		order = jsonv.Ascending
	case jsonfix.SortDescending:
		order = jsonv.Descending
	}
	if err := testkit.CheckSortedKeys(parsed, order); err != nil {
		t.Fatalf("sort order: %v\noutput: %q", err, out)
	}

	// вывод: неподвижная точка при тех же настройках без починок
	again := norm
	again.AutoQuoteKeys, again.RemoveComments, again.RemoveTrailingCommas = false, false, false
	res2, err := jsonfix.Format(out, again)
	if err != nil {
		t.Fatalf("reformatting output failed: %v\noutput: %q", err, out)
	}
	if res2.Formatted != out {
		t.Fatalf("output is not stable:\nfirst:  %q\nsecond: %q", out, res2.Formatted)
	}
	if len(res2.Notes) != 0 {
		t.Fatalf("reformatting reported repairs: %v", res2.Notes)
	}

	// без починок содержимое совпадает с исходным
	if len(res.Notes) == 0 {
		orig, err := jsonv.Parse(text)
		if err != nil {
			t.Fatalf("input formatted without repairs but does not parse: %v", err)
		}
		if err := testkit.CheckSameContent(orig, parsed, order != jsonv.Unsorted); err != nil {
			t.Fatalf("content changed: %v", err)
		}
	}
}

// FuzzFormatNoHang checks that no input makes the engine spin.
func FuzzFormatNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte(strings.Repeat("/*", 1024)), uint8(0xFF))
	f.Add([]byte(strings.Repeat("{a:", 1024)), uint8(0xFF))
	f.Add([]byte(strings.Repeat(",", 2048)+"}"), uint8(0xFF))
	f.Add([]byte(strings.Repeat("[", 4096)), uint8(0))

	f.Fuzz(func(t *testing.T, input []byte, bits uint8) {
		text := clampInput(input)
		cfg := configFromBits(bits)

		ctx, cancel := context.WithTimeout(context.Background(), formatTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = jsonfix.Format(text, cfg)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("format hang detected: took longer than %v\ninput (%d bytes): %q",
				formatTimeout, len(text), truncateForLog(text, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input string, maxLen int) string {
	if len(input) <= maxLen {
		return input
	}
	return input[:maxLen] + "..."
}
