package repair

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

var (
	// Block comments are non-nested and matched lazily. Line comments only
	// count when nothing but spaces or tabs precedes them on the line; group 1
	// captures that indentation so it survives the deletion.
	commentPattern = regexp2.MustCompile(`/\*[\s\S]*?\*/|^([ \t]*)//[^\r\n]*`, regexp2.Multiline)

	trailingCommaPattern = regexp2.MustCompile(`,(?=\s*[}\]])`, regexp2.None)

	bareKeyPattern = regexp2.MustCompile(`([{,]\s*)([A-Za-z0-9_]+)(\s*:)`, regexp2.None)
)

// StripComments removes block comments and whole-line `//` comments.
func StripComments(text string) (string, Layer, error) {
	return runPass(text, commentPattern, func(m *regexp2.Match, pos runeIndex) []Edit {
		start, end := pos.span(m.Index, m.Length)
		if indent := m.GroupByNumber(1); indent != nil && len(indent.Captures) > 0 {
			start = pos.at(indent.Index + indent.Length)
		}
		return []Edit{{Start: start, End: end}}
	})
}

// StripTrailingCommas removes every comma followed, through optional
// whitespace, by `}` or `]`. The pass is not iterated: `[1,,]` becomes `[1,]`.
func StripTrailingCommas(text string) (string, Layer, error) {
	return runPass(text, trailingCommaPattern, func(m *regexp2.Match, pos runeIndex) []Edit {
		start, end := pos.span(m.Index, m.Length)
		return []Edit{{Start: start, End: end}}
	})
}

// QuoteBareKeys wraps identifier-like keys, all-digit ones included, in
// double quotes. Each key yields two insertions so that offsets inside the
// key map back exactly.
func QuoteBareKeys(text string) (string, Layer, error) {
	return runPass(text, bareKeyPattern, func(m *regexp2.Match, pos runeIndex) []Edit {
		key := m.GroupByNumber(2)
		if key == nil || key.Length == 0 {
			return nil
		}
		start, end := pos.span(key.Index, key.Length)
		return []Edit{
			{Start: start, End: start, NewText: `"`},
			{Start: end, End: end, NewText: `"`},
		}
	})
}

type editFunc func(m *regexp2.Match, pos runeIndex) []Edit

func runPass(text string, re *regexp2.Regexp, mk editFunc) (string, Layer, error) {
	m, err := re.FindStringMatch(text)
	if err != nil {
		return text, nil, fmt.Errorf("match %q: %w", re.String(), err)
	}
	if m == nil {
		return text, nil, nil
	}

	pos := newRuneIndex(text)
	var layer Layer
	for m != nil {
		for _, e := range mk(m, pos) {
			if e.Start != e.End || e.NewText != "" {
				layer = append(layer, e)
			}
		}
		m, err = re.FindNextMatch(m)
		if err != nil {
			return text, nil, fmt.Errorf("match %q: %w", re.String(), err)
		}
	}
	layer = layer.sorted()
	return layer.Apply(text), layer, nil
}

// runeIndex maps rune indexes reported by regexp2 to byte offsets.
// Invalid UTF-8 bytes count as one rune each, as in regexp2's own decoding.
type runeIndex []int

func newRuneIndex(text string) runeIndex {
	idx := make(runeIndex, 0, len(text)+1)
	for i := range text {
		idx = append(idx, i)
	}
	return append(idx, len(text))
}

func (r runeIndex) at(i int) int {
	switch {
	case i < 0:
		return 0
	case i >= len(r):
		return r[len(r)-1]
	}
	return r[i]
}

func (r runeIndex) span(index, length int) (int, int) {
	return r.at(index), r.at(index + length)
}
