package repair

import (
	"sort"
	"strings"
)

// Edit replaces the byte range [Start, End) of a pass input with NewText.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// Layer holds the non-overlapping edits of one pass, sorted by Start.
type Layer []Edit

// Apply returns text with all edits of the layer applied.
func (l Layer) Apply(text string) string {
	if len(l) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + l.delta())
	prev := 0
	for _, e := range l {
		b.WriteString(text[prev:e.Start])
		b.WriteString(e.NewText)
		prev = e.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

func (l Layer) delta() int {
	d := 0
	for _, e := range l {
		d += len(e.NewText) - (e.End - e.Start)
	}
	return d
}

// MapBack converts a byte offset in the output of the layer into the
// corresponding offset in its input. Offsets inside replacement text map into
// the replaced range; offsets past a deletion map past the deleted bytes.
func (l Layer) MapBack(off int) int {
	delta := 0
	for _, e := range l {
		outStart := e.Start + delta
		if off < outStart {
			break
		}
		outEnd := outStart + len(e.NewText)
		if off < outEnd {
			rel := off - outStart
			if width := e.End - e.Start; rel > width {
				rel = width
			}
			return e.Start + rel
		}
		delta += len(e.NewText) - (e.End - e.Start)
	}
	return off - delta
}

func (l Layer) sorted() Layer {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Start < l[j].Start
	})
	return l
}
