package diag

import (
	"testing"

	"jsonfix/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d", b.Len())
	}
	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestBagSaturates(t *testing.T) {
	if got := NewBag(1 << 20).max; got != ^uint16(0) {
		t.Fatalf("max = %d", got)
	}
	if NewBag(-1).Add(New(SevInfo, RepCommentsRemoved, source.Span{}, "x")) {
		t.Fatal("a bag with a negative limit must reject everything")
	}
}

func TestBagSortDedupFilter(t *testing.T) {
	b := NewBag(10)
	r := BagReporter{Bag: b}
	ReportError(r, SynTrailingData, source.Span{Start: 5, End: 6}, "late").Emit()
	ReportInfo(r, RepCommentsRemoved, source.Span{Start: 0}, "comments removed").Emit()
	ReportError(r, SynTrailingData, source.Span{Start: 5, End: 6}, "late").Emit()

	b.Sort()
	if got := b.Items()[0].Code; got != RepCommentsRemoved {
		t.Fatalf("first after sort = %s", got.ID())
	}
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len after dedup = %d", b.Len())
	}
	b.Filter(func(d Diagnostic) bool { return d.Severity == SevError })
	if b.Len() != 1 || !b.HasErrors() {
		t.Fatalf("unexpected filter result: %+v", b.Items())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportError(BagReporter{Bag: b}, SynBadEscape, source.Span{}, "Bad escaped character").
		WithNote(source.Span{Start: 1}, "here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Len = %d", b.Len())
	}
	if n := len(b.Items()[0].Notes); n != 1 {
		t.Fatalf("notes = %d", n)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		RepBareKeysQuoted:  "REP1003",
		SynUnexpectedToken: "SYN2001",
		IOReadFail:         "IO4001",
		PrjBadConfig:       "PRJ5001",
		UnknownCode:        "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if got := SynTooDeep.Title(); got != "Nesting too deep" {
		t.Errorf("Title = %q", got)
	}
}
