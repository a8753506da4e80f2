package diag

import (
	"testing"

	"scopelint/internal/rule"
	"scopelint/internal/source"
)

func TestBagSortDedup(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})

	sp := func(s, e uint32) source.Span { return source.Span{Start: s, End: e} }
	r.Report(rule.Variable, SevError, sp(10, 12), "b")
	r.Report(rule.Error, SevError, sp(10, 12), "a")
	r.Report(rule.Error, SevError, sp(10, 12), "a") // dropped by the reporter
	r.Report(rule.Error, SevError, sp(2, 4), "c")
	r.Report(rule.Error, SevError, sp(2, 4), "d")

	if b.Len() != 4 {
		t.Fatalf("Len = %d, want 4", b.Len())
	}
	b.Sort()

	want := []string{"c", "d", "a", "b"}
	for i, f := range b.Items() {
		if f.Message != want[i] {
			t.Errorf("item %d = %q, want %q", i, f.Message, want[i])
		}
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(Finding{}) || b.Add(Finding{}) {
		t.Fatal("limit not enforced")
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	var nop NopReporter
	nop.Report(rule.Error, SevError, source.Span{}, "ignored")
	ReportError(nil, rule.Error, source.Span{}, "ignored")
}
