package extract_test

import (
	"testing"

	"github.com/wesleysanjose/ocr/pkg/extract"
	"github.com/wesleysanjose/ocr/pkg/ocrtext"
)

func pageLines() []ocrtext.Line {
	return ocrtext.Tokenize("零\n一\n二\n三\n四\n五\n六")
}

func selectedIndices(s *extract.Selection) []int {
	lines := s.Selected()
	indices := make([]int, len(lines))
	for i, l := range lines {
		indices[i] = l.Index
	}
	return indices
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelection_PlainClickReplacesSelection(t *testing.T) {
	s := extract.NewSelection(pageLines())

	s.Click(1)
	s.Click(3)

	if s.Mode() != extract.ModeSingle {
		t.Fatalf("expected single mode, got %s", s.Mode())
	}
	if !equalInts(selectedIndices(s), []int{3}) {
		t.Fatalf("expected only line 3 selected, got %v", selectedIndices(s))
	}
	if anchor, ok := s.Anchor(); !ok || anchor.Index != 3 {
		t.Fatalf("expected anchor 3, got %v %v", anchor, ok)
	}
}

func TestSelection_ToggleAddsAndRemoves(t *testing.T) {
	s := extract.NewSelection(pageLines())

	s.Click(1)
	s.Toggle(3)
	s.Toggle(5)

	if s.Mode() != extract.ModeMulti {
		t.Fatalf("expected multi mode, got %s", s.Mode())
	}
	if !equalInts(selectedIndices(s), []int{1, 3, 5}) {
		t.Fatalf("got %v", selectedIndices(s))
	}

	s.Toggle(3)
	if !equalInts(selectedIndices(s), []int{1, 5}) {
		t.Fatalf("expected 3 removed, got %v", selectedIndices(s))
	}
	if anchor, _ := s.Anchor(); anchor.Index != 3 {
		t.Fatalf("toggle must move the anchor, got %d", anchor.Index)
	}
}

func TestSelection_RangeExcludesCommittedLines(t *testing.T) {
	s := extract.NewSelection(pageLines())
	s.MarkCommitted(4)

	s.Click(2)
	s.Extend(6)

	if s.Mode() != extract.ModeRange {
		t.Fatalf("expected range mode, got %s", s.Mode())
	}
	if !equalInts(selectedIndices(s), []int{2, 3, 5, 6}) {
		t.Fatalf("expected {2,3,5,6}, got %v", selectedIndices(s))
	}
}

func TestSelection_RepeatedShiftClickKeepsPivot(t *testing.T) {
	s := extract.NewSelection(pageLines())

	s.Click(3)
	s.Extend(6)
	if anchor, _ := s.Anchor(); anchor.Index != 3 {
		t.Fatalf("shift-click must not move the anchor, got %d", anchor.Index)
	}

	// Redefine the span from the same pivot, in the other direction.
	s.Extend(0)
	if !equalInts(selectedIndices(s), []int{0, 1, 2, 3}) {
		t.Fatalf("expected {0,1,2,3}, got %v", selectedIndices(s))
	}
}

func TestSelection_RangeSkipsDroppedBlankIndices(t *testing.T) {
	// Index 2 was a blank line dropped by the tokenizer.
	lines := ocrtext.Tokenize("零\n一\n\n三\n四")
	s := extract.NewSelection(lines)

	s.Click(0)
	s.Extend(4)

	if !equalInts(selectedIndices(s), []int{0, 1, 3, 4}) {
		t.Fatalf("got %v", selectedIndices(s))
	}
}

func TestSelection_ClickOnCommittedIsNoOp(t *testing.T) {
	s := extract.NewSelection(pageLines())
	s.MarkCommitted(2)

	s.Click(1)
	s.Click(2)

	if !equalInts(selectedIndices(s), []int{1}) {
		t.Fatalf("expected selection unchanged, got %v", selectedIndices(s))
	}
	if anchor, _ := s.Anchor(); anchor.Index != 1 {
		t.Fatalf("anchor must stay at 1, got %d", anchor.Index)
	}

	s.Toggle(2)
	if !equalInts(selectedIndices(s), []int{1}) {
		t.Fatalf("toggle on committed must be a no-op, got %v", selectedIndices(s))
	}
}

func TestSelection_CommitConcatenatesInIndexOrder(t *testing.T) {
	s := extract.NewSelection(pageLines())

	// Click order is deliberately descending.
	s.Click(5)
	s.Toggle(1)
	s.Toggle(3)

	if got := s.Commit(); got != "一三五" {
		t.Fatalf("expected ascending-order concatenation, got %q", got)
	}

	// Commit must not clear the selection.
	if !equalInts(selectedIndices(s), []int{1, 3, 5}) {
		t.Fatalf("commit cleared the selection: %v", selectedIndices(s))
	}
}

func TestSelection_CommitRoundTripThroughParser(t *testing.T) {
	lines := ocrtext.Tokenize("姓名：\n张三")
	s := extract.NewSelection(lines)

	s.Click(0)
	s.Extend(1)

	kv := extract.ParseKV(s.Commit())
	if kv.Key != "姓名" || kv.Value != "张三" {
		t.Fatalf("round trip failed: %+v", kv)
	}
}

func TestSelection_ClearResetsEverything(t *testing.T) {
	s := extract.NewSelection(pageLines())
	s.Click(2)
	s.Toggle(4)
	s.Clear()

	if s.Mode() != extract.ModeNone {
		t.Fatalf("expected none mode, got %s", s.Mode())
	}
	if len(s.Selected()) != 0 {
		t.Fatal("expected empty selection")
	}
	if _, ok := s.Anchor(); ok {
		t.Fatal("expected no anchor after clear")
	}
}

func TestSelection_MarkCommittedRemovesFromSelection(t *testing.T) {
	s := extract.NewSelection(pageLines())
	s.Click(2)
	s.Toggle(3)

	s.MarkCommitted(2, 3)

	if len(s.Selected()) != 0 {
		t.Fatalf("committed lines must leave the selection, got %v", selectedIndices(s))
	}
	if !s.IsCommitted(2) || !s.IsCommitted(3) {
		t.Fatal("lines not marked committed")
	}
}

func TestSelection_ExtendWithoutAnchorActsAsClick(t *testing.T) {
	s := extract.NewSelection(pageLines())
	s.Extend(4)

	if s.Mode() != extract.ModeSingle {
		t.Fatalf("expected single mode, got %s", s.Mode())
	}
	if !equalInts(selectedIndices(s), []int{4}) {
		t.Fatalf("got %v", selectedIndices(s))
	}
}
