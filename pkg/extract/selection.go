package extract

import (
	"sort"
	"strings"

	"github.com/wesleysanjose/ocr/pkg/ocrtext"
)

// SelectionMode is the current state of the selection state machine.
type SelectionMode string

const (
	ModeNone   SelectionMode = "none"
	ModeSingle SelectionMode = "single"
	ModeMulti  SelectionMode = "multi"
	ModeRange  SelectionMode = "range"
)

// Selection tracks which page lines are selected. It is the single source
// of truth for selection state; rendering is a projection of it. A line
// that has been committed into a field can never be selected again.
type Selection struct {
	lines     map[int]ocrtext.Line
	selected  map[int]bool
	committed map[int]bool
	anchor    *int
	mode      SelectionMode
}

// NewSelection creates a selection over one page's tokenized lines.
func NewSelection(lines []ocrtext.Line) *Selection {
	byIndex := make(map[int]ocrtext.Line, len(lines))
	for _, line := range lines {
		byIndex[line.Index] = line
	}
	return &Selection{
		lines:     byIndex,
		selected:  make(map[int]bool),
		committed: make(map[int]bool),
		mode:      ModeNone,
	}
}

// Click handles a plain click: the clicked line becomes the only selected
// line and the new anchor. Clicking a committed or unknown index is a no-op.
func (s *Selection) Click(index int) {
	if !s.selectable(index) {
		return
	}
	s.selected = map[int]bool{index: true}
	anchor := index
	s.anchor = &anchor
	s.mode = ModeSingle
}

// Toggle handles a modifier-click (ctrl/cmd): membership of the line is
// toggled without clearing others, and the line becomes the anchor.
func (s *Selection) Toggle(index int) {
	if !s.selectable(index) {
		return
	}
	if s.selected[index] {
		delete(s.selected, index)
	} else {
		s.selected[index] = true
	}
	anchor := index
	s.anchor = &anchor
	s.mode = ModeMulti
}

// Extend handles a shift-click: the selection becomes the contiguous index
// span between the anchor and the target, committed lines excluded. The
// anchor is left untouched so repeated shift-clicks redefine the span from
// the same pivot. Without an anchor, Extend behaves like a plain click.
func (s *Selection) Extend(index int) {
	if !s.selectable(index) {
		return
	}
	if s.anchor == nil {
		s.Click(index)
		return
	}

	lo, hi := *s.anchor, index
	if lo > hi {
		lo, hi = hi, lo
	}

	s.selected = make(map[int]bool)
	for i := lo; i <= hi; i++ {
		if _, ok := s.lines[i]; !ok {
			continue
		}
		if s.committed[i] {
			continue
		}
		s.selected[i] = true
	}
	s.mode = ModeRange
}

// Clear empties the selection and resets the state machine.
func (s *Selection) Clear() {
	s.selected = make(map[int]bool)
	s.anchor = nil
	s.mode = ModeNone
}

// Mode returns the current selection mode.
func (s *Selection) Mode() SelectionMode {
	return s.mode
}

// Anchor returns the current anchor line, if any.
func (s *Selection) Anchor() (ocrtext.Line, bool) {
	if s.anchor == nil {
		return ocrtext.Line{}, false
	}
	return s.lines[*s.anchor], true
}

// IsSelected reports whether the line at index is selected.
func (s *Selection) IsSelected(index int) bool {
	return s.selected[index]
}

// IsCommitted reports whether the line at index has been committed.
func (s *Selection) IsCommitted(index int) bool {
	return s.committed[index]
}

// Selected returns the selected lines in ascending index order,
// regardless of click order.
func (s *Selection) Selected() []ocrtext.Line {
	indices := make([]int, 0, len(s.selected))
	for i := range s.selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	lines := make([]ocrtext.Line, 0, len(indices))
	for _, i := range indices {
		lines = append(lines, s.lines[i])
	}
	return lines
}

// Commit concatenates the selected line text in ascending index order with
// no separator. Source text is CJK, where joining without whitespace is the
// expected behavior. Commit does not clear the selection; clearing happens
// on the explicit apply step so the user can cancel without losing it.
func (s *Selection) Commit() string {
	var builder strings.Builder
	for _, line := range s.Selected() {
		builder.WriteString(line.Text)
	}
	return builder.String()
}

// MarkCommitted records lines as committed into a field. Committed lines
// are removed from the selection and excluded from future selections.
func (s *Selection) MarkCommitted(indices ...int) {
	for _, i := range indices {
		if _, ok := s.lines[i]; !ok {
			continue
		}
		s.committed[i] = true
		delete(s.selected, i)
	}
}

// selectable reports whether the index maps to a known, uncommitted line.
func (s *Selection) selectable(index int) bool {
	if _, ok := s.lines[index]; !ok {
		return false
	}
	return !s.committed[index]
}
