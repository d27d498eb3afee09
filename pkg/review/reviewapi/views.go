package reviewapi

import (
	"time"

	"github.com/wesleysanjose/ocr/pkg/extract"
	"github.com/wesleysanjose/ocr/pkg/ocrtext"
	"github.com/wesleysanjose/ocr/pkg/review"
)

// SessionView is the full session projection returned on open and get.
type SessionView struct {
	ID         string            `json:"id"`
	CaseID     string            `json:"case_id"`
	DocumentID string            `json:"document_id"`
	Page       int               `json:"page"`
	Lines      []LineView        `json:"lines"`
	Selection  SelectionView     `json:"selection"`
	Fields     []extract.Field   `json:"fields"`
	Candidate  *review.Candidate `json:"candidate,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// LineView is one page line with its selection state.
type LineView struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Selected  bool   `json:"selected"`
	Committed bool   `json:"committed"`
}

// SelectionView summarizes the selection state machine.
type SelectionView struct {
	Mode    string `json:"mode"`
	Indices []int  `json:"indices"`
	Anchor  *int   `json:"anchor,omitempty"`
}

func sessionView(s *review.Session) SessionView {
	view := SessionView{
		ID:         s.ID.String(),
		CaseID:     s.CaseID.String(),
		DocumentID: s.DocumentID.String(),
		Page:       s.Page,
		Lines:      lineViews(s),
		Selection:  selectionView(s),
		Fields:     s.Store().Entries(),
		UpdatedAt:  s.UpdatedAt,
	}
	if candidate, ok := s.Candidate(); ok {
		view.Candidate = &candidate
	}
	return view
}

func lineViews(s *review.Session) []LineView {
	lines := s.Lines()
	views := make([]LineView, len(lines))
	for i, line := range lines {
		views[i] = lineView(s, line)
	}
	return views
}

func lineView(s *review.Session, line ocrtext.Line) LineView {
	view := LineView{Index: line.Index, Text: line.Text}
	if sel := s.Selection(); sel != nil {
		view.Selected = sel.IsSelected(line.Index)
		view.Committed = sel.IsCommitted(line.Index)
	}
	return view
}

func selectionView(s *review.Session) SelectionView {
	sel := s.Selection()
	if sel == nil {
		return SelectionView{Mode: string(extract.ModeNone), Indices: []int{}}
	}

	selected := sel.Selected()
	indices := make([]int, len(selected))
	for i, line := range selected {
		indices[i] = line.Index
	}

	view := SelectionView{Mode: string(sel.Mode()), Indices: indices}
	if anchor, ok := sel.Anchor(); ok {
		index := anchor.Index
		view.Anchor = &index
	}
	return view
}
