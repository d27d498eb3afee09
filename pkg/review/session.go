// Package review owns the document review session: the one object that
// ties tokenized page lines, the selection state machine and the field
// store together for a single open document.
package review

import (
	"time"

	"github.com/wesleysanjose/ocr/pkg/extract"
	"github.com/wesleysanjose/ocr/pkg/kernel"
	"github.com/wesleysanjose/ocr/pkg/ocrtext"
)

// Candidate is a committed-but-unconfirmed key/value pair, shown to the
// user for editing before it becomes a field.
type Candidate struct {
	KV                extract.KV       `json:"kv"`
	SuggestedCategory extract.Category `json:"suggested_category"`
	LineIndices       []int            `json:"line_indices"`
}

// Session is one document review session. It is created on document-open,
// destroyed on document-close, and never reused across documents. All
// operations are synchronous and run to completion; the Service layer
// serializes intents so no two mutations interleave.
type Session struct {
	ID         kernel.SessionID  `json:"id"`
	TenantID   kernel.TenantID   `json:"tenant_id"`
	CaseID     kernel.CaseID     `json:"case_id"`
	DocumentID kernel.DocumentID `json:"document_id"`
	Page       int               `json:"page"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	lines     []ocrtext.Line
	selection *extract.Selection
	store     *extract.FieldStore
	candidate *Candidate
}

// NewSession creates a session for one document. No page is loaded yet.
func NewSession(id kernel.SessionID, tenantID kernel.TenantID, caseID kernel.CaseID, docID kernel.DocumentID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         id,
		TenantID:   tenantID,
		CaseID:     caseID,
		DocumentID: docID,
		CreatedAt:  now,
		UpdatedAt:  now,
		store:      extract.NewFieldStore(),
	}
}

// LoadPage tokenizes raw OCR text for a page and rebuilds the session
// around it. The field store, selection state and any pending candidate
// belong to the previous page and are discarded, never merged.
func (s *Session) LoadPage(page int, rawText string) []ocrtext.Line {
	s.Page = page
	s.lines = ocrtext.Tokenize(rawText)
	s.selection = extract.NewSelection(s.lines)
	s.store = extract.NewFieldStore()
	s.candidate = nil
	s.touch()
	return s.lines
}

// Lines returns the tokenized lines of the loaded page.
func (s *Session) Lines() []ocrtext.Line {
	return s.lines
}

// PageLoaded reports whether a page has been loaded.
func (s *Session) PageLoaded() bool {
	return s.selection != nil
}

// Click applies a plain click on a line.
func (s *Session) Click(index int) error {
	if s.selection == nil {
		return ErrPageNotLoaded()
	}
	s.selection.Click(index)
	s.touch()
	return nil
}

// Toggle applies a modifier-click on a line.
func (s *Session) Toggle(index int) error {
	if s.selection == nil {
		return ErrPageNotLoaded()
	}
	s.selection.Toggle(index)
	s.touch()
	return nil
}

// Extend applies a shift-click on a line.
func (s *Session) Extend(index int) error {
	if s.selection == nil {
		return ErrPageNotLoaded()
	}
	s.selection.Extend(index)
	s.touch()
	return nil
}

// ClearSelection resets the selection state machine.
func (s *Session) ClearSelection() error {
	if s.selection == nil {
		return ErrPageNotLoaded()
	}
	s.selection.Clear()
	s.touch()
	return nil
}

// Selection exposes the selection state for read-only projection.
func (s *Session) Selection() *extract.Selection {
	return s.selection
}

// Commit turns the current selection into a candidate key/value pair with
// a suggested category. The selection is left intact so the user can
// cancel without losing it.
func (s *Session) Commit() (Candidate, error) {
	if s.selection == nil {
		return Candidate{}, ErrPageNotLoaded()
	}
	selected := s.selection.Selected()
	if len(selected) == 0 {
		return Candidate{}, ErrNothingSelected()
	}

	kv := extract.ParseKV(s.selection.Commit())
	indices := make([]int, len(selected))
	for i, line := range selected {
		indices[i] = line.Index
	}

	s.candidate = &Candidate{
		KV:                kv,
		SuggestedCategory: extract.Classify(kv.Key),
		LineIndices:       indices,
	}
	s.touch()
	return *s.candidate, nil
}

// Candidate returns the pending candidate, if any.
func (s *Session) Candidate() (Candidate, bool) {
	if s.candidate == nil {
		return Candidate{}, false
	}
	return *s.candidate, true
}

// CancelCandidate discards the pending candidate without touching the
// selection, so the user can re-commit or adjust it.
func (s *Session) CancelCandidate() {
	s.candidate = nil
	s.touch()
}

// Apply confirms the pending candidate with the user's (possibly edited)
// key, value and category: the field is upserted, the source lines are
// marked committed, and selection and candidate are cleared. On a
// validation failure the candidate and selection survive so the user can
// correct the input.
func (s *Session) Apply(key, value string, category extract.Category) error {
	if s.candidate == nil {
		return ErrNoCandidate()
	}
	if err := s.store.Upsert(key, value, category); err != nil {
		return err
	}

	s.selection.MarkCommitted(s.candidate.LineIndices...)
	s.selection.Clear()
	s.candidate = nil
	s.touch()
	return nil
}

// Store exposes the session's field store.
func (s *Session) Store() *extract.FieldStore {
	return s.store
}

// ReplaceStore swaps in a restored field store, e.g. when resuming from
// a snapshot.
func (s *Session) ReplaceStore(store *extract.FieldStore) {
	s.store = store
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
