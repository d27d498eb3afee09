package reviewsrv

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wesleysanjose/ocr/pkg/analyze"
	"github.com/wesleysanjose/ocr/pkg/extract"
	"github.com/wesleysanjose/ocr/pkg/kernel"
	"github.com/wesleysanjose/ocr/pkg/logx"
	"github.com/wesleysanjose/ocr/pkg/ocrtext"
	"github.com/wesleysanjose/ocr/pkg/report"
	"github.com/wesleysanjose/ocr/pkg/review"
)

// sessionEntry serializes all mutations on one session: user intents are
// applied in strict event order, never interleaved.
type sessionEntry struct {
	mu      sync.Mutex
	session *review.Session
}

// ReviewService owns the live review sessions and wires them to page
// storage, snapshot persistence, the placeholder binder and the
// streaming analyzer.
type ReviewService struct {
	mu       sync.RWMutex
	sessions map[kernel.SessionID]*sessionEntry

	pages       review.PageReader
	snapshots   review.SnapshotRepository
	analyzer    analyze.Analyzer
	analyzeOpts []analyze.Option
	binder      *report.Binder
}

func NewReviewService(
	pages review.PageReader,
	snapshots review.SnapshotRepository,
	analyzer analyze.Analyzer,
	binder *report.Binder,
	analyzeOpts ...analyze.Option,
) *ReviewService {
	return &ReviewService{
		sessions:    make(map[kernel.SessionID]*sessionEntry),
		pages:       pages,
		snapshots:   snapshots,
		analyzer:    analyzer,
		analyzeOpts: analyzeOpts,
		binder:      binder,
	}
}

// OpenSession creates a session for a document and loads its first page.
func (s *ReviewService) OpenSession(
	ctx context.Context,
	auth *kernel.AuthContext,
	caseID kernel.CaseID,
	docID kernel.DocumentID,
	page int,
) (*review.Session, error) {
	text, err := s.pages.ReadPage(ctx, caseID, docID, page)
	if err != nil {
		return nil, err
	}

	session := review.NewSession(
		kernel.NewSessionID(uuid.NewString()),
		auth.TenantID,
		caseID,
		docID,
	)
	session.LoadPage(page, text)

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	logx.WithFields(logx.Fields{
		"session_id":  session.ID.String(),
		"case_id":     caseID.String(),
		"document_id": docID.String(),
		"page":        page,
		"lines":       len(session.Lines()),
	}).Info("📄 Review session opened")

	return session, nil
}

// CloseSession destroys a session. Unsaved fields are gone; saving is an
// explicit snapshot, never implicit.
func (s *ReviewService) CloseSession(id kernel.SessionID) {
	s.mu.Lock()
	_, existed := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if existed {
		logx.WithField("session_id", id.String()).Info("Review session closed")
	}
}

func (s *ReviewService) entry(id kernel.SessionID) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, review.ErrSessionNotFound()
	}
	return entry, nil
}

// withSession runs fn with exclusive access to the session.
func (s *ReviewService) withSession(id kernel.SessionID, fn func(*review.Session) error) error {
	entry, err := s.entry(id)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// LoadPage switches the session to another page, discarding selection,
// fields and any pending candidate from the previous one.
func (s *ReviewService) LoadPage(ctx context.Context, id kernel.SessionID, page int) ([]ocrtext.Line, error) {
	var lines []ocrtext.Line
	err := s.withSession(id, func(sess *review.Session) error {
		text, err := s.pages.ReadPage(ctx, sess.CaseID, sess.DocumentID, page)
		if err != nil {
			return err
		}
		lines = sess.LoadPage(page, text)
		return nil
	})
	return lines, err
}

// SelectLine applies a plain click.
func (s *ReviewService) SelectLine(id kernel.SessionID, index int) error {
	return s.withSession(id, func(sess *review.Session) error {
		return sess.Click(index)
	})
}

// ToggleLine applies a modifier-click.
func (s *ReviewService) ToggleLine(id kernel.SessionID, index int) error {
	return s.withSession(id, func(sess *review.Session) error {
		return sess.Toggle(index)
	})
}

// ExtendSelection applies a shift-click.
func (s *ReviewService) ExtendSelection(id kernel.SessionID, index int) error {
	return s.withSession(id, func(sess *review.Session) error {
		return sess.Extend(index)
	})
}

// ClearSelection resets the session's selection.
func (s *ReviewService) ClearSelection(id kernel.SessionID) error {
	return s.withSession(id, func(sess *review.Session) error {
		return sess.ClearSelection()
	})
}

// CommitSelection turns the current selection into a candidate.
func (s *ReviewService) CommitSelection(id kernel.SessionID) (review.Candidate, error) {
	var cand review.Candidate
	err := s.withSession(id, func(sess *review.Session) error {
		var err error
		cand, err = sess.Commit()
		return err
	})
	return cand, err
}

// CancelCandidate discards the pending candidate.
func (s *ReviewService) CancelCandidate(id kernel.SessionID) error {
	return s.withSession(id, func(sess *review.Session) error {
		sess.CancelCandidate()
		return nil
	})
}

// ApplyCandidate confirms the pending candidate under the user's final
// key, value and category.
func (s *ReviewService) ApplyCandidate(id kernel.SessionID, key, value string, category string) error {
	return s.withSession(id, func(sess *review.Session) error {
		cat, err := extract.ParseCategory(category)
		if err != nil {
			return err
		}
		return sess.Apply(key, value, cat)
	})
}

// UpsertField writes a field directly, bypassing line selection. Used by
// the manual add/edit form.
func (s *ReviewService) UpsertField(id kernel.SessionID, key, value string, category string) error {
	return s.withSession(id, func(sess *review.Session) error {
		cat, err := extract.ParseCategory(category)
		if err != nil {
			return err
		}
		return sess.Store().Upsert(key, value, cat)
	})
}

// RenameField replaces a field's key, moving it to the end of iteration
// order.
func (s *ReviewService) RenameField(id kernel.SessionID, oldKey, newKey, value string, category string) error {
	return s.withSession(id, func(sess *review.Session) error {
		cat, err := extract.ParseCategory(category)
		if err != nil {
			return err
		}
		return sess.Store().Rename(oldKey, newKey, value, cat)
	})
}

// DeleteField removes a field. Deleting an absent key is a silent no-op.
func (s *ReviewService) DeleteField(id kernel.SessionID, key string) error {
	return s.withSession(id, func(sess *review.Session) error {
		sess.Store().Delete(key)
		return nil
	})
}

// RecategorizeField reassigns a field's category, e.g. on drag-drop
// between category panes. Absent keys are a silent no-op.
func (s *ReviewService) RecategorizeField(id kernel.SessionID, key string, category string) error {
	return s.withSession(id, func(sess *review.Session) error {
		cat, err := extract.ParseCategory(category)
		if err != nil {
			return err
		}
		return sess.Store().Recategorize(key, cat)
	})
}

// ListFields returns fields in insertion order, optionally filtered to
// the given categories.
func (s *ReviewService) ListFields(id kernel.SessionID, categories ...string) ([]extract.Field, error) {
	var fields []extract.Field
	err := s.withSession(id, func(sess *review.Session) error {
		cats := make([]extract.Category, 0, len(categories))
		for _, label := range categories {
			cat, err := extract.ParseCategory(label)
			if err != nil {
				return err
			}
			cats = append(cats, cat)
		}
		fields = sess.Store().Entries(cats...)
		return nil
	})
	return fields, err
}

// ExportGrouped returns "key: value" lines grouped per non-empty
// category.
func (s *ReviewService) ExportGrouped(id kernel.SessionID) (map[extract.Category][]string, error) {
	var grouped map[extract.Category][]string
	err := s.withSession(id, func(sess *review.Session) error {
		grouped = sess.Store().ExportGrouped()
		return nil
	})
	return grouped, err
}

// ExportText returns the titled, fixed-order plain-text export.
func (s *ReviewService) ExportText(id kernel.SessionID) (string, error) {
	var text string
	err := s.withSession(id, func(sess *review.Session) error {
		text = sess.Store().ExportText()
		return nil
	})
	return text, err
}

// Placeholders lists the report placeholders in spec order.
func (s *ReviewService) Placeholders() []string {
	return s.binder.Placeholders()
}

// ResolvePlaceholders maps report placeholders to field values. Unresolved
// placeholders are absent from the result.
func (s *ReviewService) ResolvePlaceholders(id kernel.SessionID) (map[string]string, error) {
	var resolved map[string]string
	err := s.withSession(id, func(sess *review.Session) error {
		resolved = s.binder.FillAll(sess.Store())
		return nil
	})
	return resolved, err
}

// BindPlaceholder manually binds a value to a placeholder, creating the
// backing field when none resolves.
func (s *ReviewService) BindPlaceholder(id kernel.SessionID, placeholder, value string) error {
	return s.withSession(id, func(sess *review.Session) error {
		return s.binder.BindNew(placeholder, value, sess.Store())
	})
}

// Analyze streams an AI-formatted rendition of the session's exported
// fields, invoking onFragment per fragment, and returns the accumulated
// text. Cancelling ctx mid-stream returns the partial accumulator; the
// field store is never touched by analysis.
func (s *ReviewService) Analyze(ctx context.Context, id kernel.SessionID, onFragment func(string)) (string, error) {
	entry, err := s.entry(id)
	if err != nil {
		return "", err
	}

	// Export under the session lock, then stream without holding it so
	// selection and field edits stay responsive during a long analysis.
	entry.mu.Lock()
	text := entry.session.Store().ExportText()
	entry.mu.Unlock()

	// The provider wraps the export in the analysis prompt itself; handing
	// it a pre-wrapped prompt would nest the template inside itself.
	stream, err := s.analyzer.AnalyzeStream(ctx, text, s.analyzeOpts...)
	if err != nil {
		return "", err
	}

	accumulated, err := analyze.Drain(ctx, stream, onFragment)
	if err != nil {
		logx.WithError(err).WithField("session_id", id.String()).Warn("Analysis ended early")
		return accumulated, err
	}
	return accumulated, nil
}

// SaveSnapshot persists the session's current fields.
func (s *ReviewService) SaveSnapshot(ctx context.Context, auth *kernel.AuthContext, id kernel.SessionID) (*review.Snapshot, error) {
	var snapshot *review.Snapshot
	err := s.withSession(id, func(sess *review.Session) error {
		snapshot = &review.Snapshot{
			ID:         uuid.NewString(),
			TenantID:   sess.TenantID,
			CaseID:     sess.CaseID,
			DocumentID: sess.DocumentID,
			Page:       sess.Page,
			Fields:     review.SnapshotFromStore(sess.Store()),
			CreatedBy:  auth.UserID,
			CreatedAt:  time.Now().UTC(),
		}
		return s.snapshots.Save(ctx, snapshot)
	})
	if err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{
		"snapshot_id": snapshot.ID,
		"session_id":  id.String(),
		"fields":      len(snapshot.Fields),
	}).Info("💾 Snapshot saved")
	return snapshot, nil
}

// RestoreSnapshot loads the latest snapshot for the session's document
// into its field store, replacing whatever is there.
func (s *ReviewService) RestoreSnapshot(ctx context.Context, id kernel.SessionID) (*review.Snapshot, error) {
	var snapshot *review.Snapshot
	err := s.withSession(id, func(sess *review.Session) error {
		snap, err := s.snapshots.FindLatest(ctx, sess.TenantID, sess.CaseID, sess.DocumentID)
		if err != nil {
			return err
		}
		store, err := review.RestoreStore(snap.Fields)
		if err != nil {
			return err
		}
		sess.ReplaceStore(store)
		snapshot = snap
		return nil
	})
	return snapshot, err
}

// ListSnapshots pages through a case's snapshots, newest first.
func (s *ReviewService) ListSnapshots(
	ctx context.Context,
	auth *kernel.AuthContext,
	caseID kernel.CaseID,
	page, pageSize int,
) (*kernel.Paginated[review.Snapshot], error) {
	return s.snapshots.ListByCase(ctx, auth.TenantID, caseID, page, pageSize)
}

// GetSession returns the live session for read-only projection.
func (s *ReviewService) GetSession(id kernel.SessionID) (*review.Session, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	return entry.session, nil
}
