// Package docstore stores per-page OCR text for scanned documents. The
// engine itself never runs OCR; it reads text an external OCR pipeline has
// already written here, one file per page.
package docstore

import (
	"context"
	"fmt"

	"github.com/wesleysanjose/ocr/pkg/errx"
	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// Storage is the backend-neutral interface over page text files.
type Storage interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Exists(ctx context.Context, path string) (bool, error)
	DeleteFile(ctx context.Context, path string) error
}

var docstoreErrors = errx.NewRegistry("DOCSTORE")

var (
	ErrPageNotFound  = docstoreErrors.Register("PAGE_NOT_FOUND", errx.TypeNotFound, 404, "No OCR text stored for this page")
	ErrReadFailed    = docstoreErrors.Register("READ_FAILED", errx.TypeExternal, 502, "Failed to read page text")
	ErrWriteFailed   = docstoreErrors.Register("WRITE_FAILED", errx.TypeExternal, 502, "Failed to write page text")
	ErrDeleteFailed  = docstoreErrors.Register("DELETE_FAILED", errx.TypeExternal, 502, "Failed to delete page text")
	ErrInvalidLayout = docstoreErrors.Register("INVALID_LAYOUT", errx.TypeValidation, 400, "Invalid document path components")
)

// PageTexts reads and writes page text under the canonical layout
// cases/<case>/<doc>/pages/<n>.txt on any Storage backend.
type PageTexts struct {
	storage Storage
}

// NewPageTexts wraps a storage backend.
func NewPageTexts(storage Storage) *PageTexts {
	return &PageTexts{storage: storage}
}

// PagePath returns the storage path for one page of a document.
func PagePath(caseID kernel.CaseID, docID kernel.DocumentID, page int) string {
	return fmt.Sprintf("cases/%s/%s/pages/%d.txt", caseID, docID, page)
}

// ReadPage returns the raw OCR text for a page. A missing page is a
// NotFound error; callers render the documented "no OCR result" state.
func (p *PageTexts) ReadPage(ctx context.Context, caseID kernel.CaseID, docID kernel.DocumentID, page int) (string, error) {
	if caseID.IsEmpty() || docID.IsEmpty() || page < 1 {
		return "", docstoreErrors.New(ErrInvalidLayout).
			WithDetail("case_id", caseID.String()).
			WithDetail("document_id", docID.String()).
			WithDetail("page", page)
	}

	path := PagePath(caseID, docID, page)
	exists, err := p.storage.Exists(ctx, path)
	if err != nil {
		return "", docstoreErrors.NewWithCause(ErrReadFailed, err).WithDetail("path", path)
	}
	if !exists {
		return "", docstoreErrors.New(ErrPageNotFound).WithDetail("path", path)
	}

	data, err := p.storage.ReadFile(ctx, path)
	if err != nil {
		return "", docstoreErrors.NewWithCause(ErrReadFailed, err).WithDetail("path", path)
	}
	return string(data), nil
}

// WritePage stores the raw OCR text for a page, used by the external OCR
// pipeline's ingest step.
func (p *PageTexts) WritePage(ctx context.Context, caseID kernel.CaseID, docID kernel.DocumentID, page int, text string) error {
	if caseID.IsEmpty() || docID.IsEmpty() || page < 1 {
		return docstoreErrors.New(ErrInvalidLayout).
			WithDetail("case_id", caseID.String()).
			WithDetail("document_id", docID.String()).
			WithDetail("page", page)
	}

	path := PagePath(caseID, docID, page)
	if err := p.storage.WriteFile(ctx, path, []byte(text)); err != nil {
		return docstoreErrors.NewWithCause(ErrWriteFailed, err).WithDetail("path", path)
	}
	return nil
}

// DeletePage removes a stored page, used when a document is purged from
// a case. Deleting an absent page is a no-op.
func (p *PageTexts) DeletePage(ctx context.Context, caseID kernel.CaseID, docID kernel.DocumentID, page int) error {
	if caseID.IsEmpty() || docID.IsEmpty() || page < 1 {
		return docstoreErrors.New(ErrInvalidLayout).
			WithDetail("case_id", caseID.String()).
			WithDetail("document_id", docID.String()).
			WithDetail("page", page)
	}

	path := PagePath(caseID, docID, page)
	if err := p.storage.DeleteFile(ctx, path); err != nil {
		return docstoreErrors.NewWithCause(ErrDeleteFailed, err).WithDetail("path", path)
	}
	return nil
}
