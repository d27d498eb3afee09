package review

import (
	"context"

	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// PageReader retrieves raw OCR text for a document page.
type PageReader interface {
	ReadPage(ctx context.Context, caseID kernel.CaseID, docID kernel.DocumentID, page int) (string, error)
}

// SnapshotRepository persists the extracted fields of a session so a
// review can be resumed or handed off. The in-session field store stays
// authoritative; snapshots are explicit saves, never implicit syncs.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	FindLatest(ctx context.Context, tenantID kernel.TenantID, caseID kernel.CaseID, docID kernel.DocumentID) (*Snapshot, error)
	FindByID(ctx context.Context, tenantID kernel.TenantID, id string) (*Snapshot, error)
	ListByCase(ctx context.Context, tenantID kernel.TenantID, caseID kernel.CaseID, page, pageSize int) (*kernel.Paginated[Snapshot], error)
}
