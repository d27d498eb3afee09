package reviewinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wesleysanjose/ocr/pkg/errx"
	"github.com/wesleysanjose/ocr/pkg/kernel"
	"github.com/wesleysanjose/ocr/pkg/review"
)

// PostgresSnapshotRepository persists review snapshots in the
// review_snapshots table, with the extracted fields as a JSONB column.
type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) review.SnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

type snapshotPersistence struct {
	ID         string    `db:"id"`
	TenantID   string    `db:"tenant_id"`
	CaseID     string    `db:"case_id"`
	DocumentID string    `db:"document_id"`
	Page       int       `db:"page"`
	Fields     []byte    `db:"fields"`
	CreatedBy  string    `db:"created_by"`
	CreatedAt  time.Time `db:"created_at"`
}

func toPersistence(s *review.Snapshot) (snapshotPersistence, error) {
	fields, err := json.Marshal(s.Fields)
	if err != nil {
		return snapshotPersistence{}, errx.Wrap(err, "failed to encode snapshot fields", errx.TypeInternal)
	}
	return snapshotPersistence{
		ID:         s.ID,
		TenantID:   s.TenantID.String(),
		CaseID:     s.CaseID.String(),
		DocumentID: s.DocumentID.String(),
		Page:       s.Page,
		Fields:     fields,
		CreatedBy:  s.CreatedBy.String(),
		CreatedAt:  s.CreatedAt,
	}, nil
}

func toDomain(p snapshotPersistence) (*review.Snapshot, error) {
	var fields []review.SnapshotField
	if err := json.Unmarshal(p.Fields, &fields); err != nil {
		return nil, errx.Wrap(err, "failed to decode snapshot fields", errx.TypeInternal).
			WithDetail("snapshot_id", p.ID)
	}
	return &review.Snapshot{
		ID:         p.ID,
		TenantID:   kernel.TenantID(p.TenantID),
		CaseID:     kernel.CaseID(p.CaseID),
		DocumentID: kernel.DocumentID(p.DocumentID),
		Page:       p.Page,
		Fields:     fields,
		CreatedBy:  kernel.UserID(p.CreatedBy),
		CreatedAt:  p.CreatedAt,
	}, nil
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, snapshot *review.Snapshot) error {
	query := `
		INSERT INTO review_snapshots (
			id, tenant_id, case_id, document_id, page, fields, created_by, created_at
		) VALUES (
			:id, :tenant_id, :case_id, :document_id, :page, :fields, :created_by, :created_at
		)`

	row, err := toPersistence(snapshot)
	if err != nil {
		return err
	}

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return review.ErrSaveFailed(err).WithDetail("snapshot_id", snapshot.ID)
	}
	return nil
}

func (r *PostgresSnapshotRepository) FindLatest(ctx context.Context, tenantID kernel.TenantID, caseID kernel.CaseID, docID kernel.DocumentID) (*review.Snapshot, error) {
	var row snapshotPersistence
	query := `
		SELECT * FROM review_snapshots
		WHERE tenant_id = $1 AND case_id = $2 AND document_id = $3
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &row, query, tenantID.String(), caseID.String(), docID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, review.ErrSnapshotNotFound()
		}
		return nil, errx.Wrap(err, "failed to find latest snapshot", errx.TypeInternal)
	}
	return toDomain(row)
}

func (r *PostgresSnapshotRepository) FindByID(ctx context.Context, tenantID kernel.TenantID, id string) (*review.Snapshot, error) {
	var row snapshotPersistence
	query := `SELECT * FROM review_snapshots WHERE id = $1 AND tenant_id = $2`

	err := r.db.GetContext(ctx, &row, query, id, tenantID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, review.ErrSnapshotNotFound()
		}
		return nil, errx.Wrap(err, "failed to find snapshot by ID", errx.TypeInternal)
	}
	return toDomain(row)
}

func (r *PostgresSnapshotRepository) ListByCase(ctx context.Context, tenantID kernel.TenantID, caseID kernel.CaseID, page, pageSize int) (*kernel.Paginated[review.Snapshot], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM review_snapshots WHERE tenant_id = $1 AND case_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, tenantID.String(), caseID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to count snapshots", errx.TypeInternal)
	}

	var rows []snapshotPersistence
	query := `
		SELECT * FROM review_snapshots
		WHERE tenant_id = $1 AND case_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	err := r.db.SelectContext(ctx, &rows, query, tenantID.String(), caseID.String(), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list snapshots", errx.TypeInternal)
	}

	items := make([]review.Snapshot, 0, len(rows))
	for _, row := range rows {
		snapshot, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		items = append(items, *snapshot)
	}

	paginated := kernel.NewPaginated(items, page, pageSize, total)
	return &paginated, nil
}
