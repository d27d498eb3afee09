package review

import (
	"time"

	"github.com/wesleysanjose/ocr/pkg/extract"
	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// SnapshotField is one extracted field as persisted in a snapshot.
// Order in the slice is the field store's insertion order.
type SnapshotField struct {
	Key      string           `json:"key"`
	Value    string           `json:"value"`
	Category extract.Category `json:"category"`
}

// Snapshot is a point-in-time save of a review session's extracted
// fields for one document page.
type Snapshot struct {
	ID         string            `json:"id"`
	TenantID   kernel.TenantID   `json:"tenant_id"`
	CaseID     kernel.CaseID     `json:"case_id"`
	DocumentID kernel.DocumentID `json:"document_id"`
	Page       int               `json:"page"`
	Fields     []SnapshotField   `json:"fields"`
	CreatedBy  kernel.UserID     `json:"created_by"`
	CreatedAt  time.Time         `json:"created_at"`
}

// SnapshotFromStore captures the store's current fields in insertion
// order.
func SnapshotFromStore(store *extract.FieldStore) []SnapshotField {
	entries := store.Entries()
	fields := make([]SnapshotField, len(entries))
	for i, f := range entries {
		fields[i] = SnapshotField{Key: f.Key, Value: f.Value, Category: f.Category}
	}
	return fields
}

// RestoreStore rebuilds a field store from snapshot fields, preserving
// their order.
func RestoreStore(fields []SnapshotField) (*extract.FieldStore, error) {
	store := extract.NewFieldStore()
	for _, f := range fields {
		if err := store.Upsert(f.Key, f.Value, f.Category); err != nil {
			return nil, err
		}
	}
	return store, nil
}
