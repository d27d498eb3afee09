package extract

import "strings"

// Field is one extracted key/value/category triple. Fields are exclusively
// owned by their FieldStore; callers receive copies.
type Field struct {
	Key      string   `json:"key"`
	Value    string   `json:"value"`
	Category Category `json:"category"`
}

// FieldStore is an insertion-ordered mapping of key to Field. Re-upserting
// an existing key updates it in place without moving it; renaming is
// delete-then-insert and therefore moves the entry to the end.
type FieldStore struct {
	order  []string
	fields map[string]Field
}

// NewFieldStore creates an empty field store.
func NewFieldStore() *FieldStore {
	return &FieldStore{
		order:  make([]string, 0),
		fields: make(map[string]Field),
	}
}

// Upsert inserts or updates a field. An existing key keeps its original
// insertion position. The key must be non-empty after trimming and the
// category must be one of the four known buckets.
func (fs *FieldStore) Upsert(key, value string, category Category) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return extractErrors.New(ErrEmptyFieldKey)
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return err
	}

	if _, exists := fs.fields[key]; !exists {
		fs.order = append(fs.order, key)
	}
	fs.fields[key] = Field{Key: key, Value: value, Category: category}
	return nil
}

// Rename replaces oldKey with newKey. It is delete-then-insert, so the
// renamed entry always moves to the end of iteration order. Callers that
// only change the value or category should Upsert with the same key.
func (fs *FieldStore) Rename(oldKey, newKey, value string, category Category) error {
	fs.Delete(oldKey)
	return fs.Upsert(newKey, value, category)
}

// Delete removes a field. Deleting an absent key is a no-op so that UI
// delete confirmations stay idempotent.
func (fs *FieldStore) Delete(key string) {
	if _, exists := fs.fields[key]; !exists {
		return
	}
	delete(fs.fields, key)
	for i, k := range fs.order {
		if k == key {
			fs.order = append(fs.order[:i], fs.order[i+1:]...)
			break
		}
	}
}

// Recategorize changes only the category of a field, preserving value and
// order. An absent key is a silent no-op: drag-and-drop recategorization
// can race a concurrent delete and must not fail. An unrecognized category
// label is still an error.
func (fs *FieldStore) Recategorize(key string, category Category) error {
	if _, err := ParseCategory(string(category)); err != nil {
		return err
	}
	field, exists := fs.fields[key]
	if !exists {
		return nil
	}
	field.Category = category
	fs.fields[key] = field
	return nil
}

// Get returns a copy of the field for key.
func (fs *FieldStore) Get(key string) (Field, bool) {
	field, ok := fs.fields[key]
	return field, ok
}

// Len returns the number of stored fields.
func (fs *FieldStore) Len() int {
	return len(fs.order)
}

// Entries returns an insertion-ordered snapshot of the store, optionally
// filtered to the given categories. The snapshot reflects store state at
// call time; later mutations do not affect it.
func (fs *FieldStore) Entries(categories ...Category) []Field {
	var filter map[Category]bool
	if len(categories) > 0 {
		filter = make(map[Category]bool, len(categories))
		for _, c := range categories {
			filter[c] = true
		}
	}

	entries := make([]Field, 0, len(fs.order))
	for _, key := range fs.order {
		field := fs.fields[key]
		if filter != nil && !filter[field.Category] {
			continue
		}
		entries = append(entries, field)
	}
	return entries
}

// ExportGrouped groups fields as "key: value" strings per category.
// Categories with no fields are absent from the result, not empty.
func (fs *FieldStore) ExportGrouped() map[Category][]string {
	grouped := make(map[Category][]string)
	for _, key := range fs.order {
		field := fs.fields[key]
		grouped[field.Category] = append(grouped[field.Category], field.Key+": "+field.Value)
	}
	return grouped
}

// categoryTitles are the section headings used in the exported artifact.
var categoryTitles = map[Category]string{
	CategoryPersonal: "个人信息",
	CategoryMedical:  "医疗信息",
	CategoryIncident: "事故信息",
	CategoryLegal:    "法律信息",
}

// ExportText renders the grouped export as the canonical text artifact, in
// the fixed section order personal, medical, incident, legal. This is what
// gets copied to the clipboard or handed to the analysis step.
func (fs *FieldStore) ExportText() string {
	grouped := fs.ExportGrouped()

	var sections []string
	for _, category := range CategoryOrder {
		entries, ok := grouped[category]
		if !ok {
			continue
		}
		sections = append(sections, categoryTitles[category]+"\n"+strings.Join(entries, "\n"))
	}
	return strings.Join(sections, "\n\n")
}
