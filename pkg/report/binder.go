package report

import (
	"strings"

	"github.com/wesleysanjose/ocr/pkg/extract"
)

// Binder resolves report placeholder names against a field store.
type Binder struct {
	specs map[string]PlaceholderSpec
	order []string
}

// NewBinder creates a binder over a placeholder spec table.
func NewBinder(specs []PlaceholderSpec) *Binder {
	byName := make(map[string]PlaceholderSpec, len(specs))
	order := make([]string, 0, len(specs))
	for _, spec := range specs {
		if _, seen := byName[spec.Name]; !seen {
			order = append(order, spec.Name)
		}
		byName[spec.Name] = spec
	}
	return &Binder{specs: byName, order: order}
}

// Placeholders returns the configured placeholder names in table order.
func (b *Binder) Placeholders() []string {
	return append([]string(nil), b.order...)
}

// Resolve finds the store value for a placeholder. Stages, stopping at the
// first success: exact key match, case-insensitive exact match, then for
// each alias keyword in priority order a bidirectional substring scan over
// the store in iteration order (key contains alias, or alias contains key).
// A miss returns ok=false so callers can leave the slot unfilled; an empty
// string value with ok=true is a real, empty field.
func (b *Binder) Resolve(placeholder string, store *extract.FieldStore) (string, bool) {
	field, ok := b.resolveField(placeholder, store)
	if !ok {
		return "", false
	}
	return field.Value, true
}

// resolveField runs the resolution stages and returns the backing field.
func (b *Binder) resolveField(placeholder string, store *extract.FieldStore) (extract.Field, bool) {
	if field, ok := store.Get(placeholder); ok {
		return field, true
	}

	entries := store.Entries()
	lowered := strings.ToLower(placeholder)
	for _, field := range entries {
		if strings.ToLower(field.Key) == lowered {
			return field, true
		}
	}

	spec, ok := b.specs[placeholder]
	if !ok {
		return extract.Field{}, false
	}
	for _, alias := range spec.Aliases {
		for _, field := range entries {
			if strings.Contains(field.Key, alias) || strings.Contains(alias, field.Key) {
				return field, true
			}
		}
	}
	return extract.Field{}, false
}

// BindNew writes a manually edited placeholder value back into the store.
// When a field already resolves the placeholder the edit lands on that
// field's key, so a later Resolve sees the new value instead of a stale
// duplicate. Otherwise a field is created under the placeholder's first
// alias (classified by the usual keyword rules); placeholders without a
// configured spec bind under their own name.
func (b *Binder) BindNew(placeholder, value string, store *extract.FieldStore) error {
	if field, ok := b.resolveField(placeholder, store); ok {
		return store.Upsert(field.Key, value, field.Category)
	}

	key := placeholder
	if spec, ok := b.specs[placeholder]; ok && len(spec.Aliases) > 0 {
		key = spec.Aliases[0]
	}
	return store.Upsert(key, value, extract.Classify(key))
}

// FillAll resolves every configured placeholder. Unresolved slots are
// absent from the result, preserving the "no data" vs "empty value"
// distinction for the template layer.
func (b *Binder) FillAll(store *extract.FieldStore) map[string]string {
	filled := make(map[string]string)
	for _, name := range b.order {
		if value, ok := b.Resolve(name, store); ok {
			filled[name] = value
		}
	}
	return filled
}
