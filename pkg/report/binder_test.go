package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wesleysanjose/ocr/pkg/extract"
	"github.com/wesleysanjose/ocr/pkg/report"
)

func newStore(t *testing.T, fields ...extract.Field) *extract.FieldStore {
	t.Helper()
	fs := extract.NewFieldStore()
	for _, f := range fields {
		if err := fs.Upsert(f.Key, f.Value, f.Category); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestBinder_ExactMatchWins(t *testing.T) {
	fs := newStore(t,
		extract.Field{Key: "hospital", Value: "exact", Category: extract.CategoryMedical},
		extract.Field{Key: "就诊医院", Value: "alias", Category: extract.CategoryMedical},
	)
	b := report.NewBinder(report.DefaultSpecs())

	value, ok := b.Resolve("hospital", fs)
	if !ok || value != "exact" {
		t.Fatalf("got %q %v", value, ok)
	}
}

func TestBinder_CaseInsensitiveExactMatch(t *testing.T) {
	fs := newStore(t,
		extract.Field{Key: "Hospital", Value: "市一医院", Category: extract.CategoryMedical},
	)
	b := report.NewBinder(report.DefaultSpecs())

	value, ok := b.Resolve("hospital", fs)
	if !ok || value != "市一医院" {
		t.Fatalf("got %q %v", value, ok)
	}
}

func TestBinder_AliasSubstringMatch(t *testing.T) {
	fs := newStore(t,
		extract.Field{Key: "就诊医院", Value: "市一医院", Category: extract.CategoryMedical},
	)
	b := report.NewBinder([]report.PlaceholderSpec{
		{Name: "hospital", Aliases: []string{"医院", "就诊医院", "住院医院"}},
	})

	// "就诊医院" contains the alias "医院": rule (3), bidirectional containment.
	value, ok := b.Resolve("hospital", fs)
	if !ok || value != "市一医院" {
		t.Fatalf("got %q %v", value, ok)
	}
}

func TestBinder_AliasContainsStoreKey(t *testing.T) {
	fs := newStore(t,
		extract.Field{Key: "医院", Value: "县医院", Category: extract.CategoryMedical},
	)
	b := report.NewBinder([]report.PlaceholderSpec{
		{Name: "hospital", Aliases: []string{"就诊医院"}},
	})

	// The alias "就诊医院" contains the store key "医院".
	value, ok := b.Resolve("hospital", fs)
	if !ok || value != "县医院" {
		t.Fatalf("got %q %v", value, ok)
	}
}

func TestBinder_AliasPriorityOverStoreOrder(t *testing.T) {
	fs := newStore(t,
		extract.Field{Key: "住院医院", Value: "second-alias", Category: extract.CategoryMedical},
		extract.Field{Key: "就诊医院", Value: "first-alias", Category: extract.CategoryMedical},
	)
	b := report.NewBinder([]report.PlaceholderSpec{
		{Name: "hospital", Aliases: []string{"就诊医院", "住院医院"}},
	})

	// Aliases are scanned in list order before store order is considered.
	value, ok := b.Resolve("hospital", fs)
	if !ok || value != "first-alias" {
		t.Fatalf("got %q %v", value, ok)
	}
}

func TestBinder_MissIsDistinctFromEmptyValue(t *testing.T) {
	b := report.NewBinder(report.DefaultSpecs())

	if _, ok := b.Resolve("hospital", extract.NewFieldStore()); ok {
		t.Fatal("expected miss on empty store")
	}

	fs := newStore(t, extract.Field{Key: "医院", Value: "", Category: extract.CategoryMedical})
	value, ok := b.Resolve("hospital", fs)
	if !ok || value != "" {
		t.Fatalf("an empty field value is still a hit, got %q %v", value, ok)
	}
}

func TestBinder_BindNewCreatesFieldUnderFirstAlias(t *testing.T) {
	fs := extract.NewFieldStore()
	b := report.NewBinder(report.DefaultSpecs())

	if err := b.BindNew("hospital", "市一医院", fs); err != nil {
		t.Fatal(err)
	}

	field, ok := fs.Get("医院")
	if !ok {
		t.Fatal("expected field under first alias 医院")
	}
	if field.Value != "市一医院" || field.Category != extract.CategoryMedical {
		t.Fatalf("got %+v", field)
	}
}

func TestBinder_BindNewUpdatesResolvingField(t *testing.T) {
	fs := newStore(t, extract.Field{Key: "住院医院", Value: "市一医院", Category: extract.CategoryMedical})
	b := report.NewBinder(report.DefaultSpecs())

	if err := b.BindNew("hospital", "省人民医院", fs); err != nil {
		t.Fatal(err)
	}

	// The edit lands on the field that already resolved the placeholder,
	// not on a fresh field under the first alias.
	if fs.Len() != 1 {
		t.Fatalf("expected 1 field, got %d", fs.Len())
	}
	value, ok := b.Resolve("hospital", fs)
	if !ok || value != "省人民医院" {
		t.Fatalf("expected edited value to resolve, got %q %v", value, ok)
	}
	field, ok := fs.Get("住院医院")
	if !ok || field.Value != "省人民医院" || field.Category != extract.CategoryMedical {
		t.Fatalf("got %+v %v", field, ok)
	}
}

func TestBinder_BindNewWithoutSpecUsesPlaceholderName(t *testing.T) {
	fs := extract.NewFieldStore()
	b := report.NewBinder(nil)

	if err := b.BindNew("事故原因", "追尾", fs); err != nil {
		t.Fatal(err)
	}
	field, ok := fs.Get("事故原因")
	if !ok || field.Category != extract.CategoryIncident {
		t.Fatalf("got %+v %v", field, ok)
	}
}

func TestBinder_FillAllSkipsUnresolved(t *testing.T) {
	fs := newStore(t,
		extract.Field{Key: "姓名", Value: "张三", Category: extract.CategoryPersonal},
		extract.Field{Key: "鉴定结论", Value: "十级伤残", Category: extract.CategoryLegal},
	)
	b := report.NewBinder(report.DefaultSpecs())

	filled := b.FillAll(fs)
	if filled["name"] != "张三" || filled["conclusion"] != "十级伤残" {
		t.Fatalf("got %v", filled)
	}
	if _, present := filled["hospital"]; present {
		t.Fatal("unresolved placeholder must be absent, not empty")
	}
}

func TestLoadSpecs_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholders.yaml")
	content := "- placeholder: hospital\n  aliases: [\"医院\", \"就诊医院\"]\n- placeholder: name\n  aliases: [\"姓名\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	specs, err := report.LoadSpecs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 2 || specs[0].Name != "hospital" || specs[0].Aliases[0] != "医院" {
		t.Fatalf("got %+v", specs)
	}
}

func TestLoadSpecs_InvalidFile(t *testing.T) {
	if _, err := report.LoadSpecs(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
