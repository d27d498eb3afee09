package extract_test

import (
	"strings"
	"testing"

	"github.com/wesleysanjose/ocr/pkg/extract"
)

func keys(fields []extract.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

func TestFieldStore_UpsertPreservesInsertionOrder(t *testing.T) {
	fs := extract.NewFieldStore()
	if err := fs.Upsert("姓名", "张三", extract.CategoryPersonal); err != nil {
		t.Fatal(err)
	}
	if err := fs.Upsert("诊断", "骨折", extract.CategoryMedical); err != nil {
		t.Fatal(err)
	}

	got := keys(fs.Entries())
	if got[0] != "姓名" || got[1] != "诊断" {
		t.Fatalf("got order %v", got)
	}

	// Re-upserting the first key must not move it.
	if err := fs.Upsert("姓名", "李四", extract.CategoryPersonal); err != nil {
		t.Fatal(err)
	}
	got = keys(fs.Entries())
	if got[0] != "姓名" || got[1] != "诊断" {
		t.Fatalf("re-upsert moved the entry: %v", got)
	}
	if field, _ := fs.Get("姓名"); field.Value != "李四" {
		t.Fatalf("value not updated: %q", field.Value)
	}
}

func TestFieldStore_UpsertEmptyKeyFails(t *testing.T) {
	fs := extract.NewFieldStore()
	err := fs.Upsert("   ", "value", extract.CategoryPersonal)
	if err == nil {
		t.Fatal("expected validation error for empty key")
	}
	if fs.Len() != 0 {
		t.Fatal("failed upsert must not insert")
	}
}

func TestFieldStore_RenameMovesEntryToEnd(t *testing.T) {
	fs := extract.NewFieldStore()
	fs.Upsert("姓名", "张三", extract.CategoryPersonal)
	fs.Upsert("诊断", "骨折", extract.CategoryMedical)

	if err := fs.Rename("姓名", "患者姓名", "张三", extract.CategoryPersonal); err != nil {
		t.Fatal(err)
	}

	got := keys(fs.Entries())
	if len(got) != 2 || got[0] != "诊断" || got[1] != "患者姓名" {
		t.Fatalf("rename must move the entry to the end, got %v", got)
	}
	if _, ok := fs.Get("姓名"); ok {
		t.Fatal("old key still present after rename")
	}
}

func TestFieldStore_DeleteIsIdempotent(t *testing.T) {
	fs := extract.NewFieldStore()
	fs.Upsert("姓名", "张三", extract.CategoryPersonal)

	fs.Delete("姓名")
	fs.Delete("姓名") // second delete must not panic or error
	fs.Delete("从未存在")

	if fs.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", fs.Len())
	}
}

func TestFieldStore_RecategorizePreservesOrderAndValue(t *testing.T) {
	fs := extract.NewFieldStore()
	fs.Upsert("日期", "2023-01-05", extract.CategoryIncident)
	fs.Upsert("结论", "十级伤残", extract.CategoryLegal)

	if err := fs.Recategorize("日期", extract.CategoryMedical); err != nil {
		t.Fatal(err)
	}

	got := fs.Entries()
	if got[0].Key != "日期" || got[0].Category != extract.CategoryMedical || got[0].Value != "2023-01-05" {
		t.Fatalf("got %+v", got[0])
	}
}

func TestFieldStore_RecategorizeAbsentKeyIsSilent(t *testing.T) {
	fs := extract.NewFieldStore()
	if err := fs.Recategorize("missing", extract.CategoryLegal); err != nil {
		t.Fatalf("recategorize of absent key must be a no-op, got %v", err)
	}
}

func TestFieldStore_RecategorizeUnknownCategoryIsError(t *testing.T) {
	fs := extract.NewFieldStore()
	fs.Upsert("姓名", "张三", extract.CategoryPersonal)
	if err := fs.Recategorize("姓名", extract.Category("financial")); err == nil {
		t.Fatal("expected error for unrecognized category label")
	}
}

func TestFieldStore_EntriesFilterAndSnapshot(t *testing.T) {
	fs := extract.NewFieldStore()
	fs.Upsert("姓名", "张三", extract.CategoryPersonal)
	fs.Upsert("诊断", "骨折", extract.CategoryMedical)
	fs.Upsert("结论", "十级伤残", extract.CategoryLegal)

	medical := fs.Entries(extract.CategoryMedical)
	if len(medical) != 1 || medical[0].Key != "诊断" {
		t.Fatalf("got %v", keys(medical))
	}

	// The snapshot must not observe later mutations.
	snapshot := fs.Entries()
	fs.Delete("姓名")
	if len(snapshot) != 3 {
		t.Fatalf("snapshot changed after mutation: %d entries", len(snapshot))
	}
}

func TestFieldStore_ExportGroupedSkipsEmptyCategories(t *testing.T) {
	fs := extract.NewFieldStore()
	fs.Upsert("姓名", "张三", extract.CategoryPersonal)
	fs.Upsert("结论", "十级伤残", extract.CategoryLegal)

	grouped := fs.ExportGrouped()
	if len(grouped) != 2 {
		t.Fatalf("expected exactly two populated sections, got %d", len(grouped))
	}
	if _, present := grouped[extract.CategoryMedical]; present {
		t.Fatal("empty medical section must be absent, not empty-but-present")
	}
	if _, present := grouped[extract.CategoryIncident]; present {
		t.Fatal("empty incident section must be absent, not empty-but-present")
	}
	if grouped[extract.CategoryPersonal][0] != "姓名: 张三" {
		t.Fatalf("got %q", grouped[extract.CategoryPersonal][0])
	}
}

func TestFieldStore_ExportTextFixedSectionOrder(t *testing.T) {
	fs := extract.NewFieldStore()
	// Inserted out of category order on purpose.
	fs.Upsert("结论", "十级伤残", extract.CategoryLegal)
	fs.Upsert("姓名", "张三", extract.CategoryPersonal)
	fs.Upsert("事故经过", "追尾", extract.CategoryIncident)

	text := fs.ExportText()
	personalAt := strings.Index(text, "个人信息")
	incidentAt := strings.Index(text, "事故信息")
	legalAt := strings.Index(text, "法律信息")

	if personalAt < 0 || incidentAt < 0 || legalAt < 0 {
		t.Fatalf("missing section headings:\n%s", text)
	}
	if !(personalAt < incidentAt && incidentAt < legalAt) {
		t.Fatalf("sections out of order:\n%s", text)
	}
	if strings.Contains(text, "医疗信息") {
		t.Fatal("empty medical section must not be rendered")
	}
}
