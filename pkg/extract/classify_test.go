package extract_test

import (
	"testing"

	"github.com/wesleysanjose/ocr/pkg/extract"
)

func TestClassify_BasicKeywords(t *testing.T) {
	cases := []struct {
		key  string
		want extract.Category
	}{
		{"姓名", extract.CategoryPersonal},
		{"联系电话", extract.CategoryPersonal},
		{"就诊医院", extract.CategoryMedical},
		{"临床诊断", extract.CategoryMedical},
		{"事故经过", extract.CategoryIncident},
		{"责任认定", extract.CategoryLegal},
		{"伤残等级", extract.CategoryLegal},
		{"Hospital Name", extract.CategoryPersonal}, // "name" hits personal first
		{"diagnosis", extract.CategoryMedical},
	}

	for _, tc := range cases {
		if got := extract.Classify(tc.key); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.key, got, tc.want)
		}
	}
}

func TestClassify_PrecedenceOnAmbiguousKeys(t *testing.T) {
	// One ambiguous key per adjacent category pair; the earlier category
	// in the fixed order (personal, medical, incident, legal) must win.
	cases := []struct {
		key  string
		want extract.Category
	}{
		// 姓名 (personal) vs 住院 (medical)
		{"住院病人姓名", extract.CategoryPersonal},
		// 入院 (medical) vs 日期 (incident)
		{"入院日期", extract.CategoryMedical},
		// 事故 (incident) vs 鉴定/结论 (legal)
		{"事故鉴定结论", extract.CategoryIncident},
	}

	for _, tc := range cases {
		if got := extract.Classify(tc.key); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.key, got, tc.want)
		}
	}
}

func TestClassify_NoMatchDefaultsToPersonal(t *testing.T) {
	if got := extract.Classify("完全无关内容"); got != extract.CategoryPersonal {
		t.Fatalf("expected personal default, got %s", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if got := extract.Classify("DIAGNOSIS CODE"); got != extract.CategoryMedical {
		t.Fatalf("expected medical, got %s", got)
	}
}

func TestParseCategory_KnownLabels(t *testing.T) {
	for _, label := range []string{"personal", "Medical", " INCIDENT ", "legal"} {
		if _, err := extract.ParseCategory(label); err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", label, err)
		}
	}
}

func TestParseCategory_UnknownLabelIsError(t *testing.T) {
	if _, err := extract.ParseCategory("financial"); err == nil {
		t.Fatal("expected error for unknown category label")
	}
}
