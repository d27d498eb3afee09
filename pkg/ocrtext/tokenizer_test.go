package ocrtext_test

import (
	"testing"

	"github.com/wesleysanjose/ocr/pkg/ocrtext"
)

func TestTokenize_DropsBlankLinesButKeepsIndices(t *testing.T) {
	raw := "姓名：张三\n\n  \n性别：男\n年龄：42"

	lines := ocrtext.Tokenize(raw)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	// Indices come from the original split, not the filtered output.
	want := []ocrtext.Line{
		{Index: 0, Text: "姓名：张三"},
		{Index: 3, Text: "性别：男"},
		{Index: 4, Text: "年龄：42"},
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d: got %+v, want %+v", i, lines[i], w)
		}
	}
}

func TestTokenize_TrimsWhitespace(t *testing.T) {
	lines := ocrtext.Tokenize("  医院: 市一医院  \r")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "医院: 市一医院" {
		t.Fatalf("expected trimmed text, got %q", lines[0].Text)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	lines := ocrtext.Tokenize("")
	if lines == nil {
		t.Fatal("expected empty sequence, got nil")
	}
	if len(lines) != 0 {
		t.Fatalf("expected 0 lines, got %d", len(lines))
	}
}

func TestTokenize_OnlyBlankLines(t *testing.T) {
	lines := ocrtext.Tokenize("\n  \n\t\n")
	if len(lines) != 0 {
		t.Fatalf("expected 0 lines, got %d", len(lines))
	}
}
