package extract_test

import (
	"testing"

	"github.com/wesleysanjose/ocr/pkg/extract"
)

func TestParseKV_FullWidthColon(t *testing.T) {
	kv := extract.ParseKV("姓名：张三")
	if kv.Key != "姓名" || kv.Value != "张三" {
		t.Fatalf("got %+v", kv)
	}
}

func TestParseKV_HalfWidthColon(t *testing.T) {
	kv := extract.ParseKV("hospital: 市一医院")
	if kv.Key != "hospital" || kv.Value != "市一医院" {
		t.Fatalf("got %+v", kv)
	}
}

func TestParseKV_FullWidthWinsEvenWhenHalfWidthComesFirst(t *testing.T) {
	// The full-width colon is scanned over the whole string before the
	// half-width one is considered, so it wins regardless of position.
	kv := extract.ParseKV("姓名 : 张：三")
	if kv.Key != "姓名 : 张" || kv.Value != "三" {
		t.Fatalf("got %+v", kv)
	}
}

func TestParseKV_FullWidthPrecedenceSplitsValue(t *testing.T) {
	kv := extract.ParseKV("姓名：张 : 三")
	if kv.Key != "姓名" {
		t.Fatalf("expected key 姓名, got %q", kv.Key)
	}
	if kv.Value != "张 : 三" {
		t.Fatalf("expected value to keep the half-width colon, got %q", kv.Value)
	}
}

func TestParseKV_NoDelimiter(t *testing.T) {
	kv := extract.ParseKV("无分隔符文本")
	if kv.Key != "" {
		t.Fatalf("expected empty key, got %q", kv.Key)
	}
	if kv.Value != "无分隔符文本" {
		t.Fatalf("expected whole text as value, got %q", kv.Value)
	}
}

func TestParseKV_TrimsKeyAndValue(t *testing.T) {
	kv := extract.ParseKV("  入院日期 ：  2023年1月5日  ")
	if kv.Key != "入院日期" || kv.Value != "2023年1月5日" {
		t.Fatalf("got %+v", kv)
	}
}

func TestParseKV_EmptyValueAfterColon(t *testing.T) {
	kv := extract.ParseKV("诊断：")
	if kv.Key != "诊断" || kv.Value != "" {
		t.Fatalf("got %+v", kv)
	}
}
