package extract

import "strings"

// KV is a candidate key/value pair parsed from committed OCR text.
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Delimiters, in precedence order. Scanned source text is CJK, so the
// full-width colon is checked over the whole string before the half-width
// one is considered at all.
const (
	fullWidthColon = "："
	halfWidthColon = ":"
)

// ParseKV splits text into a key and a value at the first full-width colon,
// falling back to the first half-width colon. When neither delimiter is
// present the whole trimmed text becomes the value and the key is empty.
func ParseKV(text string) KV {
	if idx := strings.Index(text, fullWidthColon); idx >= 0 {
		return KV{
			Key:   strings.TrimSpace(text[:idx]),
			Value: strings.TrimSpace(text[idx+len(fullWidthColon):]),
		}
	}
	if idx := strings.Index(text, halfWidthColon); idx >= 0 {
		return KV{
			Key:   strings.TrimSpace(text[:idx]),
			Value: strings.TrimSpace(text[idx+len(halfWidthColon):]),
		}
	}
	return KV{Key: "", Value: strings.TrimSpace(text)}
}
