// Package ocrtext turns raw per-page OCR output into selectable lines.
package ocrtext

import "strings"

// Line is one non-empty trimmed line of OCR text. Index is the position in
// the original newline split, so a Line can always be mapped back to its
// source line number even after blank lines are dropped.
type Line struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Tokenize splits raw OCR text into an ordered sequence of lines. Segments
// that trim to the empty string are dropped; their index is not reused.
// An empty input yields an empty (non-nil) sequence, never an error.
func Tokenize(raw string) []Line {
	lines := make([]Line, 0)
	if raw == "" {
		return lines
	}

	for i, segment := range strings.Split(raw, "\n") {
		text := strings.TrimSpace(segment)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Index: i, Text: text})
	}
	return lines
}
