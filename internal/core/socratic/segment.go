// Package socratic derives the fixed study-session question sequence from
// extracted document text. Everything here is a pure function of its inputs.
package socratic

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinSegmentChars filters out headers, captions and other short fragments.
// Only trimmed pieces strictly longer than this qualify as quotable material.
const MinSegmentChars = 40

var newlineRuns = regexp.MustCompile(`\n+`)

// Segments splits document text into quotable sentence pieces: newline runs
// collapse to a single space, the result is split on the literal '.', and
// each piece is trimmed. The '.' boundary is deliberately naive (it breaks on
// abbreviations and decimals) and is kept for reproducibility.
func Segments(text string) []string {
	flat := newlineRuns.ReplaceAllString(text, " ")
	parts := strings.Split(flat, ".")

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) > MinSegmentChars {
			out = append(out, part)
		}
	}
	return out
}
