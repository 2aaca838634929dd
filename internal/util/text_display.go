package util

import (
	"strings"
	"unicode"
)

// Snippet returns a single-line, printable preview of s for logs and error details.
func Snippet(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 200
	}
	s = normalizeWhitespace(SanitizeText(s))

	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			out = append(out, r)
		}
	}
	runes := []rune(strings.TrimSpace(string(out)))
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "..."
	}
	return string(runes)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
