package util

import "strings"

// SanitizeText removes NUL bytes, a leading byte-order mark and control characters
// other than common whitespace from uploaded text.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 || ch == 0x7f {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}
