package guide

import (
	"encoding/json"
	"strings"
	"unicode"
)

// MarshalIndent renders the guide with two-space indentation in contract field order.
func MarshalIndent(g StudyGuide) ([]byte, error) {
	return json.MarshalIndent(g.withEmptySlices(), "", "  ")
}

// DownloadName is the attachment file name for a guide.
func DownloadName(g StudyGuide) string {
	slug := Slug(g.Title)
	if slug == "" {
		slug = "untitled"
	}
	return "study-guide-" + slug + ".json"
}

// Slug lowercases s and joins its letter and digit runs with single dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	out := b.String()
	if len(out) > 60 {
		out = strings.TrimRight(out[:60], "-")
	}
	return out
}
