package render

import (
	"fmt"
	"strings"

	"studyguide/internal/guide"
)

// Markdown renders a guide as a readable document. Empty lists are omitted.
func Markdown(res guide.Result) string {
	g := res.Guide
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", oneLine(g.Title))
	if s := strings.TrimSpace(g.Summary); s != "" {
		b.WriteString(s)
		b.WriteString("\n\n")
	}
	if res.ImageURL != "" {
		fmt.Fprintf(&b, "![Infographic](%s)\n\n", res.ImageURL)
	}
	if g.Degenerate() {
		b.WriteString("_No sections were generated._\n\n")
	}
	for _, s := range g.Sections {
		fmt.Fprintf(&b, "## %s\n\n", oneLine(s.Header))
		list(&b, "Key Points", s.BulletPoints, false)
		list(&b, "Visual Suggestions", s.VisualSuggestions, true)
		list(&b, "Reminder Tips", s.ReminderTips, false)
	}
	if st := strings.TrimSpace(g.InfographicStyle); st != "" {
		fmt.Fprintf(&b, "---\n\nStyle: %s\n", st)
	}
	return b.String()
}

func list(b *strings.Builder, title string, items []string, italic bool) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n", title)
	for _, it := range items {
		it = oneLine(it)
		if italic && it != "" {
			it = "_" + it + "_"
		}
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
