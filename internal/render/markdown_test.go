package render

import (
	"strings"
	"testing"

	"studyguide/internal/guide"
)

func TestMarkdown(t *testing.T) {
	md := Markdown(guide.Result{
		Guide: guide.StudyGuide{
			Title:   "Newton's Laws",
			Summary: "Motion basics",
			Sections: []guide.Section{{
				Header:            "First Law",
				BulletPoints:      []string{"Inertia"},
				VisualSuggestions: []string{"Ball at rest"},
				ReminderTips:      []string{},
			}},
			InfographicStyle: "clean",
		},
		ImageURL: "https://cdn/newton.png",
	})
	for _, want := range []string{
		"# Newton's Laws\n",
		"![Infographic](https://cdn/newton.png)",
		"## First Law\n",
		"**Key Points:**\n\n- Inertia\n",
		"- _Ball at rest_\n",
		"Style: clean\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Reminder Tips") {
		t.Fatalf("empty lists should be omitted:\n%s", md)
	}
}

func TestMarkdownDegenerate(t *testing.T) {
	md := Markdown(guide.Result{Guide: guide.StudyGuide{Title: "Empty"}})
	if !strings.Contains(md, "No sections were generated") {
		t.Fatalf("expected degenerate notice:\n%s", md)
	}
}
