package guide

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"studyguide/internal/util"
)

// ParseStudyGuide normalizes a model response and validates it into a StudyGuide.
// Unparseable text is ErrFormat; parseable JSON of the wrong shape is ErrSchema.
func ParseStudyGuide(raw string) (StudyGuide, error) {
	msg, err := Normalize(raw)
	if err != nil {
		return StudyGuide{}, err
	}
	return Validate(msg)
}

// Validate requires a non-empty string title and an array of sections.
func Validate(msg json.RawMessage) (StudyGuide, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(msg, &doc); err != nil {
		return StudyGuide{}, schemaError("response is not a JSON object")
	}

	var title string
	if rawTitle, ok := doc["title"]; !ok || json.Unmarshal(rawTitle, &title) != nil || strings.TrimSpace(title) == "" {
		return StudyGuide{}, schemaError("missing title")
	}
	rawSections, ok := doc["sections"]
	if !ok || !isArray(rawSections) {
		return StudyGuide{}, schemaError("sections must be an array")
	}

	var g StudyGuide
	if err := json.Unmarshal(msg, &g); err != nil {
		return StudyGuide{}, schemaError(err.Error())
	}
	return g.withEmptySlices(), nil
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func schemaError(detail string) error {
	return fmt.Errorf("%w received from API: %s", util.ErrSchema, detail)
}

// withEmptySlices replaces nil slices so the guide always serializes arrays.
func (g StudyGuide) withEmptySlices() StudyGuide {
	out := g
	out.Sections = make([]Section, 0, len(g.Sections))
	for _, s := range g.Sections {
		out.Sections = append(out.Sections, Section{
			Header:            s.Header,
			BulletPoints:      nonNil(s.BulletPoints),
			VisualSuggestions: nonNil(s.VisualSuggestions),
			ReminderTips:      nonNil(s.ReminderTips),
		})
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
