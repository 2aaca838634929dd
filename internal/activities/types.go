package activities

import (
	"fmt"

	"studyguide/internal/guide"
)

type ExtractContentInput struct {
	RequestID string `json:"request_id"`
	Text      string `json:"text,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

type KeyConcept struct {
	Concept        string `json:"concept"`
	Description    string `json:"description"`
	VisualMetaphor string `json:"visual_metaphor"`
	Importance     string `json:"importance"`
}

type VisualStyle struct {
	ColorScheme string   `json:"color_scheme"`
	Layout      string   `json:"layout"`
	IconsNeeded []string `json:"icons_needed"`
	Mood        string   `json:"mood"`
}

type ExtractionSection struct {
	SectionTitle  string   `json:"section_title"`
	ContentPoints []string `json:"content_points"`
	VisualWeight  string   `json:"visual_weight"`
}

// Extraction is the structured content the vision LLM returns for an infographic.
type Extraction struct {
	Title             string              `json:"title"`
	MainTheme         string              `json:"main_theme"`
	KeyConcepts       []KeyConcept        `json:"key_concepts"`
	VisualStyle       VisualStyle         `json:"visual_style"`
	InfographicPrompt string              `json:"infographic_prompt"`
	Sections          []ExtractionSection `json:"sections"`
}

// StudyGuide maps the extraction onto the study guide shape. Every section shares
// the high-importance metaphors and one reminder per concept.
func (e Extraction) StudyGuide() guide.StudyGuide {
	suggestions := make([]string, 0, len(e.KeyConcepts)+2)
	for _, c := range e.KeyConcepts {
		if c.Importance == "high" {
			suggestions = append(suggestions, c.VisualMetaphor)
		}
	}
	suggestions = append(suggestions,
		"Layout: "+e.VisualStyle.Layout,
		"Color scheme: "+e.VisualStyle.ColorScheme,
	)
	tips := make([]string, 0, len(e.KeyConcepts))
	for _, c := range e.KeyConcepts {
		tips = append(tips, fmt.Sprintf("Remember: %s - %s", c.Concept, c.Description))
	}

	sections := make([]guide.Section, 0, len(e.Sections))
	for _, s := range e.Sections {
		points := s.ContentPoints
		if points == nil {
			points = []string{}
		}
		sections = append(sections, guide.Section{
			Header:            s.SectionTitle,
			BulletPoints:      points,
			VisualSuggestions: append([]string(nil), suggestions...),
			ReminderTips:      append([]string{}, tips...),
		})
	}
	return guide.StudyGuide{
		Title:               e.Title,
		Summary:             "Infographic about " + e.MainTheme,
		StudentBenefitFocus: guide.DefaultBenefitFocus,
		Sections:            sections,
		InfographicStyle:    e.VisualStyle.Mood + ", " + e.VisualStyle.Layout,
	}
}

type GenerateImageInput struct {
	RequestID string `json:"request_id"`
	Prompt    string `json:"prompt"`
}

type Image struct {
	URL string `json:"url"`
}

type GenerateImageOutput struct {
	Images []Image `json:"images"`
}
