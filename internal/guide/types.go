package guide

// DefaultBenefitFocus is echoed into every guide as student_benefit_focus.
const DefaultBenefitFocus = "Making academic life smoother through simplified study tools, reminders, and tutoring-style explanations."

// StudyGuide field order is part of the output contract with downstream consumers.
type StudyGuide struct {
	Title               string    `json:"title"`
	Summary             string    `json:"summary"`
	StudentBenefitFocus string    `json:"student_benefit_focus"`
	Sections            []Section `json:"sections"`
	InfographicStyle    string    `json:"infographic_style"`
}

type Section struct {
	Header            string   `json:"header"`
	BulletPoints      []string `json:"bullet_points"`
	VisualSuggestions []string `json:"visual_suggestions"`
	ReminderTips      []string `json:"reminder_tips"`
}

// Degenerate reports a guide that passed validation but carries no sections.
func (g StudyGuide) Degenerate() bool {
	return len(g.Sections) == 0
}

type Mode string

const (
	ModeGuide       Mode = "guide"
	ModeInfographic Mode = "infographic"
)

// File is an uploaded document as received from the caller.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Input carries either free text or a file, never both.
type Input struct {
	Text string
	File *File
	Mode Mode
}

type ProviderInfo struct {
	Name     string `json:"name"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint,omitempty"`
}

type Result struct {
	Guide    StudyGuide   `json:"study_guide"`
	ImageURL string       `json:"infographic_url,omitempty"`
	Provider ProviderInfo `json:"provider"`
}
