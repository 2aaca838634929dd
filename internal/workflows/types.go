package workflows

import (
	"studyguide/internal/activities"
	"studyguide/internal/guide"
)

const (
	InfographicTextWorkflowName  = "InfographicTextWorkflow"
	InfographicImageWorkflowName = "InfographicImageWorkflow"
)

type InfographicTextInput struct {
	RequestID string `json:"request_id"`
	Text      string `json:"text"`
}

type InfographicImageInput struct {
	RequestID string `json:"request_id"`
	ImageURL  string `json:"image_url"`
}

// InfographicOutput is the completed result of either workflow.
type InfographicOutput struct {
	Images     []activities.Image `json:"images"`
	StudyGuide guide.StudyGuide   `json:"study_guide"`
}

type InfographicProgress struct {
	RequestID   string            `json:"request_id"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	Steps       map[string]string `json:"steps"`
	Error       string            `json:"error,omitempty"`
}
