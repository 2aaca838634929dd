package providers

import (
	"context"
	"fmt"
	"strings"

	"studyguide/internal/util"
)

// MockProvider answers every prompt with a deterministic fenced study guide.
type MockProvider struct {
	model string
}

func NewMockProvider(model string) *MockProvider {
	if model == "" {
		model = "mock-study-guide-v1"
	}
	return &MockProvider{model: model}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	tag := util.ContentFingerprint(req.Prompt)[:8]
	text := fmt.Sprintf("```json\n"+`{
  "title": "Mock Study Guide %s",
  "summary": "Deterministic mock output; configure a real model endpoint for semantic quality.",
  "student_benefit_focus": "Making academic life smoother through simplified study tools, reminders, and tutoring-style explanations.",
  "sections": [
    {
      "header": "Overview",
      "bullet_points": ["Prompt length %d characters"],
      "visual_suggestions": ["Single summary card"],
      "reminder_tips": ["Replace the mock endpoint before studying"]
    }
  ],
  "infographic_style": "clean, minimal, academic, step-by-step"
}`+"\n```", tag, len(strings.TrimSpace(req.Prompt)))
	return GenerateResponse{Text: text}, ProviderInfo{Name: "mock", Model: m.model, Endpoint: "mock"}, nil
}
