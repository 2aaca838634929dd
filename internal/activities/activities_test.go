package activities

import (
	"context"
	"errors"
	"testing"

	"studyguide/internal/config"
	"studyguide/internal/falai"
	"studyguide/internal/guide"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
)

type fakeFal struct {
	text     string
	textErr  error
	images   []falai.Image
	llmIn    falai.AnyLLMInput
	imageIn  falai.ImageInput
	imageApp string
}

func (f *fakeFal) CompleteText(_ context.Context, in falai.AnyLLMInput) (string, error) {
	f.llmIn = in
	return f.text, f.textErr
}

func (f *fakeFal) GenerateImages(_ context.Context, app string, in falai.ImageInput) ([]falai.Image, error) {
	f.imageApp = app
	f.imageIn = in
	return f.images, nil
}

const extractionJSON = "```json\n" + `{
  "title": "Photosynthesis",
  "main_theme": "plant energy",
  "key_concepts": [
    {"concept": "Chlorophyll", "description": "Absorbs light", "visual_metaphor": "green solar panel", "importance": "high"},
    {"concept": "Glucose", "description": "Stored sugar", "visual_metaphor": "battery", "importance": "medium"}
  ],
  "visual_style": {"color_scheme": "greens", "layout": "circular flow", "icons_needed": ["sun"], "mood": "academic"},
  "infographic_prompt": "A circular infographic of photosynthesis",
  "sections": [{"section_title": "Inputs", "content_points": ["Light", "Water"], "visual_weight": "50%"}]
}` + "\n```"

func testConfig() config.Config {
	return config.Config{FalAPIKey: "k", FalLLMModel: "vision-model", FalImageApp: "fal-ai/image-app"}
}

func TestExtractContentActivityWithImage(t *testing.T) {
	fal := &fakeFal{text: extractionJSON}
	a := New(testConfig(), fal, nil)
	out, err := a.ExtractContentActivity(context.Background(), ExtractContentInput{ImageURL: "https://cdn/x.png"})
	require.NoError(t, err)
	require.Equal(t, "Photosynthesis", out.Title)
	require.Equal(t, "https://cdn/x.png", fal.llmIn.ImageURL)
	require.Equal(t, "vision-model", fal.llmIn.Model)
	require.Contains(t, fal.llmIn.Prompt, "Analyze the image provided")
}

func TestExtractContentActivityFormatErrorIsNonRetryable(t *testing.T) {
	a := New(testConfig(), &fakeFal{text: "Sure! here is your infographic"}, nil)
	_, err := a.ExtractContentActivity(context.Background(), ExtractContentInput{Text: "cells"})
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.True(t, appErr.NonRetryable())
	require.Equal(t, errTypeFormat, appErr.Type())
}

func TestExtractContentActivityMissingKey(t *testing.T) {
	fal := &fakeFal{text: extractionJSON}
	_, err := New(config.Config{}, fal, nil).ExtractContentActivity(context.Background(), ExtractContentInput{Text: "cells"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "FAL_KEY")
	require.Empty(t, fal.llmIn.Prompt)
}

func TestGenerateImageActivity(t *testing.T) {
	fal := &fakeFal{images: []falai.Image{{URL: "https://cdn/out.png"}}}
	out, err := New(testConfig(), fal, nil).GenerateImageActivity(context.Background(), GenerateImageInput{Prompt: "draw"})
	require.NoError(t, err)
	require.Equal(t, []Image{{URL: "https://cdn/out.png"}}, out.Images)
	require.Equal(t, "fal-ai/image-app", fal.imageApp)
	require.Equal(t, "landscape_16_9", fal.imageIn.ImageSize)
	require.Equal(t, 1, fal.imageIn.NumImages)
	require.True(t, fal.imageIn.EnableSafetyChecker)
}

func TestExtractionStudyGuideMapping(t *testing.T) {
	ex, err := guide.Decode[Extraction](extractionJSON)
	require.NoError(t, err)
	g := ex.StudyGuide()
	require.Equal(t, "Photosynthesis", g.Title)
	require.Equal(t, "Infographic about plant energy", g.Summary)
	require.Equal(t, guide.DefaultBenefitFocus, g.StudentBenefitFocus)
	require.Equal(t, "academic, circular flow", g.InfographicStyle)
	require.Len(t, g.Sections, 1)
	s := g.Sections[0]
	require.Equal(t, "Inputs", s.Header)
	require.Equal(t, []string{"Light", "Water"}, s.BulletPoints)
	require.Equal(t, []string{"green solar panel", "Layout: circular flow", "Color scheme: greens"}, s.VisualSuggestions)
	require.Equal(t, []string{"Remember: Chlorophyll - Absorbs light", "Remember: Glucose - Stored sugar"}, s.ReminderTips)
}
