package falai

import (
	"context"
	"fmt"
	"strings"

	"studyguide/internal/util"
)

const AnyLLMApp = "fal-ai/any-llm"

type AnyLLMInput struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	ImageURL    string  `json:"image_url,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature"`
}

type AnyLLMOutput struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

type ImageInput struct {
	Prompt              string `json:"prompt"`
	ImageSize           string `json:"image_size"`
	NumImages           int    `json:"num_images"`
	EnableSafetyChecker bool   `json:"enable_safety_checker"`
	Seed                int64  `json:"seed,omitempty"`
}

type Image struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

type ImageOutput struct {
	Images []Image `json:"images"`
}

// CompleteText runs the any-llm app and returns its raw text output.
func (c *Client) CompleteText(ctx context.Context, in AnyLLMInput) (string, error) {
	var out AnyLLMOutput
	if err := c.Subscribe(ctx, AnyLLMApp, in, &out); err != nil {
		return "", fmt.Errorf("failed to process content with LLM: %w", err)
	}
	if strings.TrimSpace(out.Output) == "" {
		detail := "no response text from fal.ai LLM"
		if out.Error != "" {
			detail += ": " + out.Error
		}
		return "", fmt.Errorf("%w: %s", util.ErrMalformedEnvelope, detail)
	}
	return out.Output, nil
}

// GenerateImages runs an image app. An empty result is not an error here.
func (c *Client) GenerateImages(ctx context.Context, app string, in ImageInput) ([]Image, error) {
	var out ImageOutput
	if err := c.Subscribe(ctx, app, in, &out); err != nil {
		return nil, fmt.Errorf("failed to generate infographic: %w", err)
	}
	images := make([]Image, 0, len(out.Images))
	for _, img := range out.Images {
		if strings.TrimSpace(img.URL) != "" {
			images = append(images, img)
		}
	}
	return images, nil
}
