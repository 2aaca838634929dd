package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyguide/internal/config"
	"studyguide/internal/falai"
	"studyguide/internal/guide"
	"studyguide/internal/logger"
	"studyguide/internal/util"

	"go.temporal.io/sdk/temporal"
)

const (
	errTypeConfig = "ConfigError"
	errTypeFormat = "FormatError"
	errTypeFalAI  = "FalAIError"
)

// FalAPI is the part of the fal.ai client the activities use.
type FalAPI interface {
	CompleteText(ctx context.Context, in falai.AnyLLMInput) (string, error)
	GenerateImages(ctx context.Context, app string, in falai.ImageInput) ([]falai.Image, error)
}

type Activities struct {
	cfg config.Config
	fal FalAPI
	log *logger.Logger
}

func New(cfg config.Config, fal FalAPI, log *logger.Logger) *Activities {
	if log == nil {
		log = logger.Nop()
	}
	return &Activities{cfg: cfg, fal: fal, log: log}
}

func (a *Activities) ExtractContentActivity(ctx context.Context, in ExtractContentInput) (Extraction, error) {
	if err := a.cfg.RequireFalKey(); err != nil {
		return Extraction{}, temporal.NewNonRetryableApplicationError(err.Error(), errTypeConfig, err)
	}
	hasImage := strings.TrimSpace(in.ImageURL) != ""
	if !hasImage && strings.TrimSpace(in.Text) == "" {
		err := fmt.Errorf("%w: content is empty", util.ErrUnsupportedInput)
		return Extraction{}, temporal.NewNonRetryableApplicationError(err.Error(), errTypeFormat, err)
	}

	raw, err := a.fal.CompleteText(ctx, falai.AnyLLMInput{
		Model:       a.cfg.FalLLMModel,
		Prompt:      extractionPrompt(in.Text, hasImage),
		ImageURL:    in.ImageURL,
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return Extraction{}, classify(err)
	}
	out, err := guide.Decode[Extraction](raw)
	if err != nil {
		a.log.Warn("infographic extraction was not JSON", "request_id", in.RequestID, "error", err.Error())
		return Extraction{}, temporal.NewNonRetryableApplicationError(err.Error(), errTypeFormat, err)
	}
	if strings.TrimSpace(out.InfographicPrompt) == "" {
		err := fmt.Errorf("%w: extraction has no infographic_prompt", util.ErrSchema)
		return Extraction{}, temporal.NewNonRetryableApplicationError(err.Error(), errTypeFormat, err)
	}
	a.log.Info("infographic content extracted", "request_id", in.RequestID, "title", out.Title, "sections", len(out.Sections))
	return out, nil
}

func (a *Activities) GenerateImageActivity(ctx context.Context, in GenerateImageInput) (GenerateImageOutput, error) {
	if err := a.cfg.RequireFalKey(); err != nil {
		return GenerateImageOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), errTypeConfig, err)
	}
	images, err := a.fal.GenerateImages(ctx, a.cfg.FalImageApp, falai.ImageInput{
		Prompt:              in.Prompt,
		ImageSize:           "landscape_16_9",
		NumImages:           1,
		EnableSafetyChecker: true,
	})
	if err != nil {
		return GenerateImageOutput{}, classify(err)
	}
	out := GenerateImageOutput{Images: make([]Image, 0, len(images))}
	for _, img := range images {
		out.Images = append(out.Images, Image{URL: img.URL})
	}
	a.log.Info("infographic image generated", "request_id", in.RequestID, "images", len(out.Images))
	return out, nil
}

// classify lets Temporal retry rate limits and server faults but not client errors.
func classify(err error) error {
	var apiErr *falai.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.StatusCode != 429 {
		return temporal.NewNonRetryableApplicationError(err.Error(), errTypeFalAI, err)
	}
	if errors.Is(err, util.ErrMalformedEnvelope) || errors.Is(err, util.ErrConfig) {
		return temporal.NewNonRetryableApplicationError(err.Error(), errTypeFalAI, err)
	}
	return err
}
