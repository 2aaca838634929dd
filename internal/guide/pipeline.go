package guide

import (
	"context"
	"fmt"
	"strings"

	"studyguide/internal/logger"
	"studyguide/internal/providers"
	"studyguide/internal/util"

	"github.com/google/uuid"
)

const OperationStudyGuide = "study_guide"

// Pipeline turns academic text into a validated StudyGuide through the endpoint driver.
type Pipeline struct {
	driver     *providers.Driver
	requireKey func() error
	log        *logger.Logger
}

// NewPipeline wires the driver. requireKey is consulted before any request; a nil
// check means the endpoints need no credential (mock endpoints only).
func NewPipeline(driver *providers.Driver, requireKey func() error, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{driver: driver, requireKey: requireKey, log: log}
}

func (p *Pipeline) GenerateText(ctx context.Context, content string) (Result, error) {
	if p.requireKey != nil {
		if err := p.requireKey(); err != nil {
			return Result{}, err
		}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Result{}, fmt.Errorf("%w: content is empty", util.ErrUnsupportedInput)
	}

	reqID := uuid.NewString()
	p.log.Debug("generating study guide", "request_id", reqID, "content_sha", util.ContentFingerprint(content), "content_chars", len(content))
	var out StudyGuide
	info, err := p.driver.Run(ctx, providers.GenerateRequest{
		Operation: OperationStudyGuide,
		RequestID: reqID,
		Prompt:    BuildStudyGuidePrompt(content),
	}, func(text string) error {
		g, err := ParseStudyGuide(text)
		if err != nil {
			p.log.Warn("model response rejected", "request_id", reqID, "error", err.Error(), "preview", util.Snippet(text, 160))
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		p.log.Error("study guide generation failed", "request_id", reqID, "error", err.Error())
		return Result{}, err
	}
	if out.Degenerate() {
		p.log.Warn("study guide has no sections", "request_id", reqID, "title", out.Title, "model", info.Model)
	}
	p.log.Info("study guide generated", "request_id", reqID, "model", info.Model, "sections", len(out.Sections))
	return Result{
		Guide:    out,
		Provider: ProviderInfo{Name: info.Name, Model: info.Model, Endpoint: info.Endpoint},
	}, nil
}
