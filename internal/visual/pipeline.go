package visual

import (
	"context"
	"fmt"
	"strings"

	"studyguide/internal/guide"
	"studyguide/internal/logger"
	"studyguide/internal/util"
	"studyguide/internal/workflows"

	"github.com/google/uuid"
)

// Runner is the external capability behind the infographic pipeline.
type Runner interface {
	UploadBinary(ctx context.Context, f guide.File) (string, error)
	RunWorkflow(ctx context.Context, name string, input any) (workflows.InfographicOutput, error)
}

// Pipeline produces a study guide together with a generated infographic image.
type Pipeline struct {
	runner     Runner
	requireKey func() error
	info       guide.ProviderInfo
	log        *logger.Logger
}

func NewPipeline(runner Runner, requireKey func() error, info guide.ProviderInfo, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{runner: runner, requireKey: requireKey, info: info, log: log}
}

func (p *Pipeline) FromText(ctx context.Context, content string) (guide.Result, error) {
	if err := p.checkKey(); err != nil {
		return guide.Result{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return guide.Result{}, fmt.Errorf("%w: content is empty", util.ErrUnsupportedInput)
	}
	reqID := uuid.NewString()
	out, err := p.runner.RunWorkflow(ctx, workflows.InfographicTextWorkflowName, workflows.InfographicTextInput{
		RequestID: reqID,
		Text:      content,
	})
	if err != nil {
		p.log.Error("infographic workflow failed", "request_id", reqID, "workflow", workflows.InfographicTextWorkflowName, "error", err.Error())
		return guide.Result{}, err
	}
	return p.result(reqID, out)
}

// FromImage uploads the binary before starting the workflow.
func (p *Pipeline) FromImage(ctx context.Context, f guide.File) (guide.Result, error) {
	if err := p.checkKey(); err != nil {
		return guide.Result{}, err
	}
	reqID := uuid.NewString()
	locator, err := p.runner.UploadBinary(ctx, f)
	if err != nil {
		p.log.Error("image upload failed", "request_id", reqID, "file", f.Name, "error", err.Error())
		return guide.Result{}, err
	}
	p.log.Info("image uploaded", "request_id", reqID, "file", f.Name, "bytes", len(f.Data))
	out, err := p.runner.RunWorkflow(ctx, workflows.InfographicImageWorkflowName, workflows.InfographicImageInput{
		RequestID: reqID,
		ImageURL:  locator,
	})
	if err != nil {
		p.log.Error("infographic workflow failed", "request_id", reqID, "workflow", workflows.InfographicImageWorkflowName, "error", err.Error())
		return guide.Result{}, err
	}
	return p.result(reqID, out)
}

func (p *Pipeline) checkKey() error {
	if p.requireKey == nil {
		return nil
	}
	return p.requireKey()
}

func (p *Pipeline) result(reqID string, out workflows.InfographicOutput) (guide.Result, error) {
	var url string
	for _, img := range out.Images {
		if strings.TrimSpace(img.URL) != "" {
			url = img.URL
			break
		}
	}
	if url == "" {
		return guide.Result{}, fmt.Errorf("%w by the image service", util.ErrNoImage)
	}
	g := out.StudyGuide
	if g.Degenerate() {
		p.log.Warn("infographic study guide has no sections", "request_id", reqID, "title", g.Title)
	}
	return guide.Result{Guide: g, ImageURL: url, Provider: p.info}, nil
}
