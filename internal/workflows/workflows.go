package workflows

import (
	"time"

	"studyguide/internal/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetProgress = "GetProgress"

const (
	stepExtract  = "extract_content"
	stepGenerate = "generate_image"
	stepMap      = "map_study_guide"
)

func InfographicTextWorkflow(ctx workflow.Context, input InfographicTextInput) (InfographicOutput, error) {
	return runInfographic(ctx, activities.ExtractContentInput{RequestID: input.RequestID, Text: input.Text})
}

func InfographicImageWorkflow(ctx workflow.Context, input InfographicImageInput) (InfographicOutput, error) {
	return runInfographic(ctx, activities.ExtractContentInput{RequestID: input.RequestID, ImageURL: input.ImageURL})
}

func runInfographic(ctx workflow.Context, in activities.ExtractContentInput) (InfographicOutput, error) {
	progress := InfographicProgress{
		RequestID:   in.RequestID,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (InfographicProgress, error) {
		return progress, nil
	}); err != nil {
		return InfographicOutput{}, err
	}
	fail := func(step string, err error) (InfographicOutput, error) {
		progress.Steps[step] = "failed"
		progress.Status = "failed"
		progress.Error = err.Error()
		return InfographicOutput{}, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 3 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	progress.CurrentStep = stepExtract
	var extraction activities.Extraction
	if err := workflow.ExecuteActivity(ctx, "ExtractContentActivity", in).Get(ctx, &extraction); err != nil {
		return fail(stepExtract, err)
	}
	progress.Steps[stepExtract] = "done"

	progress.CurrentStep = stepGenerate
	var images activities.GenerateImageOutput
	if err := workflow.ExecuteActivity(ctx, "GenerateImageActivity", activities.GenerateImageInput{
		RequestID: in.RequestID,
		Prompt:    extraction.InfographicPrompt,
	}).Get(ctx, &images); err != nil {
		return fail(stepGenerate, err)
	}
	progress.Steps[stepGenerate] = "done"

	progress.CurrentStep = stepMap
	out := InfographicOutput{
		Images:     images.Images,
		StudyGuide: extraction.StudyGuide(),
	}
	if out.Images == nil {
		out.Images = []activities.Image{}
	}
	progress.Steps[stepMap] = "done"
	progress.CurrentStep = "completed"
	progress.Status = "completed"
	return out, nil
}
