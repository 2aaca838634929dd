package visual

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studyguide/internal/guide"
	"studyguide/internal/util"
	"studyguide/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
)

// Uploader stores a binary and returns a locator the workflows can fetch.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, fileName string) (string, error)
}

// TemporalRunner uploads through fal.ai storage and runs the infographic workflows on a worker.
type TemporalRunner struct {
	client    tclient.Client
	uploader  Uploader
	taskQueue string
	timeout   time.Duration
}

func NewTemporalRunner(c tclient.Client, uploader Uploader, taskQueue string, timeout time.Duration) *TemporalRunner {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &TemporalRunner{client: c, uploader: uploader, taskQueue: taskQueue, timeout: timeout}
}

func (r *TemporalRunner) UploadBinary(ctx context.Context, f guide.File) (string, error) {
	return r.uploader.Upload(ctx, f.Data, guide.MediaType(f.ContentType), f.Name)
}

func (r *TemporalRunner) RunWorkflow(ctx context.Context, name string, input any) (workflows.InfographicOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	run, err := r.client.ExecuteWorkflow(ctx, tclient.StartWorkflowOptions{
		ID:                       "infographic-" + uuid.NewString(),
		TaskQueue:                r.taskQueue,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionTimeout: r.timeout,
	}, name, input)
	if err != nil {
		return workflows.InfographicOutput{}, fmt.Errorf("%w: start %s: %v", util.ErrTransport, name, err)
	}
	var out workflows.InfographicOutput
	if err := run.Get(ctx, &out); err != nil {
		return workflows.InfographicOutput{}, workflowError(err)
	}
	return out, nil
}

// workflowError restores the error kind carried by the failing activity.
func workflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch appErr.Type() {
		case "ConfigError":
			return fmt.Errorf("%w: %s", util.ErrConfig, appErr.Error())
		case "FormatError":
			return fmt.Errorf("%w: %s", util.ErrFormat, appErr.Error())
		default:
			return fmt.Errorf("%w: %s", util.ErrTransport, appErr.Error())
		}
	}
	return fmt.Errorf("%w: infographic workflow: %v", util.ErrTransport, err)
}
