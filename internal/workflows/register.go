package workflows

import (
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

func Register(w worker.Worker) {
	w.RegisterWorkflowWithOptions(InfographicTextWorkflow, workflow.RegisterOptions{Name: InfographicTextWorkflowName})
	w.RegisterWorkflowWithOptions(InfographicImageWorkflow, workflow.RegisterOptions{Name: InfographicImageWorkflowName})
}
