// Package runner performs one status-embed invocation: validate the inputs,
// build the message, then deliver it unless this is a dry run.
package runner

import (
	"context"
	"time"

	"github.com/cicd-ai-toolkit/status-embed/pkg/output"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

// Formatter builds the message for a validated run.
type Formatter interface {
	Format(run *workflow.Run) (*output.Message, error)
}

// Reporter delivers a message to a webhook.
type Reporter interface {
	Report(ctx context.Context, hook workflow.Webhook, msg *output.Message) error
}

// RunRequest defines the input for a run.
type RunRequest struct {
	// Inputs are the raw invocation inputs.
	Inputs workflow.Inputs
	// DryRun builds the message without delivering it.
	DryRun bool
}

// RunResult defines the output of a run.
type RunResult struct {
	// ExitCode is the process exit code for this run.
	ExitCode int
	// Invocation is the validated input, nil if validation failed.
	Invocation *workflow.Invocation
	// Message is the built message, nil if building was not reached.
	Message *output.Message
	// Delivered reports whether the webhook accepted the message.
	Delivered bool
	// Error is the failure, if any.
	Error error
	// Duration is the execution duration.
	Duration time.Duration
}
