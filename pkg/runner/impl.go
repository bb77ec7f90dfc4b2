// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/cicd-ai-toolkit/status-embed/pkg/config"
	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/observability"
	"github.com/cicd-ai-toolkit/status-embed/pkg/output"
	"github.com/cicd-ai-toolkit/status-embed/pkg/platform"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

// Runner executes invocations against one configuration.
type Runner struct {
	cfg       *config.Config
	validator *workflow.Validator
	formatter Formatter
	reporter  Reporter
	annotator *platform.Annotator
	log       observability.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger shared by every stage.
func WithLogger(log observability.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithFormatter replaces the default output.Formatter.
func WithFormatter(f Formatter) Option {
	return func(r *Runner) { r.formatter = f }
}

// WithReporter replaces the default output.Reporter.
func WithReporter(rep Reporter) Option {
	return func(r *Runner) { r.reporter = rep }
}

// WithAnnotator emits failures, warnings and deliveries as CI annotations.
func WithAnnotator(a *platform.Annotator) Option {
	return func(r *Runner) { r.annotator = a }
}

// New creates a runner. Unless replaced, the formatter and reporter are
// built from cfg.Webhook.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	r := &Runner{
		cfg: cfg,
		log: observability.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.validator = workflow.NewValidator(r.log)
	if r.formatter == nil {
		r.formatter = output.NewFormatter(cfg.Webhook, output.WithFormatterLogger(r.log))
	}
	if r.reporter == nil {
		r.reporter = output.NewReporter(cfg.Webhook, output.WithReporterLogger(r.log))
	}
	r.log = r.log.With(observability.String("component", "runner"))

	return r, nil
}

// Run executes one invocation. The returned error, if any, is also stored
// in the result together with its exit code.
func (r *Runner) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{}

	inv, err := r.validator.Validate(req.Inputs)
	if err != nil {
		return r.fail(result, start, "Invalid input", err)
	}
	result.Invocation = inv

	for _, warning := range inv.Warnings {
		r.annotator.Warning("", warning)
	}

	msg, err := r.formatter.Format(inv.Run)
	if err != nil {
		return r.fail(result, start, "Internal error", err)
	}
	result.Message = msg

	if req.DryRun {
		r.log.Info("dry run, message not delivered",
			observability.String("repository", inv.Run.Repository),
			observability.String("run_id", inv.Run.RunID))
		result.ExitCode = errors.ExitSuccess
		result.Duration = time.Since(start)
		return result, nil
	}

	if timeout := r.cfg.Webhook.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := r.reporter.Report(ctx, inv.Webhook, msg); err != nil {
		return r.fail(result, start, "Delivery failed", err)
	}

	r.annotator.Notice("Status posted", fmt.Sprintf("%s status of workflow run %s delivered to Discord",
		inv.Run.Status, inv.Run.RunID))

	result.Delivered = true
	result.ExitCode = errors.ExitSuccess
	result.Duration = time.Since(start)
	return result, nil
}

func (r *Runner) fail(result *RunResult, start time.Time, title string, err error) (*RunResult, error) {
	result.Error = err
	result.ExitCode = errors.ExitCode(err)
	result.Duration = time.Since(start)

	r.log.Error(title, observability.Err(err), observability.Int("exit_code", result.ExitCode))
	r.annotator.Error(title, err.Error())
	return result, err
}
