// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/status-embed/pkg/config"
	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/observability"
	"github.com/cicd-ai-toolkit/status-embed/pkg/platform"
	"github.com/cicd-ai-toolkit/status-embed/pkg/runner"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

// actionInputPrefix is how GitHub Actions passes `with:` inputs to a
// container action.
const actionInputPrefix = "INPUT_"

var inputUsage = map[string]string{
	workflow.FieldWorkflowName:       "Name of the workflow",
	workflow.FieldRunID:              "Numeric ID of the workflow run",
	workflow.FieldRunNumber:          "Run number of the workflow run",
	workflow.FieldStatus:             "Conclusion of the run: success, failure or cancelled",
	workflow.FieldRepository:         "Repository in owner/name form",
	workflow.FieldActor:              "Login of the user that triggered the run",
	workflow.FieldRef:                "Branch or tag ref the run was triggered on",
	workflow.FieldSHA:                "Commit SHA of the run",
	workflow.FieldWebhookID:          "Discord webhook ID",
	workflow.FieldWebhookToken:       "Discord webhook token",
	workflow.FieldPRAuthorLogin:      "Login of the pull request author",
	workflow.FieldPRNumber:           "Pull request number",
	workflow.FieldPRTitle:            "Pull request title",
	workflow.FieldPRSource:           "Pull request head label (owner:branch)",
	workflow.FieldPullRequestPayload: "JSON pull request object (or array of them); replaces the pr_* inputs",
}

// sendOptions holds the flags for the send command.
type sendOptions struct {
	inputs workflow.Inputs
	dryRun bool
}

func newSendCmd(g *globalOptions) *cobra.Command {
	o := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send [" + strings.Join(workflow.FieldOrder, " ") + "]",
		Short: "Post the status of a workflow run",
		Long: `Validate the run description, build the Discord embed and post it.

Inputs can be given as flags, as positional arguments in the order shown
above, or as INPUT_<NAME> environment variables. With --dry-run the embed is
printed as JSON instead of being posted.`,
		Args: cobra.MaximumNArgs(len(workflow.FieldOrder)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, g, o, args)
		},
	}

	for _, name := range workflow.FieldOrder {
		cmd.Flags().StringVar(o.inputs.Ptr(name), flagName(name), "", inputUsage[name])
	}
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Print the message instead of posting it")

	return cmd
}

func runSend(cmd *cobra.Command, g *globalOptions, o *sendOptions, args []string) error {
	in, err := resolveInputs(cmd, o.inputs, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return err
	}

	level := cfg.Global.LogLevel
	if g.debug {
		level = "debug"
	}
	log := observability.NewLogger(level,
		observability.WithOutput(cmd.ErrOrStderr()),
		observability.WithMaskedValues(strings.TrimSpace(in.WebhookToken)))

	for key := range config.GetEnvConfig() {
		log.Debug("config override from environment", observability.String("key", key))
	}

	ci := platform.GetPlatformFromConfig(cfg.Global.Platform)
	log.Debug("platform resolved", observability.String("platform", ci))

	r, err := runner.New(cfg,
		runner.WithLogger(log),
		runner.WithAnnotator(platform.NewAnnotator(cmd.OutOrStdout(), ci)))
	if err != nil {
		return errors.InternalError(err.Error())
	}

	result, err := r.Run(cmd.Context(), &runner.RunRequest{Inputs: in, DryRun: o.dryRun})
	if err != nil {
		return err
	}

	if o.dryRun {
		data, err := result.Message.JSON()
		if err != nil {
			return errors.InternalError(fmt.Sprintf("failed to encode message: %v", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}
	return nil
}

// resolveInputs fills every input from, in order of precedence, its flag,
// its positional argument and its INPUT_<NAME> environment variable.
func resolveInputs(cmd *cobra.Command, flags workflow.Inputs, args []string) (workflow.Inputs, error) {
	in := flags
	for i, name := range workflow.FieldOrder {
		if cmd.Flags().Changed(flagName(name)) {
			if i < len(args) {
				return in, errors.ConfigError(
					fmt.Sprintf("input %s given both as --%s and as positional argument %d", name, flagName(name), i+1), nil)
			}
			continue
		}
		if i < len(args) {
			*in.Ptr(name) = args[i]
			continue
		}
		if v, ok := os.LookupEnv(actionInputPrefix + strings.ToUpper(name)); ok {
			*in.Ptr(name) = v
		}
	}
	return in, nil
}

func loadConfig(path string) (*config.Config, error) {
	root, err := config.DetectProjectRoot()
	if err != nil {
		return nil, errors.ConfigError("failed to detect project root", err)
	}

	cfg, err := config.NewLoader().WithProjectRoot(root).WithPath(path).Load()
	if err != nil {
		return nil, errors.ConfigError("failed to load configuration", err)
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, errors.ConfigError("invalid configuration", err)
	}
	return cfg, nil
}

func flagName(input string) string {
	return strings.ReplaceAll(input, "_", "-")
}
