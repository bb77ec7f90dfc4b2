// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package workflow

import (
	"strconv"
	"strings"

	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/observability"
	"github.com/cicd-ai-toolkit/status-embed/pkg/webhook"
)

// requiredFields are checked in order; the first missing one is reported.
var requiredFields = []string{
	FieldWorkflowName,
	FieldRunID,
	FieldRunNumber,
	FieldStatus,
	FieldRepository,
	FieldActor,
	FieldRef,
	FieldSHA,
	FieldWebhookID,
	FieldWebhookToken,
}

// pullRequestFields must be supplied together or not at all.
var pullRequestFields = []string{
	FieldPRAuthorLogin,
	FieldPRNumber,
	FieldPRTitle,
	FieldPRSource,
}

// Validator turns raw Inputs into an Invocation.
type Validator struct {
	log observability.Logger
}

// NewValidator creates a validator that traces its decisions to log.
func NewValidator(log observability.Logger) *Validator {
	if log == nil {
		log = observability.NewNop()
	}
	return &Validator{log: log.With(observability.String("component", "validator"))}
}

// Validate checks the inputs and returns the first rule violation as an
// *errors.Error. A malformed pull request payload is not a violation: it
// is recorded in Invocation.Warnings and the individual fields are used.
func (v *Validator) Validate(in Inputs) (*Invocation, error) {
	values := make(map[string]string, len(FieldOrder))
	for _, name := range FieldOrder {
		values[name] = normalize(in.Get(name))
	}

	for _, name := range requiredFields {
		if values[name] == "" {
			v.log.Debug("required input missing", observability.String("field", name))
			return nil, errors.MissingField(name)
		}
	}

	status, ok := ParseStatus(values[FieldStatus])
	if !ok {
		v.log.Debug("status not recognized", observability.String("value", values[FieldStatus]))
		return nil, errors.InvalidEnum(FieldStatus, values[FieldStatus], AllowedStatuses())
	}
	v.log.Debug("status parsed", observability.String("status", status.String()))

	if err := validateRepository(values[FieldRepository]); err != nil {
		v.log.Debug("repository rejected", observability.String("value", values[FieldRepository]))
		return nil, err
	}

	inv := &Invocation{
		Run: &Run{
			WorkflowName: values[FieldWorkflowName],
			RunID:        values[FieldRunID],
			RunNumber:    values[FieldRunNumber],
			Status:       status,
			Repository:   values[FieldRepository],
			Actor:        values[FieldActor],
			Ref:          values[FieldRef],
			SHA:          values[FieldSHA],
		},
		Webhook: Webhook{
			ID:    values[FieldWebhookID],
			Token: values[FieldWebhookToken],
		},
	}

	pr, err := v.pullRequest(values, inv)
	if err != nil {
		return nil, err
	}
	inv.Run.PullRequest = pr

	numeric := []string{FieldRunID, FieldRunNumber, FieldWebhookID}
	if pr != nil && pr.Number != "" {
		values[FieldPRNumber] = pr.Number
		numeric = append(numeric, FieldPRNumber)
	}
	for _, name := range numeric {
		if !isUnsigned(values[name]) {
			v.log.Debug("numeric input rejected", observability.String("field", name))
			return nil, errors.InvalidFormat(name, values[name], "must be an unsigned integer")
		}
	}

	v.log.Debug("inputs valid", observability.Bool("pull_request", pr != nil))
	return inv, nil
}

// pullRequest resolves the pull request context. A parseable payload takes
// precedence over the individual fields and replaces them entirely.
func (v *Validator) pullRequest(values map[string]string, inv *Invocation) (*PullRequest, error) {
	if payload := values[FieldPullRequestPayload]; payload != "" {
		fields, err := webhook.ParsePullRequestPayload(payload)
		switch {
		case err != nil:
			perr := errors.PayloadParseError(err)
			v.log.Warn("pull request payload could not be parsed, falling back to individual fields",
				observability.Err(perr))
			inv.Warnings = append(inv.Warnings, perr.Error())
		case fields == nil:
			v.log.Debug("pull request payload holds no pull request, falling back to individual fields")
		default:
			v.log.Debug("using pull request payload",
				observability.Bool("author_login", fields.AuthorLogin != ""),
				observability.Bool("number", fields.Number != ""),
				observability.Bool("title", fields.Title != ""),
				observability.Bool("source", fields.Source != ""))
			return &PullRequest{
				AuthorLogin: normalize(fields.AuthorLogin),
				Number:      normalize(fields.Number),
				Title:       normalize(fields.Title),
				Source:      normalize(fields.Source),
			}, nil
		}
	}

	var missing []string
	for _, name := range pullRequestFields {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}

	switch len(missing) {
	case len(pullRequestFields):
		v.log.Debug("no pull request fields supplied")
		return nil, nil
	case 0:
		v.log.Debug("using individual pull request fields")
		return &PullRequest{
			AuthorLogin: values[FieldPRAuthorLogin],
			Number:      values[FieldPRNumber],
			Title:       values[FieldPRTitle],
			Source:      values[FieldPRSource],
		}, nil
	default:
		v.log.Debug("pull request fields partially supplied", observability.Strings("missing", missing))
		return nil, errors.InconsistentGroup("pull request", missing)
	}
}

func validateRepository(repo string) error {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return errors.InvalidFormat(FieldRepository, repo, "expected owner/name")
	}
	return nil
}

func isUnsigned(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
