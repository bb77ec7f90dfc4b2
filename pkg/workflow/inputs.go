// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package workflow

import "strings"

// Input names, as used on the command line and in error messages.
const (
	FieldWorkflowName       = "workflow_name"
	FieldRunID              = "run_id"
	FieldRunNumber          = "run_number"
	FieldStatus             = "status"
	FieldRepository         = "repository"
	FieldActor              = "actor"
	FieldRef                = "ref"
	FieldSHA                = "sha"
	FieldWebhookID          = "webhook_id"
	FieldWebhookToken       = "webhook_token"
	FieldPRAuthorLogin      = "pr_author_login"
	FieldPRNumber           = "pr_number"
	FieldPRTitle            = "pr_title"
	FieldPRSource           = "pr_source"
	FieldPullRequestPayload = "pull_request_payload"
)

// FieldOrder lists every input in positional order.
var FieldOrder = []string{
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
	FieldPRAuthorLogin,
	FieldPRNumber,
	FieldPRTitle,
	FieldPRSource,
	FieldPullRequestPayload,
}

// Inputs holds the raw, unvalidated string inputs of one invocation. An
// empty string and the literal "null" both mean "not provided".
type Inputs struct {
	WorkflowName string
	RunID        string
	RunNumber    string
	Status       string
	Repository   string
	Actor        string
	Ref          string
	SHA          string
	WebhookID    string
	WebhookToken string

	PRAuthorLogin string
	PRNumber      string
	PRTitle       string
	PRSource      string

	PullRequestPayload string
}

// Ptr returns a pointer to the input with the given name, or nil for an
// unknown name.
func (in *Inputs) Ptr(name string) *string {
	switch name {
	case FieldWorkflowName:
		return &in.WorkflowName
	case FieldRunID:
		return &in.RunID
	case FieldRunNumber:
		return &in.RunNumber
	case FieldStatus:
		return &in.Status
	case FieldRepository:
		return &in.Repository
	case FieldActor:
		return &in.Actor
	case FieldRef:
		return &in.Ref
	case FieldSHA:
		return &in.SHA
	case FieldWebhookID:
		return &in.WebhookID
	case FieldWebhookToken:
		return &in.WebhookToken
	case FieldPRAuthorLogin:
		return &in.PRAuthorLogin
	case FieldPRNumber:
		return &in.PRNumber
	case FieldPRTitle:
		return &in.PRTitle
	case FieldPRSource:
		return &in.PRSource
	case FieldPullRequestPayload:
		return &in.PullRequestPayload
	default:
		return nil
	}
}

// Get returns the raw value of the named input.
func (in *Inputs) Get(name string) string {
	if p := in.Ptr(name); p != nil {
		return *p
	}
	return ""
}

// normalize trims s and maps the "null" sentinel to "".
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "null" {
		return ""
	}
	return s
}
