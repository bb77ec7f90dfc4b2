// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package workflow validates the raw inputs of a status-embed invocation
// and turns them into a Run.
package workflow

import (
	"fmt"
	"net/url"
	"strings"
)

// GitHubURL is the root of every link derived from a run.
const GitHubURL = "https://github.com"

// Run describes one CI workflow run. It is only ever built by Validator,
// so every field has passed validation.
type Run struct {
	WorkflowName string
	RunID        string
	RunNumber    string
	Status       Status
	Repository   string
	Actor        string
	Ref          string
	SHA          string

	// PullRequest is nil for runs that are not tied to a pull request.
	PullRequest *PullRequest
}

// PullRequest is the optional pull request context of a run. Fields taken
// from a webhook payload may be empty when the payload omitted them.
type PullRequest struct {
	AuthorLogin string
	Number      string
	Title       string
	Source      string // head label, e.g. "owner:branch"
}

// Webhook identifies the Discord webhook a message is posted to.
type Webhook struct {
	ID    string
	Token string
}

// Invocation is the validated result of one set of inputs.
type Invocation struct {
	Run     *Run
	Webhook Webhook

	// Warnings lists input problems that were recovered from.
	Warnings []string
}

// RunURL links to the run's summary page.
func (r *Run) RunURL() string {
	return fmt.Sprintf("%s/%s/actions/runs/%s", GitHubURL, r.Repository, r.RunID)
}

// RepositoryURL links to the repository.
func (r *Run) RepositoryURL() string {
	return GitHubURL + "/" + r.Repository
}

// CommitURL links to the full commit.
func (r *Run) CommitURL() string {
	return fmt.Sprintf("%s/%s/commit/%s", GitHubURL, r.Repository, r.SHA)
}

// ActorURL links to the profile of the user who triggered the run.
func (r *Run) ActorURL() string {
	return ProfileURL(r.Actor)
}

// ShortSHA returns the first seven characters of the commit hash.
func (r *Run) ShortSHA() string {
	if len(r.SHA) > 7 {
		return r.SHA[:7]
	}
	return r.SHA
}

// ShortRef strips the refs/heads/ or refs/tags/ prefix from the ref.
func (r *Run) ShortRef() string {
	for _, prefix := range []string{"refs/heads/", "refs/tags/"} {
		if short, ok := strings.CutPrefix(r.Ref, prefix); ok && short != "" {
			return short
		}
	}
	return r.Ref
}

// HasPullRequest reports whether the run carries pull request context.
func (r *Run) HasPullRequest() bool {
	return r.PullRequest != nil
}

// URL links to the pull request, or returns "" when the number is unknown.
func (p *PullRequest) URL(repository string) string {
	if p.Number == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/pull/%s", GitHubURL, repository, p.Number)
}

// AuthorURL links to the pull request author's profile.
func (p *PullRequest) AuthorURL() string {
	return ProfileURL(p.AuthorLogin)
}

// ProfileURL links to a GitHub user profile, or returns "" for an empty login.
func ProfileURL(login string) string {
	if login == "" {
		return ""
	}
	return GitHubURL + "/" + url.PathEscape(login)
}

// AvatarURL returns the avatar image of a GitHub user, or "" for an empty login.
func AvatarURL(login string) string {
	if login == "" {
		return ""
	}
	return GitHubURL + "/" + url.PathEscape(login) + ".png"
}
