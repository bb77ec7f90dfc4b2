// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output builds Discord webhook messages describing a workflow run
// and delivers them.
package output

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/cicd-ai-toolkit/status-embed/pkg/config"
	"github.com/cicd-ai-toolkit/status-embed/pkg/observability"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

const (
	// MaxSourceWidth is the display width the pull request source branch is
	// truncated to.
	MaxSourceWidth = 28

	// Discord embed limits, counted in characters.
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldValueLength  = 1024
	maxAuthorNameLength  = 256
	maxEmbedLength       = 6000

	ellipsis = "..."

	// placeholder stands in for pull request values a payload left out.
	placeholder = "unknown"

	TemplatePullRequest = "pull_request"
	TemplateGeneric     = "generic"
)

// Formatter builds the Discord message for a run. It has no side effects
// besides debug logging.
type Formatter struct {
	username  string
	avatarURL string
	now       func() time.Time
	log       observability.Logger
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithClock sets the source of the embed timestamp.
func WithClock(now func() time.Time) FormatterOption {
	return func(f *Formatter) { f.now = now }
}

// WithFormatterLogger sets the logger that traces template decisions.
func WithFormatterLogger(log observability.Logger) FormatterOption {
	return func(f *Formatter) { f.log = log }
}

// NewFormatter creates a formatter posting under the configured identity.
func NewFormatter(cfg config.WebhookConfig, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		username:  cfg.Username,
		avatarURL: cfg.AvatarURL,
		now:       time.Now,
		log:       observability.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With(observability.String("component", "formatter"))
	return f
}

// Format builds the message for run. It only fails with an ErrInternal
// error.
func (f *Formatter) Format(run *workflow.Run) (*Message, error) {
	look, err := AppearanceFor(run.Status)
	if err != nil {
		return nil, err
	}

	embed := Embed{
		Title:     clip(title(run, look), maxTitleLength),
		URL:       run.RunURL(),
		Color:     look.Color,
		Fields:    fields(run),
		Timestamp: f.now().UTC().Format(time.RFC3339),
	}

	var lines []string
	if run.HasPullRequest() {
		f.log.Debug("template selected", observability.String("template", TemplatePullRequest))
		lines = f.pullRequestLines(run, look)
		embed.Author = pullRequestAuthor(run)
	} else {
		f.log.Debug("template selected", observability.String("template", TemplateGeneric))
		lines = genericLines(run, look)
		embed.Author = author(run.Actor)
	}
	embed.Description = clip(strings.Join(lines, "\n"), min(maxDescriptionLength, maxEmbedLength-embed.length()))

	return &Message{
		Username:        f.username,
		AvatarURL:       f.avatarURL,
		AllowedMentions: AllowedMentions{Parse: []string{}},
		Embeds:          []Embed{embed},
	}, nil
}

func title(run *workflow.Run, look Appearance) string {
	return look.Icon + " [" + Escape(run.Repository) + "] " + Escape(run.WorkflowName) +
		" #" + Escape(run.RunNumber) + ": " + look.Label
}

func (f *Formatter) pullRequestLines(run *workflow.Run, look Appearance) []string {
	pr := run.PullRequest

	subject := "Pull request"
	if pr.Number != "" {
		subject += " " + link("#"+Escape(pr.Number), pr.URL(run.Repository))
	}
	subject += ": " + Escape(orPlaceholder(pr.Title))

	opened := "Opened by " + placeholder
	if pr.AuthorLogin != "" {
		opened = "Opened by " + link(Escape(pr.AuthorLogin), pr.AuthorURL())
	}

	source := orPlaceholder(pr.Source)
	if truncated := runewidth.Truncate(source, MaxSourceWidth, ellipsis); truncated != source {
		f.log.Debug("source branch truncated", observability.Int("width", runewidth.StringWidth(source)))
		source = truncated
	}

	return []string{
		subject,
		opened,
		"Branch: " + Escape(source) + " → " + Escape(run.ShortRef()),
		commitLine(run),
		runSentence(run, look),
	}
}

func genericLines(run *workflow.Run, look Appearance) []string {
	return []string{
		"Ref: " + Escape(run.ShortRef()),
		commitLine(run),
		"Triggered by " + link(Escape(run.Actor), run.ActorURL()),
		runSentence(run, look),
	}
}

func commitLine(run *workflow.Run) string {
	return "Commit " + link(Escape(run.ShortSHA()), run.CommitURL())
}

func runSentence(run *workflow.Run, look Appearance) string {
	return "Workflow run " + link(Escape(run.RunID), run.RunURL()) + " " + look.Verb + "."
}

func fields(run *workflow.Run) []EmbedField {
	return []EmbedField{
		{Name: "Repository", Value: fieldLink(Escape(run.Repository), run.RepositoryURL()), Inline: true},
		{Name: "Workflow Run", Value: fieldLink(Escape(run.WorkflowName)+" #"+Escape(run.RunNumber), run.RunURL()), Inline: true},
		{Name: "Commit", Value: fieldLink(Escape(run.ShortSHA()), run.CommitURL()), Inline: true},
	}
}

// fieldLink renders a link that fits a field value, clipping the label
// rather than the target so the link stays intact.
func fieldLink(label, target string) string {
	value := link(label, target)
	if utf8.RuneCountInString(value) <= maxFieldValueLength {
		return value
	}
	budget := maxFieldValueLength - (utf8.RuneCountInString(value) - utf8.RuneCountInString(label))
	if target == "" || budget <= len(ellipsis) {
		return clip(value, maxFieldValueLength)
	}
	return link(clip(label, budget), target)
}

func pullRequestAuthor(run *workflow.Run) *EmbedAuthor {
	if run.PullRequest.AuthorLogin == "" {
		return author(run.Actor)
	}
	return author(run.PullRequest.AuthorLogin)
}

func author(login string) *EmbedAuthor {
	return &EmbedAuthor{
		Name:    clip(Sanitize(login), maxAuthorNameLength),
		URL:     workflow.ProfileURL(login),
		IconURL: workflow.AvatarURL(login),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// clip shortens s to at most limit characters, ending in an ellipsis. The cut
// falls between grapheme clusters so combining marks stay with their base.
func clip(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	budget := limit - len(ellipsis)
	end, count := 0, 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n := len(g.Runes())
		if count+n > budget {
			break
		}
		count += n
		_, end = g.Positions()
	}
	return s[:end] + ellipsis
}
