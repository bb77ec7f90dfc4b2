// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cicd-ai-toolkit/status-embed/pkg/config"
	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/observability"
	"github.com/cicd-ai-toolkit/status-embed/pkg/version"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

// maxErrorBody bounds how much of a rejected response is kept in the error.
const maxErrorBody = 512

// Reporter posts messages to a Discord webhook. It makes exactly one
// request per message and never retries.
type Reporter struct {
	client  *http.Client
	baseURL string
	log     observability.Logger
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithHTTPClient replaces the default client. The configured timeout is
// not applied to a replaced client.
func WithHTTPClient(c *http.Client) ReporterOption {
	return func(r *Reporter) { r.client = c }
}

// WithReporterLogger sets the logger for delivery records.
func WithReporterLogger(log observability.Logger) ReporterOption {
	return func(r *Reporter) { r.log = log }
}

// NewReporter creates a reporter for the configured Discord instance.
func NewReporter(cfg config.WebhookConfig, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     observability.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(observability.String("component", "reporter"))
	return r
}

// WebhookURL returns the execute-webhook endpoint of hook.
func (r *Reporter) WebhookURL(hook workflow.Webhook) string {
	return fmt.Sprintf("%s/api/webhooks/%s/%s", r.baseURL, url.PathEscape(hook.ID), url.PathEscape(hook.Token))
}

// Report posts msg to hook. Any failure is an ErrDelivery error whose text
// never contains the webhook token.
func (r *Reporter) Report(ctx context.Context, hook workflow.Webhook, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.InternalError(fmt.Sprintf("failed to encode message: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.WebhookURL(hook), bytes.NewReader(body))
	if err != nil {
		return errors.DeliveryError("failed to create webhook request", redact(err, hook.Token))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	r.log.Debug("posting message", observability.String("webhook_id", hook.ID), observability.Int("bytes", len(body)))

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.DeliveryError("failed to reach webhook", redact(err, hook.Token))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		r.log.Debug("webhook rejected message", observability.Int("status", resp.StatusCode))
		var cause error
		if text := strings.TrimSpace(string(snippet)); text != "" {
			cause = stderrors.New(text)
		}
		e := errors.DeliveryError(fmt.Sprintf("webhook returned %s", resp.Status), cause)
		e.Value = resp.Status
		return e
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	r.log.Info("message delivered", observability.Int("status", resp.StatusCode))
	return nil
}

// redact removes the token from the URL a transport error carries.
func redact(err error, token string) error {
	var uerr *url.Error
	if token != "" && stderrors.As(err, &uerr) {
		uerr.URL = strings.ReplaceAll(uerr.URL, token, observability.MaskPlaceholder)
		uerr.URL = strings.ReplaceAll(uerr.URL, url.PathEscape(token), observability.MaskPlaceholder)
	}
	return err
}
