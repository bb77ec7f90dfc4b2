// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"strings"

	"github.com/cicd-ai-toolkit/status-embed/pkg/platform"
)

// Validator validates configuration.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a configuration.
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateWebhook(&cfg.Webhook); err != nil {
		return err
	}
	if err := v.ValidateGlobal(&cfg.Global); err != nil {
		return err
	}
	return nil
}

// ValidateWebhook validates webhook configuration.
func (v *Validator) ValidateWebhook(cfg *WebhookConfig) error {
	if err := platform.ValidateBaseURL(cfg.BaseURL); err != nil {
		return &ValidationError{
			Field:   "webhook.base_url",
			Value:   cfg.BaseURL,
			Message: err.Error(),
		}
	}

	if cfg.AvatarURL != "" && !strings.HasPrefix(cfg.AvatarURL, "https://") && !strings.HasPrefix(cfg.AvatarURL, "http://") {
		return &ValidationError{
			Field:   "webhook.avatar_url",
			Value:   cfg.AvatarURL,
			Message: "must be an http or https URL",
		}
	}

	if cfg.Timeout <= 0 {
		return &ValidationError{
			Field:   "webhook.timeout",
			Value:   cfg.Timeout,
			Message: "must be positive",
		}
	}

	return nil
}

// ValidateGlobal validates global configuration.
func (v *Validator) ValidateGlobal(cfg *GlobalConfig) error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if cfg.LogLevel != "" {
		valid := false
		for _, level := range validLogLevels {
			if strings.EqualFold(cfg.LogLevel, level) {
				valid = true
				break
			}
		}
		if !valid {
			return &ValidationError{
				Field:   "global.log_level",
				Value:   cfg.LogLevel,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			}
		}
	}

	if err := platform.ValidatePlatform(cfg.Platform); err != nil {
		return &ValidationError{
			Field:   "global.platform",
			Value:   cfg.Platform,
			Message: err.Error(),
		}
	}

	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error for %s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}
