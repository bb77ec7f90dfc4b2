// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for status-embed.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Global Config: $HOME/.status-embed/config.yaml
// 3. Project Config: ./.status-embed.yaml
// 4. Environment Variables: STATUS_EMBED_*
//
// Run inputs (workflow, pull request, webhook credentials) are never read
// from configuration files; they arrive on the command line.
package config

import (
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Webhook WebhookConfig `yaml:"webhook"`
	Global  GlobalConfig  `yaml:"global"`
}

// WebhookConfig contains Discord webhook delivery settings.
type WebhookConfig struct {
	BaseURL   string        `yaml:"base_url"`   // e.g., "https://discord.com"
	Username  string        `yaml:"username"`   // Display name of the posting bot
	AvatarURL string        `yaml:"avatar_url"` // Avatar of the posting bot
	Timeout   time.Duration `yaml:"timeout"`    // Timeout of the single POST
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	Platform string `yaml:"platform"`  // auto, github, gitlab, gitee, local
}
