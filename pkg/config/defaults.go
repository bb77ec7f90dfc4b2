// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values used when no config file is present.
const (
	DefaultBaseURL   = "https://discord.com"
	DefaultUsername  = "GitHub Actions"
	DefaultAvatarURL = "https://raw.githubusercontent.com/github/explore/2c7e603b797535e5ad8b4beb575ab3b7354666e1/topics/actions/actions.png"
	DefaultTimeout   = 10 * time.Second
	DefaultLogLevel  = "info"
	DefaultPlatform  = "auto"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Webhook: DefaultWebhookConfig(),
		Global:  DefaultGlobalConfig(),
	}
}

// DefaultWebhookConfig returns default webhook configuration.
func DefaultWebhookConfig() WebhookConfig {
	return WebhookConfig{
		BaseURL:   DefaultBaseURL,
		Username:  DefaultUsername,
		AvatarURL: DefaultAvatarURL,
		Timeout:   DefaultTimeout,
	}
}

// DefaultGlobalConfig returns default global configuration.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		LogLevel: DefaultLogLevel,
		Platform: DefaultPlatform,
	}
}

// GetDefaultConfigPath returns the default global config file path.
func GetDefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFile)
}

// GetProjectConfigPath returns the project config file path.
func GetProjectConfigPath(projectRoot string) string {
	if projectRoot == "" {
		projectRoot = "."
	}
	return filepath.Join(projectRoot, ProjectConfigFile)
}
