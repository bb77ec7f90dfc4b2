// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/status-embed/pkg/config"
)

// allEnvKeys lists every STATUS_EMBED_ env var the loader reads.
var allEnvKeys = []string{
	"STATUS_EMBED_WEBHOOK__BASE_URL",
	"STATUS_EMBED_WEBHOOK__USERNAME",
	"STATUS_EMBED_WEBHOOK__AVATAR_URL",
	"STATUS_EMBED_WEBHOOK__TIMEOUT",
	"STATUS_EMBED_GLOBAL__LOG_LEVEL",
	"STATUS_EMBED_GLOBAL__PLATFORM",
}

// isolateEnv blanks the loader's env vars and points HOME at an empty
// directory so the host's global config is never read.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestDefaultConfig tests the default configuration.
func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "https://discord.com", cfg.Webhook.BaseURL)
	assert.Equal(t, "GitHub Actions", cfg.Webhook.Username)
	assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, "info", cfg.Global.LogLevel)
	assert.Equal(t, "auto", cfg.Global.Platform)
	assert.NoError(t, config.NewValidator().Validate(cfg))
}

// TestLoadFromPath tests loading config from a file.
func TestLoadFromPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, `
webhook:
  base_url: https://discordapp.com
  username: CI Bot
  timeout: 30s
global:
  log_level: debug
`)

	cfg, err := config.NewLoader().LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://discordapp.com", cfg.Webhook.BaseURL)
	assert.Equal(t, "CI Bot", cfg.Webhook.Username)
	assert.Equal(t, 30*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, "debug", cfg.Global.LogLevel)
}

// TestLoadFromPathInvalid tests loading an invalid config file.
func TestLoadFromPathInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, `
webhook:
  timeout: not_a_duration
`)

	_, err := config.NewLoader().LoadFromPath(configPath)
	require.Error(t, err)

	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, configPath, cfgErr.Path)
}

func TestLoadPrecedence(t *testing.T) {
	isolateEnv(t)
	home := os.Getenv("HOME")
	project := t.TempDir()

	writeFile(t, filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile), `
webhook:
  username: Global Bot
  timeout: 20s
global:
  log_level: warn
`)
	writeFile(t, filepath.Join(project, config.ProjectConfigFile), `
webhook:
  username: Project Bot
`)
	t.Setenv("STATUS_EMBED_GLOBAL__LOG_LEVEL", "debug")

	cfg, err := config.NewLoader().WithProjectRoot(project).Load()
	require.NoError(t, err)

	assert.Equal(t, "Project Bot", cfg.Webhook.Username)
	assert.Equal(t, 20*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, "debug", cfg.Global.LogLevel)
	assert.Equal(t, config.DefaultBaseURL, cfg.Webhook.BaseURL)
}

func TestLoadSkipGlobal(t *testing.T) {
	isolateEnv(t)
	writeFile(t, filepath.Join(os.Getenv("HOME"), config.GlobalConfigDir, config.GlobalConfigFile), `
webhook:
  username: Global Bot
`)

	cfg, err := config.NewLoader().WithProjectRoot(t.TempDir()).SkipGlobal().Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultUsername, cfg.Webhook.Username)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	isolateEnv(t)

	_, err := config.NewLoader().WithPath(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadMalformedProjectConfig(t *testing.T) {
	isolateEnv(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, config.ProjectConfigFile), "webhook: [unclosed")

	_, err := config.NewLoader().WithProjectRoot(project).Load()
	assert.Error(t, err)
}

// TestLoadWithEnvOverrides tests environment variable overrides.
func TestLoadWithEnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STATUS_EMBED_WEBHOOK__BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("STATUS_EMBED_WEBHOOK__AVATAR_URL", "https://example.com/a.png")
	t.Setenv("STATUS_EMBED_WEBHOOK__TIMEOUT", "3s")
	t.Setenv("STATUS_EMBED_GLOBAL__PLATFORM", "github")

	cfg, err := config.NewLoader().WithProjectRoot(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.Webhook.BaseURL)
	assert.Equal(t, "https://example.com/a.png", cfg.Webhook.AvatarURL)
	assert.Equal(t, 3*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, "github", cfg.Global.Platform)

	env := config.GetEnvConfig()
	assert.Equal(t, "3s", env["STATUS_EMBED_WEBHOOK__TIMEOUT"])
}

func TestLoadWithInvalidEnvTimeout(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STATUS_EMBED_WEBHOOK__TIMEOUT", "soon")

	_, err := config.NewLoader().WithProjectRoot(t.TempDir()).Load()
	require.Error(t, err)

	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "webhook.timeout", cfgErr.Field)
}

func TestValidator(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"valid defaults", func(*config.Config) {}, ""},
		{"private base url", func(c *config.Config) { c.Webhook.BaseURL = "http://10.1.2.3" }, "webhook.base_url"},
		{"bad scheme", func(c *config.Config) { c.Webhook.BaseURL = "file:///etc/passwd" }, "webhook.base_url"},
		{"bad avatar", func(c *config.Config) { c.Webhook.AvatarURL = "javascript:alert(1)" }, "webhook.avatar_url"},
		{"empty avatar", func(c *config.Config) { c.Webhook.AvatarURL = "" }, ""},
		{"zero timeout", func(c *config.Config) { c.Webhook.Timeout = 0 }, "webhook.timeout"},
		{"bad log level", func(c *config.Config) { c.Global.LogLevel = "trace" }, "global.log_level"},
		{"upper log level", func(c *config.Config) { c.Global.LogLevel = "DEBUG" }, ""},
		{"bad platform", func(c *config.Config) { c.Global.Platform = "jenkins" }, "global.platform"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)

			err := config.NewValidator().Validate(cfg)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *config.ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}
