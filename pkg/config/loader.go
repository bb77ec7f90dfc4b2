// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for all environment variables.
	EnvPrefix = "STATUS_EMBED"
	// ProjectConfigFile is the project-level config file name.
	ProjectConfigFile = ".status-embed.yaml"
	// GlobalConfigDir is the global config directory name.
	GlobalConfigDir = ".status-embed"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Loader loads configuration from files and environment.
type Loader struct {
	projectRoot string
	explicit    string
	skipGlobal  bool
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithProjectRoot sets the project root directory.
func (l *Loader) WithProjectRoot(root string) *Loader {
	l.projectRoot = root
	return l
}

// WithPath replaces the project config with an explicit file. Unlike the
// project config, an explicit file must exist.
func (l *Loader) WithPath(path string) *Loader {
	l.explicit = path
	return l
}

// SkipGlobal skips loading global config.
func (l *Loader) SkipGlobal() *Loader {
	l.skipGlobal = true
	return l
}

// Load loads configuration with full precedence order:
// 1. Defaults
// 2. Global Config ($HOME/.status-embed/config.yaml)
// 3. Project Config (./.status-embed.yaml) or the explicit path
// 4. Environment Variables (STATUS_EMBED_*)
//
// Missing global and project files are skipped; files that exist but do
// not parse are errors.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if !l.skipGlobal {
		if err := l.mergeOptional(cfg, GetDefaultConfigPath()); err != nil {
			return nil, err
		}
	}

	if l.explicit != "" {
		fileCfg, err := l.LoadFromPath(l.explicit)
		if err != nil {
			return nil, err
		}
		mergeConfig(cfg, fileCfg)
	} else if err := l.mergeOptional(cfg, GetProjectConfigPath(l.projectRoot)); err != nil {
		return nil, err
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return &cfg, nil
}

func (l *Loader) mergeOptional(dst *Config, path string) error {
	src, err := l.LoadFromPath(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	mergeConfig(dst, src)
	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Format: STATUS_EMBED_SECTION__KEY=value
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	// Webhook settings
	if v := os.Getenv(EnvPrefix + "_WEBHOOK__BASE_URL"); v != "" {
		cfg.Webhook.BaseURL = v
	}
	if v := os.Getenv(EnvPrefix + "_WEBHOOK__USERNAME"); v != "" {
		cfg.Webhook.Username = v
	}
	if v := os.Getenv(EnvPrefix + "_WEBHOOK__AVATAR_URL"); v != "" {
		cfg.Webhook.AvatarURL = v
	}
	if v := os.Getenv(EnvPrefix + "_WEBHOOK__TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigError{
				Field: "webhook.timeout",
				Err:   err,
			}
		}
		cfg.Webhook.Timeout = d
	}

	// Global settings
	if v := os.Getenv(EnvPrefix + "_GLOBAL__LOG_LEVEL"); v != "" {
		cfg.Global.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "_GLOBAL__PLATFORM"); v != "" {
		cfg.Global.Platform = v
	}

	return nil
}

// mergeConfig merges src into dst (src overrides dst).
func mergeConfig(dst, src *Config) {
	if src.Webhook.BaseURL != "" {
		dst.Webhook.BaseURL = src.Webhook.BaseURL
	}
	if src.Webhook.Username != "" {
		dst.Webhook.Username = src.Webhook.Username
	}
	if src.Webhook.AvatarURL != "" {
		dst.Webhook.AvatarURL = src.Webhook.AvatarURL
	}
	if src.Webhook.Timeout > 0 {
		dst.Webhook.Timeout = src.Webhook.Timeout
	}

	if src.Global.LogLevel != "" {
		dst.Global.LogLevel = src.Global.LogLevel
	}
	if src.Global.Platform != "" {
		dst.Global.Platform = src.Global.Platform
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return "config error in " + e.Path + ": " + e.Err.Error()
	}
	if e.Field != "" {
		return "config error for " + e.Field + ": " + e.Err.Error()
	}
	return "config error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// GetEnvConfig returns all environment variables that start with STATUS_EMBED_.
func GetEnvConfig() map[string]string {
	result := make(map[string]string)

	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") {
			kv := strings.SplitN(env, "=", 2)
			if len(kv) == 2 {
				result[kv[0]] = kv[1]
			}
		}
	}

	return result
}

// DetectProjectRoot finds the project root by looking for the config file.
func DetectProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return ".", nil
		}
		dir = parent
	}
}
