// Package platform provides CI platform detection and platform-specific output
package platform

import (
	"fmt"
	"os"
)

// Platform names returned by detection.
const (
	GitHub = "github"
	GitLab = "gitlab"
	Gitee  = "gitee"
	Local  = "local"
)

// DetectPlatform auto-detects the current CI/CD platform from environment variables
func DetectPlatform() string {
	return DetectPlatformInfo().Name
}

// IsRunningInCI returns true if running in any known CI environment
func IsRunningInCI() bool {
	return DetectPlatform() != Local
}

// GetPlatformFromConfig returns platform name from config, with auto-detection fallback
func GetPlatformFromConfig(configuredPlatform string) string {
	if configuredPlatform != "" && configuredPlatform != "auto" {
		return configuredPlatform
	}
	return DetectPlatform()
}

// PlatformInfo contains information about the detected platform
type PlatformInfo struct {
	Name     string
	IsCI     bool
	VarName  string // Name of the environment variable that was detected
	VarValue string // Value of the environment variable
}

// detectors are checked in order; the first match wins.
var detectors = []struct {
	name    string
	varName string
	match   func(string) bool
}{
	{GitHub, "GITHUB_ACTIONS", isTrue},
	{GitLab, "GITLAB_CI", isTrue},
	{Gitee, "GITEE_CI", isTrue},
	{Gitee, "GITEE_SERVER_URL", isSet},
}

func isTrue(v string) bool { return v == "true" }
func isSet(v string) bool  { return v != "" }

// DetectPlatformInfo returns detailed platform detection information
func DetectPlatformInfo() *PlatformInfo {
	for _, d := range detectors {
		if val := os.Getenv(d.varName); d.match(val) {
			return &PlatformInfo{
				Name:     d.name,
				IsCI:     true,
				VarName:  d.varName,
				VarValue: val,
			}
		}
	}

	// No CI detected
	return &PlatformInfo{Name: Local}
}

// GetSupportedPlatforms returns list of supported platform names
func GetSupportedPlatforms() []string {
	return []string{GitHub, GitLab, Gitee, Local}
}

// ValidatePlatform checks if a platform name is supported.
// "auto" and the empty string select detection.
func ValidatePlatform(platform string) error {
	if platform == "" || platform == "auto" {
		return nil
	}
	supported := GetSupportedPlatforms()
	for _, name := range supported {
		if platform == name {
			return nil
		}
	}
	return fmt.Errorf("unsupported platform: %s (supported: %v)", platform, supported)
}
