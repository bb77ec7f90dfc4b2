// Package platform provides platform detection functionality
package platform

import (
	"testing"
)

// clearCIEnv blanks every variable the detectors look at.
func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, d := range detectors {
		t.Setenv(d.varName, "")
	}
}

func TestDetectPlatform(t *testing.T) {
	clearCIEnv(t)

	// Default should be local
	if got := DetectPlatform(); got != Local {
		t.Errorf("expected local, got %s", got)
	}

	testCases := []struct {
		varName string
		value   string
		want    string
	}{
		{"GITHUB_ACTIONS", "true", GitHub},
		{"GITLAB_CI", "true", GitLab},
		{"GITEE_CI", "true", Gitee},
		{"GITEE_SERVER_URL", "https://gitee.com", Gitee},
		{"GITHUB_ACTIONS", "false", Local},
	}

	for _, tc := range testCases {
		t.Run(tc.varName+"="+tc.value, func(t *testing.T) {
			clearCIEnv(t)
			t.Setenv(tc.varName, tc.value)
			if got := DetectPlatform(); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDetectPlatformInfo(t *testing.T) {
	clearCIEnv(t)

	info := DetectPlatformInfo()
	if info.Name != Local {
		t.Errorf("expected local, got %s", info.Name)
	}
	if info.IsCI {
		t.Error("expected IsCI=false for local")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	info = DetectPlatformInfo()
	if info.Name != GitHub {
		t.Errorf("expected github, got %s", info.Name)
	}
	if !info.IsCI {
		t.Error("expected IsCI=true for github")
	}
	if info.VarName != "GITHUB_ACTIONS" {
		t.Errorf("expected GITHUB_ACTIONS, got %s", info.VarName)
	}
	if info.VarValue != "true" {
		t.Errorf("expected true, got %s", info.VarValue)
	}
}

func TestIsRunningInCI(t *testing.T) {
	clearCIEnv(t)
	if IsRunningInCI() {
		t.Error("expected false when not in CI")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !IsRunningInCI() {
		t.Error("expected true when in CI")
	}
}

func TestGetPlatformFromConfig(t *testing.T) {
	clearCIEnv(t)

	if got := GetPlatformFromConfig("auto"); got != Local {
		t.Errorf("auto mode: expected local, got %s", got)
	}
	if got := GetPlatformFromConfig(""); got != Local {
		t.Errorf("empty: expected local, got %s", got)
	}
	if got := GetPlatformFromConfig(GitHub); got != GitHub {
		t.Errorf("explicit: expected github, got %s", got)
	}
}

func TestValidatePlatform(t *testing.T) {
	for _, p := range []string{"github", "gitlab", "gitee", "local", "auto", ""} {
		if err := ValidatePlatform(p); err != nil {
			t.Errorf("platform %q should be valid: %v", p, err)
		}
	}

	if err := ValidatePlatform("jenkins"); err == nil {
		t.Error("unsupported platform should return error")
	}
}
