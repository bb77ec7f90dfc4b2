package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := MissingField("run_id")
	assert.Equal(t, "[MISSING_FIELD] missing non-null value for argument `run_id`", err.Error())

	wrapped := DeliveryError("webhook returned 404", fmt.Errorf("not found"))
	assert.Equal(t, "[DELIVERY] webhook returned 404: not found", wrapped.Error())
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("validate: %w", InvalidFormat("repository", "acme", "expected owner/name"))

	assert.True(t, IsType(err, ErrInvalidFormat))
	assert.False(t, IsType(err, ErrMissingField))
	assert.False(t, IsType(nil, ErrInvalidFormat))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrInvalidFormat))
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"missing field", MissingField("sha"), ExitInput},
		{"invalid enum", InvalidEnum("status", "meh", []string{"success"}), ExitInput},
		{"inconsistent group", InconsistentGroup("pull request", []string{"pr_title"}), ExitInput},
		{"config", ConfigError("bad", nil), ExitInput},
		{"delivery", DeliveryError("boom", nil), ExitDelivery},
		{"wrapped delivery", fmt.Errorf("send: %w", DeliveryError("boom", nil)), ExitDelivery},
		{"internal", InternalError("no appearance"), ExitInternal},
		{"untyped", fmt.Errorf("plain"), ExitInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(MissingField("actor")))
	assert.True(t, IsUserError(ConfigError("bad", nil)))
	assert.False(t, IsUserError(DeliveryError("boom", nil)))
	assert.False(t, IsUserError(InternalError("defect")))
	assert.False(t, IsUserError(fmt.Errorf("plain")))
}

func TestInconsistentGroupFields(t *testing.T) {
	err := InconsistentGroup("pull request", []string{"pr_author_login", "pr_source"})

	assert.Equal(t, []string{"pr_author_login", "pr_source"}, err.Fields)
	assert.Contains(t, err.Error(), "pr_author_login, pr_source")
}
