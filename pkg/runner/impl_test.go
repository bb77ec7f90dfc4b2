package runner

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/status-embed/pkg/config"
	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/output"
	"github.com/cicd-ai-toolkit/status-embed/pkg/platform"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

func inputs() workflow.Inputs {
	return workflow.Inputs{
		WorkflowName:  "Lint",
		RunID:         "42",
		RunNumber:     "71",
		Status:        "success",
		Repository:    "acme/widgets",
		Actor:         "octocat",
		Ref:           "refs/heads/main",
		SHA:           "d4c8c0f7184e5d494136cc2b7fc670e8ab7a8f93",
		WebhookID:     "123456789",
		WebhookToken:  "token-abc",
		PRAuthorLogin: "hubot",
		PRNumber:      "535",
		PRTitle:       "Add widgets",
		PRSource:      "hubot:widgets",
	}
}

// webhookServer counts requests and answers each with status.
func webhookServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newTestRunner(t *testing.T, baseURL string, opts ...Option) *Runner {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Webhook.BaseURL = baseURL
	cfg.Webhook.Timeout = 5 * time.Second

	r, err := New(cfg, opts...)
	require.NoError(t, err)
	return r
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestRunDelivers(t *testing.T) {
	server, calls := webhookServer(t, http.StatusNoContent)

	result, err := newTestRunner(t, server.URL).Run(context.Background(), &RunRequest{Inputs: inputs()})
	require.NoError(t, err)

	assert.True(t, result.Delivered)
	assert.Equal(t, errors.ExitSuccess, result.ExitCode)
	assert.Equal(t, int32(1), calls.Load())
	require.NotNil(t, result.Message)
	assert.Contains(t, result.Message.Embeds[0].Description, "Pull request [#535]")
	assert.Contains(t, result.Message.Embeds[0].Description, "Add widgets")
}

func TestRunAnnotatesDelivery(t *testing.T) {
	server, _ := webhookServer(t, http.StatusNoContent)
	var annotations bytes.Buffer
	r := newTestRunner(t, server.URL, WithAnnotator(platform.NewAnnotator(&annotations, platform.GitHub)))

	_, err := r.Run(context.Background(), &RunRequest{Inputs: inputs()})
	require.NoError(t, err)
	assert.Equal(t, "::notice title=Status posted::success status of workflow run 42 delivered to Discord\n", annotations.String())

	annotations.Reset()
	_, err = r.Run(context.Background(), &RunRequest{Inputs: inputs(), DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, annotations.String())
}

func TestRunDryRunMakesNoRequest(t *testing.T) {
	server, calls := webhookServer(t, http.StatusNoContent)

	result, err := newTestRunner(t, server.URL).Run(context.Background(), &RunRequest{Inputs: inputs(), DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, errors.ExitSuccess, result.ExitCode)
	assert.False(t, result.Delivered)
	require.NotNil(t, result.Message)
	assert.Equal(t, "✅ [acme/widgets] Lint #71: Success", result.Message.Embeds[0].Title)
	assert.Zero(t, calls.Load())
}

func TestRunInvalidInputSkipsDelivery(t *testing.T) {
	server, calls := webhookServer(t, http.StatusNoContent)
	var annotations bytes.Buffer

	in := inputs()
	in.PRAuthorLogin = ""
	in.PRSource = ""

	r := newTestRunner(t, server.URL, WithAnnotator(platform.NewAnnotator(&annotations, platform.GitHub)))
	result, err := r.Run(context.Background(), &RunRequest{Inputs: in})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrInconsistentGroup))
	assert.Equal(t, errors.ExitInput, result.ExitCode)
	assert.Nil(t, result.Message)
	assert.Zero(t, calls.Load())
	assert.True(t, strings.HasPrefix(annotations.String(), "::error title=Invalid input::"))
	assert.Contains(t, annotations.String(), "pr_author_login, pr_source")
}

func TestRunDeliveryFailure(t *testing.T) {
	server, calls := webhookServer(t, http.StatusNotFound)

	result, err := newTestRunner(t, server.URL).Run(context.Background(), &RunRequest{Inputs: inputs()})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrDelivery))
	assert.Equal(t, errors.ExitDelivery, result.ExitCode)
	assert.False(t, result.Delivered)
	assert.NotNil(t, result.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunAnnotatesPayloadFallback(t *testing.T) {
	var annotations bytes.Buffer

	in := inputs()
	in.PullRequestPayload = "{broken"

	r := newTestRunner(t, "http://127.0.0.1:1", WithAnnotator(platform.NewAnnotator(&annotations, platform.GitHub)))
	result, err := r.Run(context.Background(), &RunRequest{Inputs: in, DryRun: true})

	require.NoError(t, err)
	assert.Len(t, result.Invocation.Warnings, 1)
	assert.True(t, strings.HasPrefix(annotations.String(), "::warning::"))
}

type brokenFormatter struct{}

func (brokenFormatter) Format(*workflow.Run) (*output.Message, error) {
	return nil, errors.InternalError("no appearance for status 7")
}

func TestRunInternalError(t *testing.T) {
	result, err := newTestRunner(t, "http://127.0.0.1:1", WithFormatter(brokenFormatter{})).
		Run(context.Background(), &RunRequest{Inputs: inputs()})

	require.Error(t, err)
	assert.Equal(t, errors.ExitInternal, result.ExitCode)
}

type recordingReporter struct {
	hook workflow.Webhook
	msg  *output.Message
}

func (r *recordingReporter) Report(_ context.Context, hook workflow.Webhook, msg *output.Message) error {
	r.hook = hook
	r.msg = msg
	return nil
}

func TestRunUsesValidatedWebhook(t *testing.T) {
	rep := &recordingReporter{}
	in := inputs()
	in.WebhookID = " 123456789 "

	result, err := newTestRunner(t, "http://127.0.0.1:1", WithReporter(rep)).
		Run(context.Background(), &RunRequest{Inputs: in})

	require.NoError(t, err)
	assert.Equal(t, workflow.Webhook{ID: "123456789", Token: "token-abc"}, rep.hook)
	assert.Same(t, result.Message, rep.msg)
}
