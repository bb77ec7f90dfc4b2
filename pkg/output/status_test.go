package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

func TestAppearanceTableComplete(t *testing.T) {
	require.Len(t, appearances, workflow.NumStatuses)

	for i := 0; i < workflow.NumStatuses; i++ {
		a, err := AppearanceFor(workflow.Status(i))
		require.NoError(t, err, workflow.Status(i).String())
		assert.NotZero(t, a.Color)
	}
}

func TestAppearanceValues(t *testing.T) {
	testCases := []struct {
		status workflow.Status
		color  int
		label  string
		verb   string
	}{
		{workflow.StatusSuccess, 38912, "Success", "succeeded"},
		{workflow.StatusFailure, 16525609, "Failure", "failed"},
		{workflow.StatusCancelled, 6702148, "Cancelled", "was cancelled"},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			a, err := AppearanceFor(tc.status)
			require.NoError(t, err)
			assert.Equal(t, tc.color, a.Color)
			assert.Equal(t, tc.label, a.Label)
			assert.Equal(t, tc.verb, a.Verb)
		})
	}
}

func TestAppearanceMissingEntryIsInternal(t *testing.T) {
	_, err := AppearanceFor(workflow.Status(workflow.NumStatuses))
	assert.True(t, errors.IsType(err, errors.ErrInternal))

	saved := appearances[workflow.StatusCancelled]
	appearances[workflow.StatusCancelled] = Appearance{}
	t.Cleanup(func() { appearances[workflow.StatusCancelled] = saved })

	_, err = AppearanceFor(workflow.StatusCancelled)
	assert.True(t, errors.IsType(err, errors.ErrInternal))
	assert.Equal(t, errors.ExitInternal, errors.ExitCode(err))
}
