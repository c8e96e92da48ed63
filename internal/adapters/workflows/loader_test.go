package workflows_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/adapters/workflows"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *workflows.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return workflows.NewLoader(mockLogger)
}

func writeWorkflow(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeWorkflow(t, dir, "verify.yaml", `
name: verify-locks
on:
  pull_request:
    paths:
      - dev-requirements/*.txt
  workflow_dispatch: {}
jobs:
  verify:
    steps:
      - name: Verify locks
        uses: locks/verify
`)
	writeWorkflow(t, dir, "nightly.yml", `
on:
  schedule:
    - cron: "0 3 * * *"
jobs:
  build:
    steps:
      - run: |
          echo building

          echo done
  publish:
    needs: [build]
    env:
      STAGE: prod
    steps:
      - name: Publish
        run: echo publish
`)
	writeWorkflow(t, dir, "notes.txt", "not a workflow\n")

	result, err := newLoader(t).Load(dir)
	require.NoError(t, err)
	require.Len(t, result, 2)

	verify := result["verify-locks"]
	require.NotNil(t, verify.On.PullRequest)
	assert.Equal(t, []string{"dev-requirements/*.txt"}, verify.On.PullRequest.Paths)
	assert.True(t, verify.On.Dispatch)
	assert.Equal(t, "locks/verify", verify.Jobs["verify"].Steps[0].Uses)

	// The name falls back to the file base name.
	nightly, ok := result["nightly"]
	require.True(t, ok)
	assert.False(t, nightly.On.Dispatch)
	require.Len(t, nightly.On.Schedules, 1)
	assert.True(t, nightly.On.Schedules[0].Cron.Matches(time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC)))

	build := nightly.Jobs["build"]
	assert.Equal(t, []string{"echo building", "echo done"}, build.Steps[0].Run)

	publish := nightly.Jobs["publish"]
	assert.Equal(t, []string{"build"}, publish.Needs)
	assert.Equal(t, map[string]string{"STAGE": "prod"}, publish.Env)
}

func TestLoader_Load_MissingDir(t *testing.T) {
	result, err := newLoader(t).Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "Malformed YAML",
			content: "jobs: [\n",
			wantErr: domain.ErrWorkflowParseFailed,
		},
		{
			name: "Bad Cron",
			content: `
on:
  schedule:
    - cron: "not a cron"
jobs: {}
`,
			wantErr: domain.ErrInvalidCronSpec,
		},
		{
			name: "Step With Uses And Run",
			content: `
jobs:
  bad:
    steps:
      - uses: locks/verify
        run: echo hi
`,
			wantErr: domain.ErrInvalidStep,
		},
		{
			name: "Job Cycle",
			content: `
jobs:
  a:
    needs: [b]
    steps:
      - run: echo a
  b:
    needs: [a]
    steps:
      - run: echo b
`,
			wantErr: domain.ErrCycleDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeWorkflow(t, dir, "bad.yaml", tt.content)

			_, err := newLoader(t).Load(dir)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
