package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/engine/workflow"
)

func mustCron(t *testing.T, raw string) domain.CronSpec {
	t.Helper()
	spec, err := domain.ParseCron(raw)
	require.NoError(t, err)
	return spec
}

func TestMatches_PullRequest(t *testing.T) {
	tests := []struct {
		name    string
		trigger *domain.PullRequestTrigger
		changed []string
		want    bool
	}{
		{
			name:    "No Trigger",
			trigger: nil,
			changed: []string{"dev-requirements/nox.txt"},
			want:    false,
		},
		{
			name:    "Glob Match",
			trigger: &domain.PullRequestTrigger{Paths: []string{"dev-requirements/*.txt"}},
			changed: []string{"README.md", "dev-requirements/nox.txt"},
			want:    true,
		},
		{
			name:    "Glob Miss",
			trigger: &domain.PullRequestTrigger{Paths: []string{"dev-requirements/*.txt"}},
			changed: []string{"README.md"},
			want:    false,
		},
		{
			name:    "Doublestar Crosses Directories",
			trigger: &domain.PullRequestTrigger{Paths: []string{"**/*.txt"}},
			changed: []string{"a/b/c/notes.txt"},
			want:    true,
		},
		{
			name:    "No Paths Means Any Change",
			trigger: &domain.PullRequestTrigger{},
			changed: []string{"anything"},
			want:    true,
		},
		{
			name:    "No Paths No Changes",
			trigger: &domain.PullRequestTrigger{},
			changed: nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := domain.Workflow{On: domain.Triggers{PullRequest: tt.trigger}}
			event := domain.Event{Kind: domain.EventPullRequest, Paths: tt.changed}
			assert.Equal(t, tt.want, workflow.Matches(wf, event))
		})
	}
}

func TestMatches_Schedule(t *testing.T) {
	wf := domain.Workflow{On: domain.Triggers{
		Schedules: []domain.Schedule{{Cron: mustCron(t, "0 12 1 * *")}},
	}}

	assert.True(t, workflow.Matches(wf, domain.Event{
		Kind: domain.EventSchedule,
		At:   time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	}))
	assert.False(t, workflow.Matches(wf, domain.Event{
		Kind: domain.EventSchedule,
		At:   time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC),
	}))
}

func TestMatches_Dispatch(t *testing.T) {
	wf := domain.Workflow{On: domain.Triggers{Dispatch: true}}
	assert.True(t, workflow.Matches(wf, domain.Event{Kind: domain.EventDispatch}))

	wf.On.Dispatch = false
	assert.False(t, workflow.Matches(wf, domain.Event{Kind: domain.EventDispatch}))
}

func TestNextRun(t *testing.T) {
	after := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Earliest Schedule Wins", func(t *testing.T) {
		wf := domain.Workflow{On: domain.Triggers{Schedules: []domain.Schedule{
			{Cron: mustCron(t, "0 12 1 * *")},
			{Cron: mustCron(t, "0 3 * * *")},
		}}}

		next, ok := workflow.NextRun(wf, after)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC), next)
	})

	t.Run("No Schedules", func(t *testing.T) {
		_, ok := workflow.NextRun(domain.Workflow{}, after)
		assert.False(t, ok)
	})
}
