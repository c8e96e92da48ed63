package app_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func TestEventForKind(t *testing.T) {
	t.Run("Pull Request Carries Changed Paths", func(t *testing.T) {
		f := newFixture(t)
		f.vcs.EXPECT().ChangedPaths(gomock.Any()).Return([]string{"dev-requirements/nox.txt"}, nil)

		event, err := f.app.EventForKind(context.Background(), "pull_request")
		require.NoError(t, err)
		assert.Equal(t, domain.EventPullRequest, event.Kind)
		assert.Equal(t, []string{"dev-requirements/nox.txt"}, event.Paths)
	})

	t.Run("Schedule", func(t *testing.T) {
		f := newFixture(t)

		event, err := f.app.EventForKind(context.Background(), "schedule")
		require.NoError(t, err)
		assert.Equal(t, domain.EventSchedule, event.Kind)
		assert.False(t, event.At.IsZero())
	})

	t.Run("Dispatch", func(t *testing.T) {
		f := newFixture(t)

		event, err := f.app.EventForKind(context.Background(), "workflow_dispatch")
		require.NoError(t, err)
		assert.Equal(t, domain.EventDispatch, event.Kind)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.app.EventForKind(context.Background(), "push")
		require.ErrorIs(t, err, domain.ErrWorkflowNotFound)
	})
}

func TestCICheck(t *testing.T) {
	t.Run("Lock File Change Triggers Verify", func(t *testing.T) {
		f := newFixture(t)
		f.workflows.EXPECT().Load(gomock.Any()).Return(map[string]domain.Workflow{}, nil)

		var buf bytes.Buffer
		err := f.app.CICheck(context.Background(), domain.Event{
			Kind:  domain.EventPullRequest,
			Paths: []string{"dev-requirements/nox.txt"},
		}, &buf)
		require.NoError(t, err)
		assert.Equal(t, "verify-locks\n", buf.String())
	})

	t.Run("Dispatch Triggers All Builtins", func(t *testing.T) {
		f := newFixture(t)
		f.workflows.EXPECT().Load(gomock.Any()).Return(map[string]domain.Workflow{}, nil)

		var buf bytes.Buffer
		err := f.app.CICheck(context.Background(), domain.Event{Kind: domain.EventDispatch}, &buf)
		require.NoError(t, err)
		assert.Equal(t, "upgrade-locks\nverify-locks\n", buf.String())
	})

	t.Run("No Match", func(t *testing.T) {
		f := newFixture(t)
		f.workflows.EXPECT().Load(gomock.Any()).Return(map[string]domain.Workflow{}, nil)

		var buf bytes.Buffer
		err := f.app.CICheck(context.Background(), domain.Event{
			Kind:  domain.EventPullRequest,
			Paths: []string{"README.md"},
		}, &buf)
		require.NoError(t, err)
		assert.Equal(t, "no workflows triggered\n", buf.String())
	})
}

func TestCINext(t *testing.T) {
	f := newFixture(t)
	f.workflows.EXPECT().Load(gomock.Any()).Return(map[string]domain.Workflow{}, nil)

	var buf bytes.Buffer
	require.NoError(t, f.app.CINext(context.Background(), &buf))

	// Only upgrade-locks carries a schedule.
	assert.Contains(t, buf.String(), "upgrade-locks: ")
	assert.NotContains(t, buf.String(), "verify-locks")
}
