package workflow_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/engine/workflow"
)

func noopAction(context.Context, map[string]string, io.Writer) error { return nil }

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := workflow.NewRegistry()
	registry.Register("locks/verify", noopAction)

	action, err := registry.Lookup("locks/verify")
	require.NoError(t, err)
	assert.NotNil(t, action)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	registry := workflow.NewRegistry()

	_, err := registry.Lookup("locks/verify")
	require.ErrorIs(t, err, domain.ErrUnknownAction)
}

func TestRegistry_Names(t *testing.T) {
	registry := workflow.NewRegistry()
	registry.Register("locks/verify", noopAction)
	registry.Register("image/bump", noopAction)
	registry.Register("locks/upgrade", noopAction)

	assert.Equal(t, []string{"image/bump", "locks/upgrade", "locks/verify"}, registry.Names())
}
