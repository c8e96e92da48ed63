package shell_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/adapters/shell"
	"go.trai.ch/reinhard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	return shell.NewExecutor(mocks.NewMockLogger(ctrl))
}

func TestExecutor_Execute(t *testing.T) {
	var out bytes.Buffer

	err := newExecutor(t).Execute(context.Background(), "echo hello", t.TempDir(), os.Environ(), &out)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestExecutor_Execute_Env(t *testing.T) {
	var out bytes.Buffer

	env := append(os.Environ(), "GREETING=hi")
	err := newExecutor(t).Execute(context.Background(), "echo $GREETING", t.TempDir(), env, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestExecutor_Execute_FailsFast(t *testing.T) {
	var out bytes.Buffer

	// -e stops at the first failing command.
	err := newExecutor(t).Execute(context.Background(), "false\necho unreachable", t.TempDir(), os.Environ(), &out)
	require.Error(t, err)
	assert.NotContains(t, out.String(), "unreachable")
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()

	err := newExecutor(t).Execute(context.Background(), "pwd", dir, os.Environ(), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), dir)
}

func TestExecutor_Execute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newExecutor(t).Execute(ctx, "sleep 10", t.TempDir(), os.Environ(), &bytes.Buffer{})
	require.Error(t, err)
}
