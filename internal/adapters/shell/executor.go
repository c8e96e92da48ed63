// Package shell provides the step script executor adapter.
package shell

import (
	"context"
	"io"
	"os/exec"

	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the script through "sh -ec" in dir with the given
// environment, streaming combined output to out.
func (e *Executor) Execute(ctx context.Context, script, dir string, env []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "sh", "-ec", script) //nolint:gosec // user provided step script
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		// Capture exit code if possible
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}
