package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/reinhard/internal/adapters/logger"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated
// testing. It also sets NO_COLOR=1 to ensure deterministic output without
// ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

// chainedError exposes its message without the chain, like zerr errors do.
type chainedError struct {
	msg   string
	cause error
}

func (e *chainedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *chainedError) Message() string { return e.msg }

func (e *chainedError) Unwrap() error { return e.cause }

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{
			name:       "simple message",
			msg:        "verified 3 lock file(s)",
			goldenName: "info_basic",
		},
		{
			name:       "empty message",
			msg:        "",
			goldenName: "info_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("docker.io/library/python:3.12 has moved")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "chained error",
			err: &chainedError{
				msg: "verification failed",
				cause: &chainedError{
					msg:   "failed to read lock file",
					cause: errors.New("open dev-requirements/nox.txt: no such file or directory"),
				},
			},
			goldenName: "error_chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Zero(t, buf.Len())
}

func TestLogger_DebugSuppressedByDefault(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Debug("hidden")
	assert.Zero(t, buf.Len())

	lg.SetLevel(slog.LevelDebug)
	lg.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogger_JSONMode(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Info("generated index")

	assert.Contains(t, buf.String(), `"msg":"generated index"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}
