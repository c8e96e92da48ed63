package ports

import (
	"context"
	"io"
)

// Executor runs workflow step scripts.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs a shell script in dir with the given environment.
	//
	// The env parameter contains the fully merged environment in
	// "KEY=VALUE" format. Combined stdout/stderr is streamed to out.
	//
	// It returns an error if the script exits non-zero.
	Execute(ctx context.Context, script, dir string, env []string, out io.Writer) error
}
