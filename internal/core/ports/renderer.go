package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation, so the same span
// stream can drive different output surfaces.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush
	// any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called when the run plan is known.
	// jobs: all job names in execution order
	// deps: dependency map (job -> list of needs)
	// targets: the user-requested targets
	OnPlanEmit(jobs []string, deps map[string][]string, targets []string)

	// OnJobStart is called when a unit of work begins.
	OnJobStart(spanID, parentID, name string, startTime time.Time)

	// OnJobLog is called when a unit of work emits output.
	// data may contain partial lines.
	OnJobLog(spanID string, data []byte)

	// OnJobComplete is called when a unit of work finishes.
	// err is nil on success.
	OnJobComplete(spanID string, endTime time.Time, err error)
}
