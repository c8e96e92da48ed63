package telemetry

import (
	"context"
	"io"

	"go.trai.ch/reinhard/internal/core/ports"
)

var _ ports.Tracer = (*NoopTracer)(nil)

// NoopTracer is a Tracer that discards everything. It is used in tests and
// for operations that do not render progress.
type NoopTracer struct{}

// NewNoopTracer creates a new NoopTracer.
func NewNoopTracer() *NoopTracer {
	return &NoopTracer{}
}

// Start returns a span that discards all input.
func (t *NoopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

// EmitPlan does nothing.
func (t *NoopTracer) EmitPlan(_ context.Context, _ []string, _ map[string][]string, _ []string) {}

type noopSpan struct{}

func (noopSpan) End()                        {}
func (noopSpan) RecordError(error)           {}
func (noopSpan) SetAttribute(string, any)    {}
func (noopSpan) Write(p []byte) (int, error) { return len(p), nil }

var _ io.Writer = noopSpan{}
