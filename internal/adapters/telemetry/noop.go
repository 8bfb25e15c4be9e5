// Package telemetry provides progress recorders for pipeline stages.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
)

var _ ports.Telemetry = (*NoOp)(nil)

// NoOp is a telemetry recorder that discards everything.
type NoOp struct{}

// NewNoOp creates a new NoOp recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a context carrying a vertex that discards its output.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

// NoOpVertex is a vertex that discards everything.
type NoOpVertex struct{}

// Stdout returns io.Discard.
func (NoOpVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns io.Discard.
func (NoOpVertex) Stderr() io.Writer { return io.Discard }

// Log does nothing.
func (NoOpVertex) Log(domain.LogLevel, string) {}

// Complete does nothing.
func (NoOpVertex) Complete(error) {}

// Cached does nothing.
func (NoOpVertex) Cached() {}
