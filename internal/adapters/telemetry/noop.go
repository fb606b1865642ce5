// Package telemetry provides build progress recording.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/regen/internal/core/ports"
)

var _ ports.Telemetry = Noop{}

// Noop discards all recorded progress. Used when rich progress output
// is disabled.
type Noop struct{}

// Record returns an inert vertex.
func (Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Complete(error)    {}
