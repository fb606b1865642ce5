package metrics

import (
	"time"

	"go.trai.ch/regen/internal/core/ports"
)

var _ ports.Recorder = Noop{}

// Noop discards all measurements. Used when no metrics address is
// configured.
type Noop struct{}

func (Noop) ChangeDetected(string)               {}
func (Noop) BuildFinished(string, time.Duration) {}
func (Noop) GraphRefreshed()                     {}
func (Noop) SetPendingRoutes(int)                {}
