package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/telemetry/progrock"
	"go.trai.ch/regen/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			// Rich progress rendering is opt-in; a long-running watch
			// process defaults to plain log lines.
			if os.Getenv("REGEN_PROGRESS") == "1" {
				return progrock.New(), nil
			}
			return Noop{}, nil
		},
	})
}
