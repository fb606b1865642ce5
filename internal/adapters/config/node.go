package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.config"

// DefaultFilename is the config file loaded when REGEN_CONFIG is unset.
const DefaultFilename = "regen.yaml"

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Settings, error) {
			path := os.Getenv("REGEN_CONFIG")
			if path == "" {
				path = DefaultFilename
			}
			return Load(path)
		},
	})
}
