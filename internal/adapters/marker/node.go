package marker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/core/ports"
)

const NodeID graft.ID = "adapter.marker"

func init() {
	graft.Register(graft.Node[ports.GenerationStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.GenerationStore, error) {
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.MarkerPath()), nil
		},
	})
}
