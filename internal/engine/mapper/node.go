package mapper

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/engine/depgraph"
)

const NodeID graft.ID = "engine.mapper"

func init() {
	graft.Register(graft.Node[*Mapper]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, depgraph.NodeID},
		Run: func(ctx context.Context) (*Mapper, error) {
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			refresher, err := graft.Dep[*depgraph.Refresher](ctx)
			if err != nil {
				return nil, err
			}
			resolver := domain.NewRouteResolver(cfg.RoutesRoot(), cfg.Extensions)
			return NewMapper(resolver, refresher, cfg.SourceRoot()), nil
		},
	})
}
