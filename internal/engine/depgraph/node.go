package depgraph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/fs"
	"go.trai.ch/regen/internal/adapters/logger"
	"go.trai.ch/regen/internal/adapters/metrics"
	"go.trai.ch/regen/internal/core/ports"
)

const (
	BuilderNodeID graft.ID = "engine.depgraph.builder"
	NodeID        graft.ID = "engine.depgraph"
)

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        BuilderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, fs.EnumeratorNodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			enumerator, err := graft.Dep[*fs.Enumerator](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(enumerator, cfg.SourceRoot(), cfg.Aliases, cfg.Extensions, cfg.Graph.MaxDepth), nil
		},
	})

	graft.Register(graft.Node[*Refresher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{BuilderNodeID, config.NodeID, logger.NodeID, metrics.NodeID},
		Run: func(ctx context.Context) (*Refresher, error) {
			builder, err := graft.Dep[*Builder](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			recorder, err := graft.Dep[ports.Recorder](ctx)
			if err != nil {
				return nil, err
			}
			return NewRefresher(builder, cfg.Graph.RefreshDebounce, log, recorder), nil
		},
	})
}
