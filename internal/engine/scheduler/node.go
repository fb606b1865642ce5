package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/fs"
	"go.trai.ch/regen/internal/adapters/logger"
	"go.trai.ch/regen/internal/adapters/metrics"
	"go.trai.ch/regen/internal/adapters/shell"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/regen/internal/engine/depgraph"
)

const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, metrics.NodeID, shell.NodeID, fs.HasherNodeID, depgraph.NodeID},
		Run: func(ctx context.Context) (*Scheduler, error) {
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
			runner, err := graft.Dep[ports.BuildRunner](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			refresher, err := graft.Dep[*depgraph.Refresher](ctx)
			if err != nil {
				return nil, err
			}

			opts := Options{
				Debounce:      cfg.Build.Debounce,
				ManifestPath:  cfg.ManifestPath(),
				SkipUnchanged: cfg.Build.SkipUnchanged,
			}
			return New(runner, hasher, refresher, opts, log, recorder), nil
		},
	})
}
