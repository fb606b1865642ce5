package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/fs"
	"go.trai.ch/regen/internal/adapters/logger"
	"go.trai.ch/regen/internal/adapters/metrics"
	"go.trai.ch/regen/internal/adapters/shell"
	"go.trai.ch/regen/internal/adapters/telemetry"
	"go.trai.ch/regen/internal/adapters/watcher"
	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/regen/internal/engine/depgraph"
	"go.trai.ch/regen/internal/engine/mapper"
	"go.trai.ch/regen/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			watcher.NodeID,
			fs.EnumeratorNodeID,
			depgraph.NodeID,
			mapper.NodeID,
			scheduler.NodeID,
			shell.NodeID,
			telemetry.NodeID,
			metrics.ServerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log, Settings: cfg}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*config.Settings](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	detector, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	enumerator, err := graft.Dep[*fs.Enumerator](ctx)
	if err != nil {
		return nil, err
	}
	refresher, err := graft.Dep[*depgraph.Refresher](ctx)
	if err != nil {
		return nil, err
	}
	routeMapper, err := graft.Dep[*mapper.Mapper](ctx)
	if err != nil {
		return nil, err
	}
	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.BuildRunner](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	metricsSrv, err := graft.Dep[*metrics.Server](ctx)
	if err != nil {
		return nil, err
	}

	resolver := domain.NewRouteResolver(cfg.RoutesRoot(), cfg.Extensions)
	return New(cfg, log, detector, enumerator, resolver, refresher, routeMapper, sched, runner, tel, metricsSrv), nil
}
