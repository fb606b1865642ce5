package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/logger"
	"go.trai.ch/regen/internal/adapters/metrics"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, metrics.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
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

			native, nerr := NewNative(log)
			if nerr != nil {
				log.Error(zerr.Wrap(nerr, "native watch unavailable, relying on polling"))
				native = nil
			}
			poller := NewPoller(cfg.Extensions, cfg.Watch.PollInterval, log)
			return NewDetector(native, poller, cfg.Watch.DedupeWindow, log, recorder), nil
		},
	})
}
