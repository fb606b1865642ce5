package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/logger"
	"go.trai.ch/regen/internal/adapters/marker"
	"go.trai.ch/regen/internal/adapters/telemetry"
	"go.trai.ch/regen/internal/core/ports"
)

const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[ports.BuildRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, marker.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (ports.BuildRunner, error) {
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.GenerationStore](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			opts := Options{
				Command:     cfg.Build.Command,
				FullCommand: cfg.Build.FullCommand,
				WorkDir:     cfg.Root,
				Timeout:     cfg.Build.Timeout,
				ExtraEnv:    cfg.Build.Env,
			}
			return NewRunner(opts, store, tel, log), nil
		},
	})
}
