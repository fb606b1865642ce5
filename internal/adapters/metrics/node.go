package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/logger"
	"go.trai.ch/regen/internal/core/ports"
)

const (
	NodeID       graft.ID = "adapter.metrics"
	ServerNodeID graft.ID = "adapter.metrics.server"
)

func init() {
	graft.Register(graft.Node[ports.Recorder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Recorder, error) {
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			if cfg.Metrics.Addr == "" {
				return Noop{}, nil
			}
			reg := prom.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			return NewPrometheus(reg), nil
		},
	})

	graft.Register(graft.Node[*Server]{
		ID:        ServerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, NodeID},
		Run: func(ctx context.Context) (*Server, error) {
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
			if promRecorder, ok := recorder.(*Prometheus); ok {
				return NewServer(cfg.Metrics.Addr, promRecorder.Registry(), log), nil
			}
			return NewServer("", nil, log), nil
		},
	})
}
