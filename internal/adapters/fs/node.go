package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/core/domain"
)

const (
	EnumeratorNodeID graft.ID = "adapter.fs.enumerator"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[*Enumerator]{
		ID:        EnumeratorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Enumerator, error) {
			cfg, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			resolver := domain.NewRouteResolver(cfg.RoutesRoot(), cfg.Extensions)
			return NewEnumerator(resolver, NewWalker(cfg.Extensions)), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})
}
