package refindex

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/adapters/logger"
	"go.trai.ch/reinhard/internal/core/ports"
)

const (
	// GeneratorNodeID identifies the index generator node.
	GeneratorNodeID graft.ID = "adapter.refindex.generator"

	// StoreNodeID identifies the index store node.
	StoreNodeID graft.ID = "adapter.refindex.store"
)

func init() {
	graft.Register(graft.Node[ports.IndexGenerator]{
		ID:        GeneratorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.IndexGenerator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewGenerator(log), nil
		},
	})

	graft.Register(graft.Node[ports.IndexStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.IndexStore, error) {
			return NewStore(), nil
		},
	})
}
