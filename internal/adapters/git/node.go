package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/adapters/config"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
)

const NodeID graft.ID = "adapter.git"

func init() {
	graft.Register(graft.Node[ports.Vcs]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Vcs, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(settings.Root), nil
		},
	})
}
