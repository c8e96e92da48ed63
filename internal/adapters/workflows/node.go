package workflows

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/adapters/logger"
	"go.trai.ch/reinhard/internal/core/ports"
)

const NodeID graft.ID = "adapter.workflows"

func init() {
	graft.Register(graft.Node[ports.WorkflowLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WorkflowLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
