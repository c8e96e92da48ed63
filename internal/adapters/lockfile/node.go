package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/core/ports"
)

const NodeID graft.ID = "adapter.lockfile"

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.LockStore, error) {
			return NewStore(), nil
		},
	})
}
