package oci

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/core/ports"
)

const NodeID graft.ID = "adapter.oci"

func init() {
	graft.Register(graft.Node[ports.ImageResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ImageResolver, error) {
			return NewResolver(), nil
		},
	})
}
