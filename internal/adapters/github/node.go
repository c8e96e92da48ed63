package github

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/adapters/config"
	"go.trai.ch/reinhard/internal/adapters/git"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
)

const NodeID graft.ID = "adapter.github"

func init() {
	graft.Register(graft.Node[ports.ForgeFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, git.NodeID},
		Run: func(ctx context.Context) (ports.ForgeFactory, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			vcs, err := graft.Dep[ports.Vcs](ctx)
			if err != nil {
				return nil, err
			}

			// Token and remote are resolved on first use, so commands
			// that never publish work without credentials.
			return func(ctx context.Context) (ports.Forge, error) {
				remote, err := vcs.RemoteURL(ctx)
				if err != nil {
					return nil, err
				}
				token, err := ResolveToken(settings.Publish.TokenEnv)
				if err != nil {
					return nil, err
				}
				return NewClient(remote, token, "")
			}, nil
		},
	})
}
