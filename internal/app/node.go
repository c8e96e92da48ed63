package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/adapters/config"
	"go.trai.ch/reinhard/internal/adapters/git"
	"go.trai.ch/reinhard/internal/adapters/github"
	"go.trai.ch/reinhard/internal/adapters/lockfile"
	"go.trai.ch/reinhard/internal/adapters/logger"
	"go.trai.ch/reinhard/internal/adapters/oci"
	"go.trai.ch/reinhard/internal/adapters/pypi"
	"go.trai.ch/reinhard/internal/adapters/refindex"
	"go.trai.ch/reinhard/internal/adapters/shell"
	"go.trai.ch/reinhard/internal/adapters/watcher"
	"go.trai.ch/reinhard/internal/adapters/workflows"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
)

const (
	// NodeID identifies the application node.
	NodeID graft.ID = "app"

	// ComponentsNodeID identifies the components node consumed by the CLI.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

//nolint:cyclop // dependency assembly
func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			lockfile.NodeID,
			pypi.NodeID,
			git.NodeID,
			github.NodeID,
			oci.NodeID,
			refindex.GeneratorNodeID,
			refindex.StoreNodeID,
			workflows.NodeID,
			shell.NodeID,
			watcher.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.ReleaseResolver](ctx)
			if err != nil {
				return nil, err
			}
			vcs, err := graft.Dep[ports.Vcs](ctx)
			if err != nil {
				return nil, err
			}
			forge, err := graft.Dep[ports.ForgeFactory](ctx)
			if err != nil {
				return nil, err
			}
			images, err := graft.Dep[ports.ImageResolver](ctx)
			if err != nil {
				return nil, err
			}
			generator, err := graft.Dep[ports.IndexGenerator](ctx)
			if err != nil {
				return nil, err
			}
			indexes, err := graft.Dep[ports.IndexStore](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.WorkflowLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, settings, locks, resolver, vcs, forge, images,
				generator, indexes, loader, executor, watch), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
