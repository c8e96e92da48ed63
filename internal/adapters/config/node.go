package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/reinhard/internal/adapters/logger"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
)

const (
	// LoaderNodeID identifies the settings loader node.
	LoaderNodeID graft.ID = "adapter.config.loader"

	// NodeID identifies the loaded settings node.
	NodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SettingsLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Settings, error) {
			loader, err := graft.Dep[ports.SettingsLoader](ctx)
			if err != nil {
				return nil, err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return loader.Load(cwd)
		},
	})
}
