// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/reinhard/internal/adapters/config"
	_ "go.trai.ch/reinhard/internal/adapters/git"
	_ "go.trai.ch/reinhard/internal/adapters/github"
	_ "go.trai.ch/reinhard/internal/adapters/lockfile"
	_ "go.trai.ch/reinhard/internal/adapters/logger"
	_ "go.trai.ch/reinhard/internal/adapters/oci"
	_ "go.trai.ch/reinhard/internal/adapters/pypi"
	_ "go.trai.ch/reinhard/internal/adapters/refindex"
	_ "go.trai.ch/reinhard/internal/adapters/shell"
	_ "go.trai.ch/reinhard/internal/adapters/watcher"
	_ "go.trai.ch/reinhard/internal/adapters/workflows"
	// Register app nodes.
	_ "go.trai.ch/reinhard/internal/app"
)
