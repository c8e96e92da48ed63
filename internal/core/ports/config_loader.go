package ports

import "go.trai.ch/reinhard/internal/core/domain"

// SettingsLoader loads the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SettingsLoader interface {
	// Load discovers and parses the project configuration starting from
	// cwd, applying defaults and environment overrides. A missing config
	// file is not an error.
	Load(cwd string) (*domain.Settings, error)
}
