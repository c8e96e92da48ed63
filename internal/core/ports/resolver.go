package ports

import (
	"context"

	"go.trai.ch/reinhard/internal/core/domain"
)

// ReleaseResolver resolves packages and releases against a package index.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ReleaseResolver interface {
	// Project returns the published versions of a package.
	Project(ctx context.Context, name string) (*domain.Project, error)

	// Release returns a single release together with its requirements.
	Release(ctx context.Context, name, version string) (*domain.Release, error)
}
