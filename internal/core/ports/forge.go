package ports

import (
	"context"

	"go.trai.ch/reinhard/internal/core/domain"
)

// Forge is the code host API surface needed to open pull requests.
//
//go:generate go run go.uber.org/mock/mockgen -source=forge.go -destination=mocks/mock_forge.go -package=mocks
type Forge interface {
	// EnsurePullRequest opens a pull request for the head branch, or
	// updates the existing open one. It returns the pull request URL and
	// whether it was newly created.
	EnsurePullRequest(ctx context.Context, pr domain.PullRequest) (url string, created bool, err error)
}

// ForgeFactory creates a Forge bound to the current repository. Binding is
// deferred so that token and remote lookups only happen on publish paths.
type ForgeFactory func(ctx context.Context) (Forge, error)
