package ports

import (
	"context"

	"go.trai.ch/reinhard/internal/core/domain"
)

// Vcs is the version control surface needed to publish lock upgrades.
//
//go:generate go run go.uber.org/mock/mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type Vcs interface {
	// ChangedPaths returns the worktree's modified paths (porcelain status).
	ChangedPaths(ctx context.Context) ([]string, error)

	// HeadBranch returns the currently checked out branch name.
	HeadBranch(ctx context.Context) (string, error)

	// RemoteURL returns the fetch URL of the origin remote.
	RemoteURL(ctx context.Context) (string, error)

	// CheckoutNew creates (or resets) and checks out a branch.
	CheckoutNew(ctx context.Context, branch string) error

	// Add stages the given paths.
	Add(ctx context.Context, paths []string) error

	// Commit records a commit with the given identity as author and
	// committer.
	Commit(ctx context.Context, message string, identity domain.Identity) error

	// Push force-with-lease pushes the branch to origin.
	Push(ctx context.Context, branch string) error
}
