package ports

import (
	"context"

	"github.com/opencontainers/go-digest"
)

// ImageResolver resolves image tags against their registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type ImageResolver interface {
	// ResolveDigest returns the digest the tag currently points at.
	ResolveDigest(ctx context.Context, repository, tag string) (digest.Digest, error)
}
