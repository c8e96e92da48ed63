package oci

import (
	"context"
	"strings"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
	"oras.land/oras-go/v2/registry/remote"
)

var _ ports.ImageResolver = (*Resolver)(nil)

// manifestMediaTypes are the media types a tag is expected to resolve to.
var manifestMediaTypes = map[string]bool{
	ocispec.MediaTypeImageManifest: true,
	ocispec.MediaTypeImageIndex:    true,
	"application/vnd.docker.distribution.manifest.v2+json":      true,
	"application/vnd.docker.distribution.manifest.list.v2+json": true,
}

// Resolver implements ports.ImageResolver against OCI registries.
type Resolver struct{}

// NewResolver creates a registry-backed image resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveDigest returns the digest the tag currently points at.
func (r *Resolver) ResolveDigest(ctx context.Context, repository, tag string) (digest.Digest, error) {
	repo, err := remote.NewRepository(qualifyRepository(repository))
	if err != nil {
		resolveErr := zerr.Wrap(err, domain.ErrImageResolveFailed.Error())
		return "", zerr.With(resolveErr, "repository", repository)
	}

	desc, err := repo.Resolve(ctx, tag)
	if err != nil {
		resolveErr := zerr.Wrap(err, domain.ErrImageResolveFailed.Error())
		resolveErr = zerr.With(resolveErr, "repository", repository)
		return "", zerr.With(resolveErr, "tag", tag)
	}

	if !manifestMediaTypes[desc.MediaType] {
		resolveErr := zerr.With(domain.ErrImageResolveFailed, "repository", repository)
		resolveErr = zerr.With(resolveErr, "tag", tag)
		return "", zerr.With(resolveErr, "media_type", desc.MediaType)
	}

	return desc.Digest, nil
}

// qualifyRepository expands Docker Hub shorthand references to their full
// registry form, matching how container engines resolve them.
func qualifyRepository(repository string) string {
	host, _, found := strings.Cut(repository, "/")
	if found && (strings.ContainsAny(host, ".:") || host == "localhost") {
		return repository
	}
	if !found {
		return "registry-1.docker.io/library/" + repository
	}
	return "registry-1.docker.io/" + repository
}
