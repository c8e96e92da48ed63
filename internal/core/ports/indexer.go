package ports

import (
	"context"

	"go.trai.ch/reinhard/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=indexer.go -destination=mocks/mock_indexer.go -package=mocks

// IndexGenerator builds a reference index from a profile entry's source
// roots.
type IndexGenerator interface {
	// Generate indexes the entry's index roots and scans its scan roots.
	// version stamps the artifact.
	Generate(ctx context.Context, entry domain.ProfileEntry, version string) (*domain.ReferenceIndex, error)
}

// IndexStore persists reference index artifacts and their manifest.
type IndexStore interface {
	// Write serializes an index to <name>_index.json under dir and
	// returns its manifest entry.
	Write(dir, name, version string, index *domain.ReferenceIndex) (domain.ManifestEntry, error)

	// WriteManifest writes the artifact manifest for dir.
	WriteManifest(dir string, manifest domain.IndexManifest) error

	// Manifest reads the artifact manifest for dir.
	Manifest(dir string) (domain.IndexManifest, error)

	// Load reads a named index from dir, verifying its manifest hash
	// unless skipVerify is set.
	Load(dir, name string, skipVerify bool) (*domain.ReferenceIndex, error)

	// Verify checks manifest presence and per-file hashes for every entry.
	Verify(dir string) error
}
