package refindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.IndexStore = (*Store)(nil)

// Store persists reference index artifacts as JSON files next to a
// manifest that records their content hashes.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// artifactFileName returns the file name for a named index artifact.
func artifactFileName(name string) string {
	return name + "_index.json"
}

// Write serializes the index to <name>_index.json under dir and returns
// its manifest entry.
func (s *Store) Write(dir, name, version string, index *domain.ReferenceIndex) (domain.ManifestEntry, error) {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		writeErr := zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
		return domain.ManifestEntry{}, zerr.With(writeErr, "index", name)
	}
	data = append(data, '\n')

	file := artifactFileName(name)
	if err := atomicWriteFile(filepath.Join(dir, file), data); err != nil {
		writeErr := zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
		return domain.ManifestEntry{}, zerr.With(writeErr, "index", name)
	}

	return domain.ManifestEntry{
		File:    file,
		Hash:    hashArtifact(data),
		Version: version,
	}, nil
}

// WriteManifest writes the artifact manifest for dir.
func (s *Store) WriteManifest(dir string, manifest domain.IndexManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}
	data = append(data, '\n')

	if err := atomicWriteFile(filepath.Join(dir, domain.ManifestFileName), data); err != nil {
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}
	return nil
}

// Manifest reads the artifact manifest for dir.
func (s *Store) Manifest(dir string) (domain.IndexManifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, domain.ManifestFileName)) //nolint:gosec // path comes from configuration
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return domain.IndexManifest{}, zerr.With(readErr, "dir", dir)
	}

	var manifest domain.IndexManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		readErr := zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return domain.IndexManifest{}, zerr.With(readErr, "dir", dir)
	}
	return manifest, nil
}

// Load reads a named index from dir. Unless skipVerify is set the
// artifact's hash is checked against the manifest first.
func (s *Store) Load(dir, name string, skipVerify bool) (*domain.ReferenceIndex, error) {
	data, err := os.ReadFile(filepath.Join(dir, artifactFileName(name))) //nolint:gosec // path comes from configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrIndexNotFound, "index", name)
		}
		readErr := zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return nil, zerr.With(readErr, "index", name)
	}

	if !skipVerify {
		manifest, err := s.Manifest(dir)
		if err != nil {
			return nil, err
		}
		if err := verifyEntry(manifest, name, data); err != nil {
			return nil, err
		}
	}

	var index domain.ReferenceIndex
	if err := json.Unmarshal(data, &index); err != nil {
		readErr := zerr.Wrap(err, domain.ErrIndexParseFailed.Error())
		return nil, zerr.With(readErr, "index", name)
	}
	return &index, nil
}

// Verify checks that every manifest entry's artifact exists and matches
// its recorded hash. All findings are reported.
func (s *Store) Verify(dir string) error {
	manifest, err := s.Manifest(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(manifest.Entries))
	for name := range manifest.Entries {
		names = append(names, name)
	}
	slices.Sort(names)

	var findings []error
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, manifest.Entries[name].File)) //nolint:gosec // path comes from manifest
		if err != nil {
			findings = append(findings, zerr.With(domain.ErrIndexNotFound, "index", name))
			continue
		}
		if err := verifyEntry(manifest, name, data); err != nil {
			findings = append(findings, err)
		}
	}

	return errors.Join(findings...)
}

// verifyEntry checks one artifact's content against the manifest.
func verifyEntry(manifest domain.IndexManifest, name string, data []byte) error {
	entry, ok := manifest.Entries[name]
	if !ok {
		return zerr.With(domain.ErrManifestMismatch, "index", name)
	}

	if got := hashArtifact(data); got != entry.Hash {
		mismatchErr := zerr.With(domain.ErrManifestMismatch, "index", name)
		mismatchErr = zerr.With(mismatchErr, "want", entry.Hash)
		return zerr.With(mismatchErr, "got", got)
	}
	return nil
}

// hashArtifact returns the hex xxhash of an artifact's bytes.
func hashArtifact(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// atomicWriteFile writes data via a temp file rename in the same
// directory, creating the directory if needed.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".index-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
