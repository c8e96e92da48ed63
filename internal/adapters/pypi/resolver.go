// Package pypi implements the ReleaseResolver port for a PyPI-shaped
// package index, with a local JSON file cache.
package pypi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultBaseURL    = "https://pypi.org"
	httpClientTimeout = 30 * time.Second
)

var _ ports.ReleaseResolver = (*Resolver)(nil)

// Resolver implements ports.ReleaseResolver against a package index API
// with local caching.
type Resolver struct {
	baseURL    string
	cacheDir   string
	httpClient *http.Client
}

// NewResolver creates a new ReleaseResolver for the given index base URL.
// An empty base URL selects the public index.
func NewResolver(baseURL string) (*Resolver, error) {
	return newResolverWithPath(baseURL, domain.DefaultIndexCachePath())
}

// newResolverWithPath creates a Resolver with a custom cache path (used for testing).
func newResolverWithPath(baseURL, path string) (*Resolver, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error())
	}

	return &Resolver{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		cacheDir: cleanPath,
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}, nil
}

// Project returns the published versions of a package.
// It checks the cache first, then queries the index API.
func (r *Resolver) Project(ctx context.Context, name string) (*domain.Project, error) {
	name = domain.NormalizeName(name)

	cachePath := r.cachePath(name, "")
	if entry, err := r.loadFromCache(cachePath); err == nil {
		return projectFromCache(entry), nil
	}

	url := fmt.Sprintf("%s/pypi/%s/json", r.baseURL, name)
	var resp projectResponse
	if err := r.query(ctx, url, name, "", &resp); err != nil {
		return nil, err
	}

	entry := cacheEntry{
		Name:      name,
		Latest:    resp.Info.Version,
		Timestamp: time.Now(),
	}
	for version := range resp.Releases {
		entry.Versions = append(entry.Versions, version)
	}

	// Best effort: a cache write failure never fails the lookup.
	_ = r.saveToCache(cachePath, entry)

	return projectFromCache(entry), nil
}

// Release returns a single release with its parsed requirements.
func (r *Resolver) Release(ctx context.Context, name, version string) (*domain.Release, error) {
	name = domain.NormalizeName(name)

	cachePath := r.cachePath(name, version)
	if entry, err := r.loadFromCache(cachePath); err == nil {
		return releaseFromCache(entry)
	}

	url := fmt.Sprintf("%s/pypi/%s/%s/json", r.baseURL, name, version)
	var resp releaseResponse
	if err := r.query(ctx, url, name, version, &resp); err != nil {
		return nil, err
	}

	entry := cacheEntry{
		Name:      name,
		Version:   version,
		Requires:  resp.Info.RequiresDist,
		Timestamp: time.Now(),
	}
	_ = r.saveToCache(cachePath, entry)

	return releaseFromCache(entry)
}

// projectFromCache converts a cache entry to the domain form.
func projectFromCache(entry cacheEntry) *domain.Project {
	project := &domain.Project{
		Name:   entry.Name,
		Latest: domain.ParseVersion(entry.Latest),
	}
	for _, v := range entry.Versions {
		project.Versions = append(project.Versions, domain.ParseVersion(v))
	}
	return project
}

// releaseFromCache converts a cache entry to the domain form, parsing the
// raw requirement strings.
func releaseFromCache(entry cacheEntry) (*domain.Release, error) {
	release := &domain.Release{
		Name:    entry.Name,
		Version: domain.ParseVersion(entry.Version),
	}

	for _, raw := range entry.Requires {
		req, ok, err := parseRequiresDist(raw)
		if err != nil {
			parseErr := zerr.With(err, "package", entry.Name)
			return nil, zerr.With(parseErr, "requirement", raw)
		}
		if ok {
			release.Requires = append(release.Requires, req)
		}
	}

	return release, nil
}

// requiresDistName matches the leading package name with an optional
// extras bracket.
var requiresDistName = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(\[[^\]]*\])?\s*`)

// parseRequiresDist parses one requires_dist entry. Requirements gated on
// an extra are skipped (ok=false); environment markers are otherwise
// ignored.
func parseRequiresDist(raw string) (domain.Requirement, bool, error) {
	spec, marker, _ := strings.Cut(raw, ";")
	if strings.Contains(marker, "extra") {
		return domain.Requirement{}, false, nil
	}

	spec = strings.TrimSpace(spec)
	spec = strings.ReplaceAll(spec, "(", "")
	spec = strings.ReplaceAll(spec, ")", "")

	match := requiresDistName.FindStringSubmatch(spec)
	if match == nil {
		return domain.Requirement{}, false, zerr.With(domain.ErrInvalidRequirement, "entry", raw)
	}

	versionSpec, err := domain.ParseVersionSpec(spec[len(match[0]):])
	if err != nil {
		return domain.Requirement{}, false, err
	}

	return domain.Requirement{Name: match[1], Spec: versionSpec}, true, nil
}

// cachePath returns the file path for the cache entry.
func (r *Resolver) cachePath(name, version string) string {
	input := name
	if version != "" {
		input += "@" + version
	}
	hash := sha256.Sum256([]byte(input))
	return filepath.Join(r.cacheDir, hex.EncodeToString(hash[:])+".json")
}

// loadFromCache attempts to load a cached lookup result.
func (r *Resolver) loadFromCache(path string) (cacheEntry, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cacheEntry{}, domain.ErrIndexCacheReadFailed
		}
		return cacheEntry{}, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return cacheEntry{}, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}
	if entry.Name == "" {
		return cacheEntry{}, domain.ErrIndexCacheReadFailed
	}

	return entry, nil
}

// saveToCache saves a lookup result to the cache atomically.
func (r *Resolver) saveToCache(path string, entry cacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}

	if err := r.atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}

	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp
// file and renaming it.
func (r *Resolver) atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "resolver-cache-*.json")
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

// query performs a GET against the index API and decodes the JSON body.
func (r *Resolver) query(ctx context.Context, url, name, version string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		notFoundErr := zerr.With(domain.ErrPackageNotFound, "package", name)
		if version != "" {
			notFoundErr = zerr.With(notFoundErr, "version", version)
		}
		return notFoundErr
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrIndexRequestFailed, "status_code", resp.StatusCode)
		return zerr.With(apiErr, "package", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}

	if err := json.Unmarshal(body, out); err != nil {
		return zerr.Wrap(err, domain.ErrIndexParseFailed.Error())
	}

	return nil
}
