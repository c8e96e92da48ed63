// Package lockfile implements the LockStore port on the dev-requirements
// lock file format: one "name==version" pin per line, with optional
// "# via <origin>" annotations and sibling <name>.in source manifests.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockStore = (*Store)(nil)

// requirementNamePattern matches the package name at the start of a
// requirement line, with an optional extras bracket.
var requirementNamePattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)(\[[^\]]*\])?`)

// Store implements ports.LockStore.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load parses every *.txt lock file under dir together with its sibling
// *.in source manifest.
func (s *Store) Load(dir string) (domain.LockSet, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return domain.LockSet{}, zerr.Wrap(err, domain.ErrLockReadFailed.Error())
	}
	sort.Strings(paths)

	set := domain.LockSet{}
	for _, path := range paths {
		file, err := s.parseLockFile(path)
		if err != nil {
			return domain.LockSet{}, err
		}

		manifest := strings.TrimSuffix(path, ".txt") + ".in"
		if _, statErr := os.Stat(manifest); statErr == nil {
			reqs, err := s.parseManifest(manifest)
			if err != nil {
				return domain.LockSet{}, err
			}
			file.Requirements = reqs
		}

		set.Files = append(set.Files, file)
	}

	return set, nil
}

// parseLockFile parses a single lock file. Parsing is strict: every
// non-comment line must be an exact == pin and no package may appear twice.
func (s *Store) parseLockFile(path string) (domain.LockFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the configured locks dir
	if err != nil {
		return domain.LockFile{}, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "file", path)
	}

	file := domain.LockFile{Path: path}
	seen := make(map[string]bool)

	for lineNo, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split off a trailing comment; only "via" annotations survive.
		var origin string
		if body, comment, found := strings.Cut(line, " #"); found {
			line = strings.TrimSpace(body)
			comment = strings.TrimSpace(comment)
			if after, ok := strings.CutPrefix(comment, "via "); ok {
				origin = strings.TrimSpace(after)
			}
		}

		name, version, found := strings.Cut(line, "==")
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if !found || name == "" || version == "" || strings.ContainsAny(name, "<>!~=") || strings.ContainsAny(version, "<>!~=") {
			pinErr := zerr.With(domain.ErrInexactPin, "file", path)
			pinErr = zerr.With(pinErr, "line", lineNo+1)
			return domain.LockFile{}, zerr.With(pinErr, "entry", line)
		}

		normalized := domain.NormalizeName(name)
		if seen[normalized] {
			dupErr := zerr.With(domain.ErrDuplicatePin, "file", path)
			dupErr = zerr.With(dupErr, "line", lineNo+1)
			return domain.LockFile{}, zerr.With(dupErr, "package", normalized)
		}
		seen[normalized] = true

		file.Pins = append(file.Pins, domain.Pin{
			Name:    name,
			Version: domain.ParseVersion(version),
			Origin:  origin,
		})
	}

	return file, nil
}

// parseManifest parses a source manifest of requirement lines.
func (s *Store) parseManifest(path string) ([]domain.Requirement, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the configured locks dir
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "file", path)
	}

	var reqs []domain.Requirement
	for lineNo, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if body, _, found := strings.Cut(line, " #"); found {
			line = strings.TrimSpace(body)
		}

		match := requirementNamePattern.FindStringSubmatch(line)
		if match == nil {
			reqErr := zerr.With(domain.ErrInvalidRequirement, "file", path)
			reqErr = zerr.With(reqErr, "line", lineNo+1)
			return nil, zerr.With(reqErr, "entry", line)
		}

		spec, err := domain.ParseVersionSpec(line[len(match[0]):])
		if err != nil {
			specErr := zerr.With(err, "file", path)
			return nil, zerr.With(specErr, "line", lineNo+1)
		}

		reqs = append(reqs, domain.Requirement{Name: match[1], Spec: spec})
	}

	return reqs, nil
}

// Write serializes the lock file canonically (sorted pins, one per line,
// trailing newline) and writes it atomically.
func (s *Store) Write(file domain.LockFile) error {
	sorted := file
	sorted.Pins = append([]domain.Pin(nil), file.Pins...)
	sorted.Sort()

	var b strings.Builder
	for _, pin := range sorted.Pins {
		if pin.Origin != "" {
			fmt.Fprintf(&b, "%s==%s # via %s\n", pin.Name, pin.Version, pin.Origin)
			continue
		}
		fmt.Fprintf(&b, "%s==%s\n", pin.Name, pin.Version)
	}

	if err := atomicWriteFile(file.Path, []byte(b.String())); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "file", file.Path)
	}
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp
// file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "lock-*.txt")
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
