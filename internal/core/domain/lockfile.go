// Package domain contains the core domain models for the reinhard ops toolkit:
// dependency pins, version specifiers, reference indexes, and workflows.
package domain

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// nameSeparators collapses runs of name separator characters for
// canonical package name comparison.
var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName returns the canonical registry form of a package name:
// lowercase, with runs of '-', '_' and '.' collapsed to a single '-'.
func NormalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Pin is a single exact dependency pin from a lock file.
type Pin struct {
	// Name is the package name as written in the lock file.
	Name string

	// Version is the exact pinned version.
	Version Version

	// Origin names the requirement that introduced the pin, when known.
	// It round-trips through the " # via <origin>" lock file annotation.
	Origin string
}

// Requirement is a source requirement parsed from a lock file's sibling
// source manifest (e.g. dev-requirements/nox.in).
type Requirement struct {
	Name string
	Spec VersionSpec
}

// LockFile is a parsed dependency lock file.
type LockFile struct {
	// Path is the file's location relative to the project root.
	Path string

	// Pins holds the pins in file order.
	Pins []Pin

	// Requirements holds the source requirements from the sibling manifest,
	// or nil when the lock file has no manifest.
	Requirements []Requirement
}

// Lookup returns the pin for the given package name, matching by
// normalized name.
func (f *LockFile) Lookup(name string) (Pin, bool) {
	want := NormalizeName(name)
	for _, pin := range f.Pins {
		if NormalizeName(pin.Name) == want {
			return pin, true
		}
	}
	return Pin{}, false
}

// Sorted reports whether the pins appear in canonical (normalized name) order.
func (f *LockFile) Sorted() bool {
	return slices.IsSortedFunc(f.Pins, func(a, b Pin) int {
		return strings.Compare(NormalizeName(a.Name), NormalizeName(b.Name))
	})
}

// Sort orders the pins by normalized name in place.
func (f *LockFile) Sort() {
	slices.SortFunc(f.Pins, func(a, b Pin) int {
		return strings.Compare(NormalizeName(a.Name), NormalizeName(b.Name))
	})
}

// LockSet is the collection of all lock files under the locks directory.
type LockSet struct {
	Files []LockFile
}

// Lookup searches every lock file for a pin of the given package.
func (s *LockSet) Lookup(name string) (Pin, bool) {
	for i := range s.Files {
		if pin, ok := s.Files[i].Lookup(name); ok {
			return pin, true
		}
	}
	return Pin{}, false
}

// Packages returns the normalized names of every pinned package, sorted
// and deduplicated.
func (s *LockSet) Packages() []string {
	var names []string
	for i := range s.Files {
		for _, pin := range s.Files[i].Pins {
			names = append(names, NormalizeName(pin.Name))
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Verify checks the structural invariants of the lock set: every file is
// sorted, and a package pinned in several files pins the same version
// everywhere. All findings are reported, not just the first.
func (s *LockSet) Verify() error {
	var errs []error

	for i := range s.Files {
		if !s.Files[i].Sorted() {
			errs = append(errs, zerr.With(ErrUnsortedLock, "file", s.Files[i].Path))
		}
	}

	seen := make(map[string]Pin)
	seenFile := make(map[string]string)
	for i := range s.Files {
		for _, pin := range s.Files[i].Pins {
			name := NormalizeName(pin.Name)
			prev, ok := seen[name]
			if !ok {
				seen[name] = pin
				seenFile[name] = s.Files[i].Path
				continue
			}
			if prev.Version.Compare(pin.Version) != 0 {
				conflict := zerr.With(ErrPinConflict, "package", name)
				conflict = zerr.With(conflict, "version_a", prev.Version.String())
				conflict = zerr.With(conflict, "file_a", seenFile[name])
				conflict = zerr.With(conflict, "version_b", pin.Version.String())
				errs = append(errs, zerr.With(conflict, "file_b", s.Files[i].Path))
			}
		}
	}

	return errors.Join(errs...)
}
