package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// specOps are the comparison operators supported in a version specifier,
// ordered so longer operators are tried first.
var specOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// Comparator is a single clause of a version specifier.
type Comparator struct {
	Op      string
	Version Version
}

// Matches reports whether the given version satisfies the comparator.
func (c Comparator) Matches(v Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	default:
		return false
	}
}

// VersionSpec is a comma-joined set of comparators, e.g. ">=1.2,<2".
// The empty spec matches any version.
type VersionSpec struct {
	raw         string
	comparators []Comparator
}

// ParseVersionSpec parses a version specifier string.
func ParseVersionSpec(raw string) (VersionSpec, error) {
	spec := VersionSpec{raw: strings.TrimSpace(raw)}
	if spec.raw == "" {
		return spec, nil
	}

	for clause := range strings.SplitSeq(spec.raw, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		var op string
		for _, candidate := range specOps {
			if strings.HasPrefix(clause, candidate) {
				op = candidate
				break
			}
		}
		if op == "" {
			return VersionSpec{}, zerr.With(ErrInvalidVersionSpec, "clause", clause)
		}

		version := strings.TrimSpace(strings.TrimPrefix(clause, op))
		if version == "" {
			return VersionSpec{}, zerr.With(ErrInvalidVersionSpec, "clause", clause)
		}

		spec.comparators = append(spec.comparators, Comparator{Op: op, Version: ParseVersion(version)})
	}

	return spec, nil
}

// String returns the original specifier string.
func (s VersionSpec) String() string {
	return s.raw
}

// IsEmpty reports whether the spec has no comparators.
func (s VersionSpec) IsEmpty() bool {
	return len(s.comparators) == 0
}

// Match reports whether the version satisfies every comparator.
func (s VersionSpec) Match(v Version) bool {
	for _, c := range s.comparators {
		if !c.Matches(v) {
			return false
		}
	}
	return true
}

// Exact returns the pinned version if the spec is a single == clause.
func (s VersionSpec) Exact() (Version, bool) {
	if len(s.comparators) == 1 && s.comparators[0].Op == "==" {
		return s.comparators[0].Version, true
	}
	return Version{}, false
}

// NamesPrerelease reports whether any comparator explicitly references a
// pre-release version. Latest-version selection only considers pre-releases
// when the spec asks for one.
func (s VersionSpec) NamesPrerelease() bool {
	for _, c := range s.comparators {
		if c.Version.IsPrerelease() {
			return true
		}
	}
	return false
}
