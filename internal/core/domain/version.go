package domain

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a tolerant package version value.
//
// Strict semver versions compare with full semver semantics. Anything else
// falls back to dotted-numeric ordering with a lexicographic suffix, which is
// good enough for the registry version strings that appear in lock files
// (e.g. "2.0.0.dev1", "4.3b1", "2023.7.22").
type Version struct {
	raw    string
	sv     *semver.Version
	nums   []uint64
	suffix string
}

// ParseVersion parses a version string. It never fails; unparseable input
// degrades to pure suffix ordering.
func ParseVersion(raw string) Version {
	v := Version{raw: strings.TrimSpace(raw)}

	if sv, err := semver.StrictNewVersion(v.raw); err == nil {
		v.sv = sv
	}

	v.nums, v.suffix = splitNumericPrefix(v.raw)
	return v
}

// splitNumericPrefix splits a version string into its leading dot-separated
// numeric components and the remaining suffix.
func splitNumericPrefix(raw string) ([]uint64, string) {
	var nums []uint64
	rest := raw

	for {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			break
		}

		n, err := strconv.ParseUint(rest[:i], 10, 64)
		if err != nil {
			break
		}
		nums = append(nums, n)
		rest = rest[i:]

		if !strings.HasPrefix(rest, ".") {
			break
		}
		rest = rest[1:]
	}

	return nums, strings.TrimLeft(rest, ".-_")
}

// String returns the original version string.
func (v Version) String() string {
	return v.raw
}

// IsZero reports whether the version is empty.
func (v Version) IsZero() bool {
	return v.raw == ""
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater than o.
func (v Version) Compare(o Version) int {
	if v.sv != nil && o.sv != nil {
		return v.sv.Compare(o.sv)
	}

	// Numeric components first, missing components count as zero.
	n := len(v.nums)
	if len(o.nums) > n {
		n = len(o.nums)
	}
	for i := range n {
		var a, b uint64
		if i < len(v.nums) {
			a = v.nums[i]
		}
		if i < len(o.nums) {
			b = o.nums[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}

	// Suffixes rank by class: pre-release markers below the plain release,
	// post-release markers above. Ties fall back to lexicographic order.
	ca, cb := suffixClass(v.suffix), suffixClass(o.suffix)
	switch {
	case ca != cb:
		if ca < cb {
			return -1
		}
		return 1
	case v.suffix == o.suffix:
		return 0
	default:
		return strings.Compare(v.suffix, o.suffix)
	}
}

// postMarkers are suffix prefixes that mark a post-release build.
var postMarkers = []string{"post", "rev", "r"}

// suffixClass orders a suffix relative to the plain release of the same
// number: 0 for pre-release builds, 1 for the release itself, 2 for
// post-releases.
func suffixClass(suffix string) int {
	if suffix == "" {
		return 1
	}

	s := strings.ToLower(suffix)
	if strings.HasPrefix(s, "rc") {
		return 0
	}
	for _, marker := range postMarkers {
		if strings.HasPrefix(s, marker) {
			return 2
		}
	}
	return 0
}

// prereleaseMarkers are suffix prefixes that mark a pre-release build.
var prereleaseMarkers = []string{"a", "b", "c", "rc", "dev", "pre", "alpha", "beta"}

// IsPrerelease reports whether the version denotes a pre-release build.
func (v Version) IsPrerelease() bool {
	if v.sv != nil {
		return v.sv.Prerelease() != ""
	}
	if v.suffix == "" {
		return false
	}

	suffix := strings.ToLower(v.suffix)
	for _, marker := range prereleaseMarkers {
		if !strings.HasPrefix(suffix, marker) {
			continue
		}
		tail := suffix[len(marker):]
		if tail == "" || (tail[0] >= '0' && tail[0] <= '9') || tail[0] == '.' {
			return true
		}
	}
	return false
}
