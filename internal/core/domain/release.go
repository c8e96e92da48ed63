package domain

// Project is the registry's view of a package: the versions it has
// published and the latest release.
type Project struct {
	Name     string
	Latest   Version
	Versions []Version
}

// LatestMatching returns the highest published version satisfying the spec.
// Pre-releases are skipped unless the spec explicitly names one.
func (p *Project) LatestMatching(spec VersionSpec) (Version, bool) {
	allowPrerelease := spec.NamesPrerelease()

	var best Version
	var found bool
	for _, v := range p.Versions {
		if v.IsPrerelease() && !allowPrerelease {
			continue
		}
		if !spec.Match(v) {
			continue
		}
		if !found || v.Compare(best) > 0 {
			best = v
			found = true
		}
	}
	return best, found
}

// Release is a single published version of a package together with its own
// dependency requirements.
type Release struct {
	Name     string
	Version  Version
	Requires []Requirement
}
