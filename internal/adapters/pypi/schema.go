package pypi

import "time"

// projectResponse is the package index's project JSON payload
// ({base}/pypi/{name}/json). Only the fields we consume are mapped.
type projectResponse struct {
	Info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"info"`
	Releases map[string][]struct {
		Yanked bool `json:"yanked"`
	} `json:"releases"`
}

// releaseResponse is the per-version JSON payload
// ({base}/pypi/{name}/{version}/json).
type releaseResponse struct {
	Info struct {
		Name         string   `json:"name"`
		Version      string   `json:"version"`
		RequiresDist []string `json:"requires_dist"`
	} `json:"info"`
}

// cacheEntry is the on-disk cache record for a single index lookup.
type cacheEntry struct {
	Name      string    `json:"name"`
	Version   string    `json:"version,omitempty"`
	Latest    string    `json:"latest,omitempty"`
	Versions  []string  `json:"versions,omitempty"`
	Requires  []string  `json:"requires,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
