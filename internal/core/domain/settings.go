package domain

// LockSettings configures lock file handling.
type LockSettings struct {
	// Dir is the directory holding lock files and source manifests.
	Dir string

	// IndexURL is the package index base URL.
	IndexURL string

	// Offline disables registry lookups during verification.
	Offline bool
}

// PublishSettings configures how lock upgrades are published.
type PublishSettings struct {
	Branch        string
	Title         string
	CommitMessage string
	AuthorName    string
	AuthorEmail   string

	// TokenEnv is the ordered list of environment variables consulted for
	// the publication token.
	TokenEnv []string
}

// Identity is a commit author/committer identity.
func (p PublishSettings) Identity() Identity {
	return Identity{Name: p.AuthorName, Email: p.AuthorEmail}
}

// ProfileEntry names one library to index within a profile.
type ProfileEntry struct {
	// Name is the artifact name; the output file is <name>_index.json.
	Name string

	// Package is the pinned package whose version stamps the artifact.
	Package string

	// Index lists source roots whose declarations are indexed.
	Index []string

	// Scan lists source roots whose references are recorded.
	Scan []string

	// TrackThirdParty records references to packages outside the indexed
	// roots under their dotted import path.
	TrackThirdParty bool

	// TrackBuiltins records calls to predeclared identifiers under
	// "builtins.<name>".
	TrackBuiltins bool
}

// IndexSettings configures reference index generation.
type IndexSettings struct {
	// Dir is the artifact output directory.
	Dir string
}

// ImageSettings configures base image pin maintenance.
type ImageSettings struct {
	// Files lists the container recipes to check.
	Files []string
}

// WorkflowSettings configures workflow definition loading.
type WorkflowSettings struct {
	// Dir is the directory holding workflow YAML files.
	Dir string
}

// Settings is the loaded project configuration with all defaults applied.
type Settings struct {
	// Root is the directory containing the config file, or the working
	// directory when no config file was found.
	Root string

	Locks     LockSettings
	Publish   PublishSettings
	Profiles  map[string][]ProfileEntry
	Indexes   IndexSettings
	Images    ImageSettings
	Workflows WorkflowSettings
}

// DefaultProfileName is the profile the CLI generates when none is named.
const DefaultProfileName = "default"

// DefaultSettings returns the configuration used when no config file is
// present. Environment overrides are applied by the loader, not here.
func DefaultSettings() Settings {
	return Settings{
		Root: ".",
		Locks: LockSettings{
			Dir:      DefaultLocksDir,
			IndexURL: "https://pypi.org",
		},
		Publish: PublishSettings{
			Branch:        "task/upgrade-locks",
			Title:         "Upgrade locked dependencies",
			CommitMessage: "Upgrade locked dependencies",
			AuthorName:    "reinhard-bot",
			AuthorEmail:   "reinhard-bot@users.noreply.github.com",
			TokenEnv:      []string{EnvPersonalToken, EnvGithubToken},
		},
		Profiles: map[string][]ProfileEntry{},
		Indexes: IndexSettings{
			Dir: DefaultIndexDir,
		},
		Images: ImageSettings{
			Files: []string{"Dockerfile"},
		},
		Workflows: WorkflowSettings{
			Dir: DefaultWorkflowsPath(),
		},
	}
}

// Profile returns the named profile's entries.
func (s *Settings) Profile(name string) ([]ProfileEntry, bool) {
	entries, ok := s.Profiles[name]
	return entries, ok
}
