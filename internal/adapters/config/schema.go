package config

// Reinhardfile represents the structure of the reinhard.yaml configuration
// file. Every field is optional; zero values fall back to defaults.
type Reinhardfile struct {
	Locks     LocksDTO                   `yaml:"locks"`
	Publish   PublishDTO                 `yaml:"publish"`
	Profiles  map[string][]ProfileEntry  `yaml:"profiles"`
	Indexes   IndexesDTO                 `yaml:"indexes"`
	Images    ImagesDTO                  `yaml:"images"`
	Workflows WorkflowsDTO               `yaml:"workflows"`
}

// LocksDTO configures lock file handling.
type LocksDTO struct {
	Dir      string `yaml:"dir"`
	IndexURL string `yaml:"index_url"`
	Offline  bool   `yaml:"offline"`
}

// PublishDTO configures lock upgrade publication.
type PublishDTO struct {
	Branch        string   `yaml:"branch"`
	Title         string   `yaml:"title"`
	CommitMessage string   `yaml:"commit_message"`
	Author        string   `yaml:"author"`
	TokenEnv      []string `yaml:"token_env"`
}

// ProfileEntry names one library to index within a profile.
type ProfileEntry struct {
	Name            string   `yaml:"name"`
	Package         string   `yaml:"package"`
	Index           []string `yaml:"index"`
	Scan            []string `yaml:"scan"`
	TrackThirdParty bool     `yaml:"track_3rd_party"`
	TrackBuiltins   bool     `yaml:"track_builtins"`
}

// IndexesDTO configures reference index generation.
type IndexesDTO struct {
	Dir string `yaml:"dir"`
}

// ImagesDTO configures base image pin maintenance.
type ImagesDTO struct {
	Files []string `yaml:"files"`
}

// WorkflowsDTO configures workflow definition loading.
type WorkflowsDTO struct {
	Dir string `yaml:"dir"`
}
