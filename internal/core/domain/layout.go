package domain

import "path/filepath"

const (
	// ReinhardDirName is the name of the internal workspace directory.
	ReinhardDirName = ".reinhard"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ResolverDirName is the name of the package index cache directory.
	ResolverDirName = "pypi"

	// WorkflowsDirName is the name of the workflow definitions directory.
	WorkflowsDirName = "workflows"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "reinhard.yaml"

	// ManifestFileName is the name of the index artifact manifest.
	ManifestFileName = "manifest.json"

	// DefaultLocksDir is the directory holding lock files and source
	// manifests.
	DefaultLocksDir = "dev-requirements"

	// DefaultIndexDir is the default output directory for reference index
	// artifacts.
	DefaultIndexDir = "./indexes"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

const (
	// EnvDebug toggles debug logging.
	EnvDebug = "DOCKER_DEBUG"

	// EnvIndexDir overrides the reference index output directory.
	EnvIndexDir = "REINHARD_INDEX_DIR"

	// EnvPersonalToken is the bot's personal access token variable,
	// consulted before the workflow-scoped token.
	EnvPersonalToken = "REINHARD_PAT"

	// EnvGithubToken is the workflow-scoped token variable.
	EnvGithubToken = "GITHUB_TOKEN"
)

// DefaultReinhardPath returns the default root directory for reinhard
// metadata.
func DefaultReinhardPath() string {
	return ReinhardDirName
}

// DefaultIndexCachePath returns the default path for the package index
// cache. It joins .reinhard, cache, and pypi.
func DefaultIndexCachePath() string {
	return filepath.Join(ReinhardDirName, CacheDirName, ResolverDirName)
}

// DefaultWorkflowsPath returns the default path for workflow definitions.
// It joins .reinhard and workflows.
func DefaultWorkflowsPath() string {
	return filepath.Join(ReinhardDirName, WorkflowsDirName)
}
