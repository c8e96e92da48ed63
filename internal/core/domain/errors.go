package domain

import "go.trai.ch/zerr"

var (
	// ErrLockReadFailed is returned when a lock file cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lock file")

	// ErrLockWriteFailed is returned when a lock file cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lock file")

	// ErrInexactPin is returned when a lock file line is not an exact == pin.
	ErrInexactPin = zerr.New("lock file entry is not an exact pin")

	// ErrDuplicatePin is returned when a package is pinned twice in the same lock file.
	ErrDuplicatePin = zerr.New("duplicate pin in lock file")

	// ErrUnsortedLock is returned when a lock file's pins are not sorted by normalized name.
	ErrUnsortedLock = zerr.New("lock file entries are not sorted")

	// ErrPinConflict is returned when the same package is pinned to different versions across lock files.
	ErrPinConflict = zerr.New("conflicting pins across lock files")

	// ErrMissingPin is returned when a source requirement has no matching pin.
	ErrMissingPin = zerr.New("requirement has no pin")

	// ErrConstraintViolated is returned when a pinned version does not satisfy its requirement.
	ErrConstraintViolated = zerr.New("pinned version violates requirement")

	// ErrUnknownRelease is returned when a pinned release does not exist upstream.
	ErrUnknownRelease = zerr.New("pinned release not found upstream")

	// ErrResolutionConflict is returned when pins cannot satisfy a release's requirements without backtracking.
	ErrResolutionConflict = zerr.New("lock set cannot be resolved without backtracking")

	// ErrInvalidRequirement is returned when a source requirement line cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrInvalidVersionSpec is returned when a version specifier cannot be parsed.
	ErrInvalidVersionSpec = zerr.New("invalid version specifier")

	// ErrPackageNotFound is returned when the package index has no such package or release.
	ErrPackageNotFound = zerr.New("package not found in index")

	// ErrIndexRequestFailed is returned when a package index API request fails.
	ErrIndexRequestFailed = zerr.New("failed to query package index")

	// ErrIndexParseFailed is returned when a package index API response cannot be parsed.
	ErrIndexParseFailed = zerr.New("failed to parse package index response")

	// ErrIndexCacheCreateFailed is returned when the index cache directory cannot be created.
	ErrIndexCacheCreateFailed = zerr.New("failed to create index cache directory")

	// ErrIndexCacheReadFailed is returned when reading from the index cache fails.
	ErrIndexCacheReadFailed = zerr.New("failed to read from index cache")

	// ErrIndexCacheWriteFailed is returned when writing to the index cache fails.
	ErrIndexCacheWriteFailed = zerr.New("failed to write to index cache")

	// ErrTokenMissing is returned when no publication token is present in the environment.
	ErrTokenMissing = zerr.New("no publication token found")

	// ErrGitCommandFailed is returned when a git invocation fails.
	ErrGitCommandFailed = zerr.New("git command failed")

	// ErrRemoteNotRecognized is returned when the origin remote URL cannot be mapped to a repository.
	ErrRemoteNotRecognized = zerr.New("remote URL is not a recognized repository")

	// ErrForgeRequestFailed is returned when a forge API request fails.
	ErrForgeRequestFailed = zerr.New("forge API request failed")

	// ErrRecipeReadFailed is returned when a container recipe cannot be read.
	ErrRecipeReadFailed = zerr.New("failed to read container recipe")

	// ErrRecipeWriteFailed is returned when a container recipe cannot be written.
	ErrRecipeWriteFailed = zerr.New("failed to write container recipe")

	// ErrImageRefNotPinned is returned when a FROM line has no digest pin.
	ErrImageRefNotPinned = zerr.New("base image reference is not pinned by digest")

	// ErrInvalidImageRef is returned when a FROM line cannot be parsed.
	ErrInvalidImageRef = zerr.New("invalid image reference")

	// ErrImageResolveFailed is returned when a tag cannot be resolved to a digest.
	ErrImageResolveFailed = zerr.New("failed to resolve image digest")

	// ErrProfileNotFound is returned when a named index profile is not configured.
	ErrProfileNotFound = zerr.New("index profile not found")

	// ErrSourceParseFailed is returned when a source file cannot be parsed for indexing.
	ErrSourceParseFailed = zerr.New("failed to parse source file")

	// ErrIndexWriteFailed is returned when a reference index artifact cannot be written.
	ErrIndexWriteFailed = zerr.New("failed to write index artifact")

	// ErrIndexNotFound is returned when a named index artifact is missing.
	ErrIndexNotFound = zerr.New("index artifact not found")

	// ErrManifestReadFailed is returned when the index manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read index manifest")

	// ErrManifestMismatch is returned when an artifact's hash does not match the manifest.
	ErrManifestMismatch = zerr.New("index artifact does not match manifest")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidCronSpec is returned when a schedule expression cannot be parsed.
	ErrInvalidCronSpec = zerr.New("invalid cron expression")

	// ErrWorkflowNotFound is returned when a requested workflow is not defined.
	ErrWorkflowNotFound = zerr.New("workflow not found")

	// ErrWorkflowParseFailed is returned when a workflow definition cannot be parsed.
	ErrWorkflowParseFailed = zerr.New("failed to parse workflow definition")

	// ErrInvalidStep is returned when a step does not declare exactly one of uses or run.
	ErrInvalidStep = zerr.New("step must declare exactly one of 'uses' or 'run'")

	// ErrUnknownAction is returned when a step references an unregistered action.
	ErrUnknownAction = zerr.New("unknown action")

	// ErrJobAlreadyExists is returned when a workflow defines the same job twice.
	ErrJobAlreadyExists = zerr.New("job already exists")

	// ErrMissingJobDependency is returned when a job needs a job that doesn't exist.
	ErrMissingJobDependency = zerr.New("missing job dependency")

	// ErrCycleDetected is returned when a cycle is detected in the job dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrStepExecutionFailed is returned when a workflow step fails.
	ErrStepExecutionFailed = zerr.New("step execution failed")

	// ErrWorkflowRunFailed is returned when a workflow run has at least one failed job.
	ErrWorkflowRunFailed = zerr.New("workflow run failed")

	// ErrVerificationFailed is returned when lock verification finds at least one problem.
	ErrVerificationFailed = zerr.New("lock verification failed")
)
