package workflow

// MergeEnv exposes mergeEnv for testing.
var MergeEnv = mergeEnv
