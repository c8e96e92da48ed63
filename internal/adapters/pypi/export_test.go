package pypi

// NewResolverWithPath exposes newResolverWithPath for testing.
var NewResolverWithPath = newResolverWithPath

// ParseRequiresDist exposes parseRequiresDist for testing.
var ParseRequiresDist = parseRequiresDist
