package oci

// QualifyRepository exposes qualifyRepository for testing.
var QualifyRepository = qualifyRepository
