package ports

import "go.trai.ch/reinhard/internal/core/domain"

// LockStore reads and writes dependency lock files.
//
//go:generate go run go.uber.org/mock/mockgen -source=locks.go -destination=mocks/mock_locks.go -package=mocks
type LockStore interface {
	// Load parses every lock file (and sibling source manifest) under dir.
	Load(dir string) (domain.LockSet, error)

	// Write serializes a lock file canonically and writes it atomically.
	Write(file domain.LockFile) error
}
