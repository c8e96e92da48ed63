package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of file system change observed.
type WatchOp int

const (
	// WatchOpCreate indicates a file or directory was created.
	WatchOpCreate WatchOp = iota
	// WatchOpWrite indicates a file was modified.
	WatchOpWrite
	// WatchOpRemove indicates a file or directory was removed or renamed.
	WatchOpRemove
)

// WatchEvent is a single file system change.
type WatchEvent struct {
	Path string
	Op   WatchOp
}

// Watcher observes file system changes under a set of roots.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given roots recursively.
	Start(ctx context.Context, roots []string) error

	// Stop stops the watcher and releases all resources.
	Stop() error

	// Events returns an iterator of file system events. The iterator
	// ends when the watcher stops.
	Events() iter.Seq[WatchEvent]
}
