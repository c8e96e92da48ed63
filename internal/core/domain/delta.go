package domain

import (
	"fmt"
	"strings"
)

// PinChange records a single pin difference produced by an upgrade run.
type PinChange struct {
	Name   string
	From   string // empty when the pin was added
	To     string // empty when the pin was removed
	Origin string
}

// FileDelta is the set of pin changes for one lock file.
type FileDelta struct {
	Path    string
	Added   []PinChange
	Removed []PinChange
	Changed []PinChange
}

// Empty reports whether the file has no changes.
func (d *FileDelta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// LockDelta is the full set of lock file changes from an upgrade run.
type LockDelta struct {
	Files []FileDelta
}

// Empty reports whether no lock file changed.
func (d *LockDelta) Empty() bool {
	for i := range d.Files {
		if !d.Files[i].Empty() {
			return false
		}
	}
	return true
}

// Summary renders the delta as plain text, one file section per changed
// lock file. It is used for dry-run output and as the pull request body.
func (d *LockDelta) Summary() string {
	var b strings.Builder

	for i := range d.Files {
		file := &d.Files[i]
		if file.Empty() {
			continue
		}

		fmt.Fprintf(&b, "%s:\n", file.Path)
		for _, c := range file.Changed {
			fmt.Fprintf(&b, "  %s %s -> %s\n", c.Name, c.From, c.To)
		}
		for _, c := range file.Added {
			if c.Origin != "" {
				fmt.Fprintf(&b, "  + %s %s (via %s)\n", c.Name, c.To, c.Origin)
				continue
			}
			fmt.Fprintf(&b, "  + %s %s\n", c.Name, c.To)
		}
		for _, c := range file.Removed {
			fmt.Fprintf(&b, "  - %s %s\n", c.Name, c.From)
		}
	}

	if b.Len() == 0 {
		return "No changes.\n"
	}
	return b.String()
}
