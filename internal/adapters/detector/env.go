// Package detector provides environment detection for logging and output
// behavior.
package detector

import (
	"os"
	"strings"

	"golang.org/x/term"

	"go.trai.ch/reinhard/internal/core/domain"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsCI reports whether the process runs under a CI system.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// DebugEnabled reports whether debug logging was requested through the
// environment.
func DebugEnabled() bool {
	return boolLike(os.Getenv(domain.EnvDebug))
}

// boolLike parses the truthy forms accepted in build arguments.
func boolLike(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
