package github

import (
	"os"
	"strings"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResolveToken returns the first non-empty token found in the given
// environment variables, in order.
func ResolveToken(envVars []string) (string, error) {
	for _, name := range envVars {
		if token := strings.TrimSpace(os.Getenv(name)); token != "" {
			return token, nil
		}
	}
	return "", zerr.With(domain.ErrTokenMissing, "tried", strings.Join(envVars, ", "))
}
