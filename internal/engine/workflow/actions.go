package workflow

import (
	"context"
	"io"
	"slices"
	"sync"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/zerr"
)

// Action executes a builtin step. The with map carries the step's
// parameters; combined output goes to out.
type Action func(ctx context.Context, with map[string]string, out io.Writer) error

// Registry maps action names to their implementations. Builtin steps
// reference actions through the "uses" key.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
	}
}

// Register adds an action under the given name, replacing any previous
// registration.
func (r *Registry) Register(name string, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = action
}

// Lookup returns the action registered under name.
func (r *Registry) Lookup(name string) (Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.actions[name]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownAction, "action", name)
	}
	return action, nil
}

// Names returns the registered action names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
