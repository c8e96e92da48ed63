package ports

import "go.trai.ch/reinhard/internal/core/domain"

// WorkflowLoader loads workflow definitions from disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=workflows.go -destination=mocks/mock_workflows.go -package=mocks
type WorkflowLoader interface {
	// Load parses every workflow definition under dir, keyed by name.
	// A missing directory yields an empty map.
	Load(dir string) (map[string]domain.Workflow, error)
}
