package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// JobGraph is the dependency graph of a workflow's jobs, built from their
// "needs" declarations.
type JobGraph struct {
	needs          map[string][]string
	executionOrder []string
}

// NewJobGraph creates a new empty JobGraph.
func NewJobGraph() *JobGraph {
	return &JobGraph{
		needs: make(map[string][]string),
	}
}

// AddJob adds a job and its dependencies to the graph.
// It returns an error if a job with the same name already exists.
func (g *JobGraph) AddJob(name string, needs []string) error {
	if _, exists := g.needs[name]; exists {
		return zerr.With(ErrJobAlreadyExists, "job", name)
	}
	g.needs[name] = slices.Clone(needs)
	return nil
}

// Needs returns the declared dependencies of a job.
func (g *JobGraph) Needs(name string) []string {
	return g.needs[name]
}

// Jobs returns all job names in sorted order.
func (g *JobGraph) Jobs() []string {
	names := make([]string, 0, len(g.needs))
	for name := range g.needs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks for missing references and cycles using a topological
// sort. It populates the execution order if successful.
func (g *JobGraph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.needs))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		needs, exists := g.needs[name]
		if !exists {
			return zerr.With(ErrMissingJobDependency, "job", name)
		}

		for _, dep := range needs {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, name)
		return nil
	}

	// Sorted iteration keeps the execution order deterministic across runs.
	for _, name := range g.Jobs() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *JobGraph) buildCycleError(path []string, dep string) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i] + " -> "
	}
	cyclePath += dep
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields job names in execution order.
// It assumes Validate() has been called and returned nil.
func (g *JobGraph) Walk() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range g.executionOrder {
			if !yield(name) {
				return
			}
		}
	}
}
