// Package workflow executes workflow definitions: it evaluates triggers
// and runs job graphs with bounded parallelism.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

// JobStatus represents the status of a job within a run.
type JobStatus string

const (
	// StatusPending indicates the job is waiting to be executed.
	StatusPending JobStatus = "Pending"
	// StatusRunning indicates the job is currently executing.
	StatusRunning JobStatus = "Running"
	// StatusCompleted indicates the job has finished successfully.
	StatusCompleted JobStatus = "Completed"
	// StatusFailed indicates the job execution failed.
	StatusFailed JobStatus = "Failed"
	// StatusSkipped indicates the job was not run because a dependency failed.
	StatusSkipped JobStatus = "Skipped"
)

// DefaultParallelism bounds concurrent jobs when the caller does not.
const DefaultParallelism = 4

// Runner executes a workflow's job graph.
type Runner struct {
	executor ports.Executor
	tracer   ports.Tracer
	actions  *Registry

	// root is the working directory for run steps.
	root string

	mu        sync.RWMutex
	jobStatus map[string]JobStatus
}

// NewRunner creates a new workflow Runner.
func NewRunner(executor ports.Executor, tracer ports.Tracer, actions *Registry, root string) *Runner {
	return &Runner{
		executor:  executor,
		tracer:    tracer,
		actions:   actions,
		root:      root,
		jobStatus: make(map[string]JobStatus),
	}
}

// Status returns the recorded status of a job from the last run.
func (r *Runner) Status(job string) JobStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.jobStatus[job]
}

func (r *Runner) updateStatus(job string, status JobStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobStatus[job] = status
}

// Run executes every job of the workflow in dependency order with the
// given parallelism. A failed job stops its dependents but independent
// jobs keep running. All failures are reported together.
func (r *Runner) Run(ctx context.Context, workflow domain.Workflow, parallelism int) error {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	graph, err := workflow.Graph()
	if err != nil {
		return zerr.With(err, "workflow", workflow.Name)
	}

	planned := slices.Collect(graph.Walk())
	deps := make(map[string][]string, len(planned))
	for _, job := range planned {
		deps[job] = graph.Needs(job)
	}
	r.tracer.EmitPlan(ctx, planned, deps, []string{workflow.Name})

	state := r.newRunState(ctx, workflow, graph, parallelism)

	for _, job := range planned {
		r.updateStatus(job, StatusPending)
	}

	if err := state.runExecutionLoop(); err != nil {
		return zerr.Wrap(err, domain.ErrWorkflowRunFailed.Error())
	}
	return nil
}

type result struct {
	job string
	err error
}

type runState struct {
	ctx         context.Context
	workflow    domain.Workflow
	graph       *domain.JobGraph
	inDegree    map[string]int
	dependents  map[string][]string
	ready       []string
	active      int
	resultsCh   chan result
	errs        error
	parallelism int
	r           *Runner
}

func (r *Runner) newRunState(ctx context.Context, workflow domain.Workflow, graph *domain.JobGraph, parallelism int) *runState {
	inDegree := make(map[string]int, len(workflow.Jobs))
	dependents := make(map[string][]string, len(workflow.Jobs))

	for name, job := range workflow.Jobs {
		inDegree[name] = len(job.Needs)
		for _, dep := range job.Needs {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for job := range graph.Walk() {
		if inDegree[job] == 0 {
			ready = append(ready, job)
		}
	}

	return &runState{
		ctx:         ctx,
		workflow:    workflow,
		graph:       graph,
		inDegree:    inDegree,
		dependents:  dependents,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		parallelism: parallelism,
		r:           r,
	}
}

func (state *runState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		// Once the context is canceled only in-flight jobs remain, so block
		// on their results instead of spinning on the closed Done channel.
		if state.ctx.Err() != nil {
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	state.markSkipped()

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		jobName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.r.updateStatus(jobName, StatusRunning)

		go state.executeJob(jobName)
	}
}

func (state *runState) executeJob(jobName string) {
	// The span must end before the result is sent, otherwise the loop can
	// finish while the renderer has not seen the completion yet.
	res := func() result {
		ctx, span := state.r.tracer.Start(state.ctx, jobName)
		defer span.End()

		job := state.workflow.Jobs[jobName]
		for i, step := range job.Steps {
			if err := state.r.runStep(ctx, job, step, i, span); err != nil {
				span.RecordError(err)
				return result{job: jobName, err: err}
			}
		}
		return result{job: jobName}
	}()

	state.resultsCh <- res
}

// runStep executes one step, dispatching to a registered action or the
// shell executor.
func (r *Runner) runStep(ctx context.Context, job domain.Job, step domain.Step, position int, span ports.Span) error {
	name := step.Name
	if name == "" {
		name = fmt.Sprintf("step %d", position+1)
	}

	var err error
	if step.Uses != "" {
		var action Action
		if action, err = r.actions.Lookup(step.Uses); err == nil {
			err = action(ctx, step.With, span)
		}
	} else {
		script := strings.Join(step.Run, "\n")
		env := mergeEnv(os.Environ(), job.Env, step.Env)
		err = r.executor.Execute(ctx, script, r.root, env, span)
	}

	if err != nil {
		stepErr := zerr.Wrap(err, domain.ErrStepExecutionFailed.Error())
		return zerr.With(stepErr, "step", name)
	}
	return nil
}

// mergeEnv layers the overlay maps over the base environment. Later
// overlays win; keys are emitted in sorted order for determinism.
func mergeEnv(base []string, overlays ...map[string]string) []string {
	merged := make(map[string]string, len(base))
	for _, kv := range base {
		if key, value, found := strings.Cut(kv, "="); found {
			merged[key] = value
		}
	}
	for _, overlay := range overlays {
		maps.Copy(merged, overlay)
	}

	keys := slices.Sorted(maps.Keys(merged))
	env := make([]string, 0, len(keys))
	for _, key := range keys {
		env = append(env, key+"="+merged[key])
	}
	return env
}

func (state *runState) handleResult(res result) {
	state.active--

	if res.err != nil {
		jobErr := zerr.With(res.err, "job", res.job)
		state.errs = errors.Join(state.errs, jobErr)
		state.r.updateStatus(res.job, StatusFailed)
		return
	}

	state.r.updateStatus(res.job, StatusCompleted)

	for _, dep := range state.dependents[res.job] {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

// markSkipped records jobs that never became ready because a dependency
// failed.
func (state *runState) markSkipped() {
	for job := range state.graph.Walk() {
		if state.r.Status(job) == StatusPending {
			state.r.updateStatus(job, StatusSkipped)
		}
	}
}
