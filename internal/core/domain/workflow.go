package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// EventKind identifies what triggered a workflow run.
type EventKind string

const (
	// EventPullRequest is a pull request touching a set of paths.
	EventPullRequest EventKind = "pull_request"

	// EventSchedule is a cron schedule firing.
	EventSchedule EventKind = "schedule"

	// EventDispatch is a manual run.
	EventDispatch EventKind = "workflow_dispatch"
)

// Event is a concrete occurrence evaluated against workflow triggers.
type Event struct {
	Kind EventKind

	// Paths are the changed paths for pull request events.
	Paths []string

	// At is the instant for schedule events.
	At time.Time
}

// PullRequestTrigger fires when any changed path matches any glob.
type PullRequestTrigger struct {
	Paths []string
}

// Schedule fires on a cron expression.
type Schedule struct {
	Cron CronSpec
}

// Triggers declares what events a workflow reacts to.
type Triggers struct {
	PullRequest *PullRequestTrigger
	Schedules   []Schedule
	Dispatch    bool
}

// Step is a single unit of work inside a job. Exactly one of Uses or Run
// must be set: Uses dispatches to a registered internal action, Run
// executes a shell script.
type Step struct {
	Name string
	Uses string
	With map[string]string
	Run  []string
	Env  map[string]string
}

// Validate checks the uses/run exclusivity rule.
func (s Step) Validate() error {
	hasUses := s.Uses != ""
	hasRun := len(s.Run) > 0
	if hasUses == hasRun {
		return ErrInvalidStep
	}
	return nil
}

// Job is a named sequence of steps with dependency and environment
// declarations.
type Job struct {
	Needs []string
	Env   map[string]string
	Steps []Step
}

// Workflow is a CI automation definition: triggers plus a set of jobs.
type Workflow struct {
	Name string
	On   Triggers
	Jobs map[string]Job
}

// Graph builds the job dependency graph from the jobs' needs declarations.
func (w *Workflow) Graph() (*JobGraph, error) {
	g := NewJobGraph()
	for name, job := range w.Jobs {
		if err := g.AddJob(name, job.Needs); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks every job's steps and the job graph.
func (w *Workflow) Validate() error {
	for name, job := range w.Jobs {
		for _, step := range job.Steps {
			if err := step.Validate(); err != nil {
				return wrapStepError(err, w.Name, name, step.Name)
			}
		}
	}
	_, err := w.Graph()
	return err
}

// wrapStepError attaches workflow/job/step context to a validation error.
func wrapStepError(err error, workflow, job, step string) error {
	err = zerr.With(err, "workflow", workflow)
	err = zerr.With(err, "job", job)
	if step != "" {
		err = zerr.With(err, "step", step)
	}
	return err
}
