package workflow

import (
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/reinhard/internal/core/domain"
)

// Matches reports whether the event fires any of the workflow's triggers.
func Matches(workflow domain.Workflow, event domain.Event) bool {
	switch event.Kind {
	case domain.EventPullRequest:
		return matchesPullRequest(workflow.On.PullRequest, event.Paths)
	case domain.EventSchedule:
		return matchesSchedule(workflow.On.Schedules, event.At)
	case domain.EventDispatch:
		return workflow.On.Dispatch
	}
	return false
}

// matchesPullRequest checks the changed paths against the trigger globs.
// A trigger without path filters fires on any change.
func matchesPullRequest(trigger *domain.PullRequestTrigger, changed []string) bool {
	if trigger == nil {
		return false
	}
	if len(trigger.Paths) == 0 {
		return len(changed) > 0
	}

	for _, path := range changed {
		for _, pattern := range trigger.Paths {
			if ok, err := doublestar.Match(pattern, path); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// matchesSchedule checks the instant against every schedule at minute
// resolution.
func matchesSchedule(schedules []domain.Schedule, at time.Time) bool {
	for _, schedule := range schedules {
		if schedule.Cron.Matches(at) {
			return true
		}
	}
	return false
}

// NextRun returns the earliest instant strictly after the given time at
// which any of the workflow's schedules fires. ok is false when the
// workflow has no schedule.
func NextRun(workflow domain.Workflow, after time.Time) (next time.Time, ok bool) {
	for _, schedule := range workflow.On.Schedules {
		candidate := schedule.Cron.Next(after)
		if candidate.IsZero() {
			continue
		}
		if !ok || candidate.Before(next) {
			next, ok = candidate, true
		}
	}
	return next, ok
}
