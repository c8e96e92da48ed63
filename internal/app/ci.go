package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/reinhard/internal/engine/workflow"
	"go.trai.ch/zerr"
)

// EventForKind builds a concrete event for the given trigger kind.
// Pull request events carry the worktree's changed paths.
func (a *App) EventForKind(ctx context.Context, kind string) (domain.Event, error) {
	switch domain.EventKind(kind) {
	case domain.EventPullRequest:
		paths, err := a.vcs.ChangedPaths(ctx)
		if err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Kind: domain.EventPullRequest, Paths: paths}, nil
	case domain.EventSchedule:
		return domain.Event{Kind: domain.EventSchedule, At: time.Now().UTC()}, nil
	case domain.EventDispatch:
		return domain.Event{Kind: domain.EventDispatch}, nil
	}
	return domain.Event{}, zerr.With(domain.ErrWorkflowNotFound, "event", kind)
}

// definitions loads the project's workflows merged over the builtins.
func (a *App) definitions() (map[string]domain.Workflow, error) {
	return workflow.Definitions(a.workflows, a.settings)
}

// CICheck prints the workflows the event would trigger.
func (a *App) CICheck(_ context.Context, event domain.Event, out io.Writer) error {
	defs, err := a.definitions()
	if err != nil {
		return err
	}

	triggered := 0
	for _, name := range sortedNames(defs) {
		if workflow.Matches(defs[name], event) {
			fmt.Fprintln(out, name)
			triggered++
		}
	}

	if triggered == 0 {
		fmt.Fprintln(out, "no workflows triggered")
	}
	return nil
}

// CIRunOptions configuration for the CIRun method.
type CIRunOptions struct {
	// Workflow names a single workflow to run, bypassing trigger
	// evaluation. When empty, every workflow matching Event runs.
	Workflow string

	// Event is the occurrence evaluated against the triggers.
	Event domain.Event
}

// CIRun executes the workflows the event triggers (or the named one),
// streaming job progress through the linear renderer.
func (a *App) CIRun(ctx context.Context, opts CIRunOptions) error {
	defs, err := a.definitions()
	if err != nil {
		return err
	}

	var selected []domain.Workflow
	if opts.Workflow != "" {
		def, ok := defs[opts.Workflow]
		if !ok {
			return zerr.With(domain.ErrWorkflowNotFound, "workflow", opts.Workflow)
		}
		selected = []domain.Workflow{def}
	} else {
		for _, name := range sortedNames(defs) {
			if workflow.Matches(defs[name], opts.Event) {
				selected = append(selected, defs[name])
			}
		}
	}

	if len(selected) == 0 {
		a.logger.Info("no workflows triggered")
		return nil
	}

	registry := a.actionRegistry()

	return a.withPipeline(ctx, func(ctx context.Context, tracer ports.Tracer) error {
		runner := workflow.NewRunner(a.executor, tracer, registry, a.settings.Root)

		var errs error
		for _, def := range selected {
			if err := runner.Run(ctx, def, runtime.NumCPU()); err != nil {
				errs = errors.Join(errs, zerr.With(err, "workflow", def.Name))
			}
		}
		return errs
	})
}

// CINext prints the next firing time of every scheduled workflow.
func (a *App) CINext(_ context.Context, out io.Writer) error {
	defs, err := a.definitions()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	scheduled := 0
	for _, name := range sortedNames(defs) {
		next, ok := workflow.NextRun(defs[name], now)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", name, next.Format("2006-01-02 15:04 UTC"))
		scheduled++
	}

	if scheduled == 0 {
		fmt.Fprintln(out, "no scheduled workflows")
	}
	return nil
}

// actionRegistry wires the builtin step actions to their application
// operations.
func (a *App) actionRegistry() *workflow.Registry {
	registry := workflow.NewRegistry()

	registry.Register(workflow.ActionVerifyLocks, func(ctx context.Context, with map[string]string, out io.Writer) error {
		return a.VerifyLocks(ctx, VerifyOptions{Offline: with["offline"] == "true"})
	})

	registry.Register(workflow.ActionUpgradeLocks, func(ctx context.Context, with map[string]string, out io.Writer) error {
		delta, err := a.UpgradeLocks(ctx, UpgradeOptions{
			DryRun:  with["dry-run"] == "true",
			Publish: with["publish"] == "true",
		})
		if err != nil {
			return err
		}
		fmt.Fprint(out, delta.Summary())
		return nil
	})

	registry.Register(workflow.ActionOutdatedLocks, func(ctx context.Context, _ map[string]string, out io.Writer) error {
		return a.OutdatedLocks(ctx, out)
	})

	registry.Register(workflow.ActionVerifyIndexes, func(ctx context.Context, _ map[string]string, _ io.Writer) error {
		return a.VerifyIndexes(ctx)
	})

	registry.Register(workflow.ActionCheckImages, func(ctx context.Context, _ map[string]string, _ io.Writer) error {
		return a.CheckImages(ctx)
	})

	registry.Register(workflow.ActionBumpImages, func(ctx context.Context, with map[string]string, out io.Writer) error {
		delta, err := a.BumpImages(ctx, with["dry-run"] == "true")
		if err != nil {
			return err
		}
		if delta.Empty() {
			fmt.Fprintln(out, "base images are current")
			return nil
		}
		fmt.Fprint(out, delta.Summary())
		return nil
	})

	return registry
}

// sortedNames returns the workflow names in sorted order.
func sortedNames(defs map[string]domain.Workflow) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
