package app

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.trai.ch/reinhard/internal/adapters/watcher"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// GenerateOptions configuration for the GenerateIndexes method.
type GenerateOptions struct {
	// Profile selects the configured profile; empty means "default".
	Profile string

	// OutDir overrides the configured artifact directory.
	OutDir string
}

// GenerateIndexes builds every reference index of a profile concurrently
// and writes the artifact manifest once all of them succeeded.
func (a *App) GenerateIndexes(ctx context.Context, opts GenerateOptions) error {
	profile := opts.Profile
	if profile == "" {
		profile = domain.DefaultProfileName
	}

	entries, ok := a.settings.Profile(profile)
	if !ok {
		return zerr.With(domain.ErrProfileNotFound, "profile", profile)
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = a.settings.Indexes.Dir
	}

	// Versions come from the lock set when present; generation still works
	// in a tree without lock files.
	lockSet, err := a.locks.Load(a.settings.Locks.Dir)
	if err != nil {
		a.logger.Debug(fmt.Sprintf("no lock set for version stamping: %v", err))
		lockSet = domain.LockSet{}
	}

	return a.withPipeline(ctx, func(ctx context.Context, tracer ports.Tracer) error {
		jobs := make([]string, 0, len(entries))
		for _, entry := range entries {
			jobs = append(jobs, entry.Name)
		}
		tracer.EmitPlan(ctx, jobs, map[string][]string{}, []string{profile})

		var (
			mu       sync.Mutex
			manifest = domain.IndexManifest{Entries: make(map[string]domain.ManifestEntry, len(entries))}
		)

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())

		for _, entry := range entries {
			g.Go(func() error {
				ctx, span := tracer.Start(ctx, entry.Name)
				defer span.End()

				version := pinnedVersion(&lockSet, entry.Package)

				index, err := a.generator.Generate(ctx, entry, version)
				if err != nil {
					span.RecordError(err)
					return zerr.With(err, "entry", entry.Name)
				}

				manifestEntry, err := a.indexes.Write(outDir, entry.Name, version, index)
				if err != nil {
					span.RecordError(err)
					return err
				}

				fmt.Fprintf(span, "wrote %s (%d objects, version %s)\n",
					manifestEntry.File, len(index.ObjectPathsToUses), version)

				mu.Lock()
				manifest.Entries[entry.Name] = manifestEntry
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		// The manifest goes last so a failed run never leaves a manifest
		// pointing at stale artifacts.
		manifest.GeneratedAt = time.Now().UTC()
		return a.indexes.WriteManifest(outDir, manifest)
	})
}

// pinnedVersion resolves the version stamped into an artifact from the
// lock set.
func pinnedVersion(set *domain.LockSet, pkg string) string {
	if pkg == "" {
		return "unknown"
	}
	pin, ok := set.Lookup(pkg)
	if !ok {
		return "unknown"
	}
	return pin.Version.String()
}

// SearchIndex looks a query up in a named index artifact and prints the
// matching object paths with their reference counts.
func (a *App) SearchIndex(_ context.Context, name, query string, out io.Writer) error {
	index, err := a.indexes.Load(a.settings.Indexes.Dir, name, false)
	if err != nil {
		return err
	}

	hits := index.SearchObjects(query)
	if len(hits) == 0 {
		fmt.Fprintf(out, "no matches for %q\n", query)
		return nil
	}

	for _, hit := range hits {
		fmt.Fprintf(out, "%s (%d uses)\n", hit, len(index.Uses(hit)))
	}
	return nil
}

// VerifyIndexes checks every artifact in the index directory against the
// manifest.
func (a *App) VerifyIndexes(_ context.Context) error {
	if err := a.indexes.Verify(a.settings.Indexes.Dir); err != nil {
		return err
	}
	a.logger.Info("index artifacts match the manifest")
	return nil
}

// WatchIndexes regenerates a profile's indexes whenever its source roots
// change. It blocks until the context is canceled.
func (a *App) WatchIndexes(ctx context.Context, opts GenerateOptions) error {
	profile := opts.Profile
	if profile == "" {
		profile = domain.DefaultProfileName
	}
	entries, ok := a.settings.Profile(profile)
	if !ok {
		return zerr.With(domain.ErrProfileNotFound, "profile", profile)
	}

	if err := a.GenerateIndexes(ctx, opts); err != nil {
		a.logger.Error(err)
	}

	regenerate := func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d path(s) changed, regenerating indexes", len(paths)))
		if err := a.GenerateIndexes(ctx, opts); err != nil {
			a.logger.Error(err)
		}
	}
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, regenerate)

	if err := a.watcher.Start(ctx, watchRoots(entries)); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	for event := range a.watcher.Events() {
		debouncer.Add(event.Path)
	}

	return ctx.Err()
}

// watchRoots collects the deduplicated source roots of a profile.
func watchRoots(entries []domain.ProfileEntry) []string {
	var roots []string
	for _, entry := range entries {
		roots = append(roots, entry.Index...)
		roots = append(roots, entry.Scan...)
	}
	slices.Sort(roots)
	return slices.Compact(roots)
}
