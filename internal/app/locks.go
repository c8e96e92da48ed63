package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// VerifyOptions configuration for the VerifyLocks method.
type VerifyOptions struct {
	// Offline skips the upstream registry checks.
	Offline bool
}

// VerifyLocks checks the lock set: structural invariants, satisfaction of
// the source manifests, and (unless offline) a single-pass resolution
// check against the registry. All findings are reported together.
func (a *App) VerifyLocks(ctx context.Context, opts VerifyOptions) error {
	set, err := a.locks.Load(a.settings.Locks.Dir)
	if err != nil {
		return err
	}

	var findings []error
	if err := set.Verify(); err != nil {
		findings = append(findings, err)
	}

	findings = append(findings, verifyManifests(&set)...)

	if !opts.Offline && !a.settings.Locks.Offline {
		upstream, err := a.verifyUpstream(ctx, &set)
		if err != nil {
			return err
		}
		findings = append(findings, upstream...)
	}

	if len(findings) > 0 {
		return zerr.Wrap(errors.Join(findings...), domain.ErrVerificationFailed.Error())
	}

	a.logger.Info(fmt.Sprintf("verified %d lock file(s)", len(set.Files)))
	return nil
}

// verifyManifests checks that every source requirement has a pin in its
// lock file and that the pin satisfies the requirement.
func verifyManifests(set *domain.LockSet) []error {
	var findings []error

	for i := range set.Files {
		file := &set.Files[i]
		for _, req := range file.Requirements {
			pin, ok := file.Lookup(req.Name)
			if !ok {
				missing := zerr.With(domain.ErrMissingPin, "package", req.Name)
				findings = append(findings, zerr.With(missing, "file", file.Path))
				continue
			}
			if !req.Spec.Match(pin.Version) {
				violated := zerr.With(domain.ErrConstraintViolated, "package", req.Name)
				violated = zerr.With(violated, "requirement", req.Spec.String())
				violated = zerr.With(violated, "pinned", pin.Version.String())
				findings = append(findings, zerr.With(violated, "file", file.Path))
			}
		}
	}

	return findings
}

// verifyUpstream checks every pinned release against the registry in a
// single pass: the release must exist, and each of its requirements must
// be satisfied by a pin already in the set. Failures are findings; a
// registry outage is an error.
func (a *App) verifyUpstream(ctx context.Context, set *domain.LockSet) ([]error, error) {
	type pinnedPackage struct {
		pin  domain.Pin
		file string
	}

	unique := make(map[string]pinnedPackage)
	for i := range set.Files {
		for _, pin := range set.Files[i].Pins {
			name := domain.NormalizeName(pin.Name)
			if _, seen := unique[name]; !seen {
				unique[name] = pinnedPackage{pin: pin, file: set.Files[i].Path}
			}
		}
	}

	var (
		mu       sync.Mutex
		findings []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for name, pinned := range unique {
		g.Go(func() error {
			release, err := a.resolver.Release(ctx, name, pinned.pin.Version.String())
			if err != nil {
				if errors.Is(err, domain.ErrPackageNotFound) {
					unknown := zerr.With(domain.ErrUnknownRelease, "package", name)
					unknown = zerr.With(unknown, "version", pinned.pin.Version.String())

					mu.Lock()
					findings = append(findings, zerr.With(unknown, "file", pinned.file))
					mu.Unlock()
					return nil
				}
				return err
			}

			for _, finding := range checkRelease(set, release) {
				mu.Lock()
				findings = append(findings, finding)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return findings, nil
}

// checkRelease verifies one release's requirements against the lock set
// without backtracking: every requirement must be pinned, and the pinned
// version must match.
func checkRelease(set *domain.LockSet, release *domain.Release) []error {
	var findings []error

	for _, req := range release.Requires {
		pin, ok := set.Lookup(req.Name)
		if !ok {
			missing := zerr.With(domain.ErrMissingPin, "package", domain.NormalizeName(req.Name))
			findings = append(findings, zerr.With(missing, "required_by", release.Name+"=="+release.Version.String()))
			continue
		}
		if !req.Spec.Match(pin.Version) {
			conflict := zerr.With(domain.ErrResolutionConflict, "package", domain.NormalizeName(req.Name))
			conflict = zerr.With(conflict, "required_by", release.Name+"=="+release.Version.String())
			conflict = zerr.With(conflict, "requirement", req.Spec.String())
			findings = append(findings, zerr.With(conflict, "pinned", pin.Version.String()))
		}
	}

	return findings
}

// UpgradeOptions configuration for the UpgradeLocks method.
type UpgradeOptions struct {
	// DryRun computes the delta without writing lock files.
	DryRun bool

	// Publish commits the changes and opens a pull request.
	Publish bool
}

// UpgradeLocks moves every pin to the latest published version that still
// satisfies its source requirement, keeping origins intact.
func (a *App) UpgradeLocks(ctx context.Context, opts UpgradeOptions) (*domain.LockDelta, error) {
	set, err := a.locks.Load(a.settings.Locks.Dir)
	if err != nil {
		return nil, err
	}

	delta := &domain.LockDelta{}
	for i := range set.Files {
		file := &set.Files[i]

		fileDelta, err := a.upgradeFile(ctx, file)
		if err != nil {
			return nil, err
		}

		if !fileDelta.Empty() && !opts.DryRun {
			if err := a.locks.Write(*file); err != nil {
				return nil, err
			}
		}
		delta.Files = append(delta.Files, fileDelta)
	}

	if opts.Publish && !opts.DryRun && !delta.Empty() {
		if _, err := a.PublishChanges(ctx, delta.Summary()); err != nil {
			return nil, err
		}
	}

	return delta, nil
}

// upgradeFile bumps the pins of one lock file in place and returns the
// resulting delta.
func (a *App) upgradeFile(ctx context.Context, file *domain.LockFile) (domain.FileDelta, error) {
	fileDelta := domain.FileDelta{Path: file.Path}

	for j := range file.Pins {
		pin := &file.Pins[j]

		project, err := a.resolver.Project(ctx, pin.Name)
		if err != nil {
			lookupErr := zerr.With(err, "package", pin.Name)
			return domain.FileDelta{}, zerr.With(lookupErr, "file", file.Path)
		}

		latest, ok := project.LatestMatching(requirementSpec(file, pin.Name))
		if !ok || latest.Compare(pin.Version) <= 0 {
			continue
		}

		fileDelta.Changed = append(fileDelta.Changed, domain.PinChange{
			Name:   pin.Name,
			From:   pin.Version.String(),
			To:     latest.String(),
			Origin: pin.Origin,
		})
		pin.Version = latest
	}

	if err := a.pinNewRequirements(ctx, file, &fileDelta); err != nil {
		return domain.FileDelta{}, err
	}

	return fileDelta, nil
}

// pinNewRequirements adds pins for requirements the bumped releases pull in
// that the lock file does not cover yet, recording the parent as origin.
// Single pass, no backtracking: each new requirement gets its latest
// matching version.
func (a *App) pinNewRequirements(ctx context.Context, file *domain.LockFile, fileDelta *domain.FileDelta) error {
	for _, change := range fileDelta.Changed {
		release, err := a.resolver.Release(ctx, change.Name, change.To)
		if err != nil {
			lookupErr := zerr.With(err, "package", change.Name)
			return zerr.With(lookupErr, "file", file.Path)
		}

		for _, req := range release.Requires {
			if _, ok := file.Lookup(req.Name); ok {
				continue
			}

			project, err := a.resolver.Project(ctx, req.Name)
			if err != nil {
				lookupErr := zerr.With(err, "package", req.Name)
				return zerr.With(lookupErr, "file", file.Path)
			}
			latest, ok := project.LatestMatching(req.Spec)
			if !ok {
				continue
			}

			name := domain.NormalizeName(req.Name)
			file.Pins = append(file.Pins, domain.Pin{
				Name:    name,
				Version: latest,
				Origin:  change.Name,
			})
			fileDelta.Added = append(fileDelta.Added, domain.PinChange{
				Name:   name,
				To:     latest.String(),
				Origin: change.Name,
			})
		}
	}

	file.Sort()
	return nil
}

// requirementSpec returns the source requirement constraining a pin, or
// the empty spec when the package is a transitive dependency.
func requirementSpec(file *domain.LockFile, name string) domain.VersionSpec {
	want := domain.NormalizeName(name)
	for _, req := range file.Requirements {
		if domain.NormalizeName(req.Name) == want {
			return req.Spec
		}
	}
	return domain.VersionSpec{}
}

// OutdatedLocks prints a table of pins that have a newer matching release.
func (a *App) OutdatedLocks(ctx context.Context, out io.Writer) error {
	set, err := a.locks.Load(a.settings.Locks.Dir)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Package", "Pinned", "Latest", "File"})

	outdated := 0
	for i := range set.Files {
		file := &set.Files[i]
		for _, pin := range file.Pins {
			project, err := a.resolver.Project(ctx, pin.Name)
			if err != nil {
				lookupErr := zerr.With(err, "package", pin.Name)
				return zerr.With(lookupErr, "file", file.Path)
			}

			latest, ok := project.LatestMatching(requirementSpec(file, pin.Name))
			if !ok || latest.Compare(pin.Version) <= 0 {
				continue
			}

			t.AppendRow(table.Row{pin.Name, pin.Version.String(), latest.String(), file.Path})
			outdated++
		}
	}

	if outdated == 0 {
		fmt.Fprintln(out, "All pins are up to date.")
		return nil
	}

	t.Render()
	return nil
}

// PublishChanges commits the worktree's changes on the configured branch,
// pushes it, and ensures a pull request exists. It returns the pull
// request URL, or "" when there was nothing to publish.
func (a *App) PublishChanges(ctx context.Context, body string) (string, error) {
	base, err := a.vcs.HeadBranch(ctx)
	if err != nil {
		return "", err
	}

	changed, err := a.vcs.ChangedPaths(ctx)
	if err != nil {
		return "", err
	}
	if len(changed) == 0 {
		a.logger.Info("nothing to publish")
		return "", nil
	}

	publish := a.settings.Publish
	if err := a.vcs.CheckoutNew(ctx, publish.Branch); err != nil {
		return "", err
	}
	if err := a.vcs.Add(ctx, changed); err != nil {
		return "", err
	}
	if err := a.vcs.Commit(ctx, publish.CommitMessage, publish.Identity()); err != nil {
		return "", err
	}
	if err := a.vcs.Push(ctx, publish.Branch); err != nil {
		return "", err
	}

	forge, err := a.forge(ctx)
	if err != nil {
		return "", err
	}

	url, created, err := forge.EnsurePullRequest(ctx, domain.PullRequest{
		Head:  publish.Branch,
		Base:  base,
		Title: publish.Title,
		Body:  body,
	})
	if err != nil {
		return "", err
	}

	if created {
		a.logger.Info(fmt.Sprintf("opened pull request %s", url))
	} else {
		a.logger.Info(fmt.Sprintf("updated pull request %s", url))
	}
	return url, nil
}
