// Package git implements the Vcs port as a thin runner over the git CLI.
package git

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Vcs = (*Runner)(nil)

// Runner implements ports.Vcs by shelling out to git.
type Runner struct {
	dir string
}

// NewRunner creates a Runner operating in the given directory.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// run executes git with the given arguments and returns trimmed stdout.
func (r *Runner) run(ctx context.Context, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // arguments are constructed internally
	cmd.Dir = r.dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))

			gitErr := zerr.Wrap(exitErr, domain.ErrGitCommandFailed.Error())
			gitErr = zerr.With(gitErr, "args", strings.Join(args, " "))
			return "", zerr.With(gitErr, "stderr", stderr)
		}

		gitErr := zerr.Wrap(err, domain.ErrGitCommandFailed.Error())
		return "", zerr.With(gitErr, "args", strings.Join(args, " "))
	}

	return strings.TrimSpace(string(output)), nil
}

// ChangedPaths returns the worktree's modified paths from porcelain status.
func (r *Runner) ChangedPaths(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, nil, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParsePorcelain(output), nil
}

// ParsePorcelain extracts the paths from "git status --porcelain" output.
func ParsePorcelain(output string) []string {
	var paths []string
	for line := range strings.SplitSeq(output, "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		// Renames report "old -> new"; the new path is the live one.
		if _, after, found := strings.Cut(path, " -> "); found {
			path = after
		}
		paths = append(paths, path)
	}
	return paths
}

// HeadBranch returns the currently checked out branch name.
func (r *Runner) HeadBranch(ctx context.Context) (string, error) {
	return r.run(ctx, nil, "rev-parse", "--abbrev-ref", "HEAD")
}

// RemoteURL returns the fetch URL of the origin remote.
func (r *Runner) RemoteURL(ctx context.Context) (string, error) {
	return r.run(ctx, nil, "remote", "get-url", "origin")
}

// CheckoutNew creates (or resets) and checks out a branch.
func (r *Runner) CheckoutNew(ctx context.Context, branch string) error {
	_, err := r.run(ctx, nil, "checkout", "-B", branch)
	return err
}

// Add stages the given paths.
func (r *Runner) Add(ctx context.Context, paths []string) error {
	args := append([]string{"add", "--"}, paths...)
	_, err := r.run(ctx, nil, args...)
	return err
}

// Commit records a commit with the identity as both author and committer.
func (r *Runner) Commit(ctx context.Context, message string, identity domain.Identity) error {
	env := append([]string(nil),
		"GIT_AUTHOR_NAME="+identity.Name,
		"GIT_AUTHOR_EMAIL="+identity.Email,
		"GIT_COMMITTER_NAME="+identity.Name,
		"GIT_COMMITTER_EMAIL="+identity.Email,
	)
	_, err := r.run(ctx, env, "commit", "-m", message)
	return err
}

// Push force-with-lease pushes the branch to origin.
func (r *Runner) Push(ctx context.Context, branch string) error {
	_, err := r.run(ctx, nil, "push", "--force-with-lease", "origin", "HEAD:"+branch)
	return err
}
