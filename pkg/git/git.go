// Package git wraps the git binary behind a narrow interface so the sync
// logic never builds command strings itself.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Client is the version-control surface dotsync needs. Conflict
// resolution and authentication are entirely delegated to the binary.
type Client interface {
	Clone(ctx context.Context, url, dir string) error
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Pull(ctx context.Context, remote, branch string) error
	Push(ctx context.Context, remote, branch string) error
}

// runner executes git with the given args, returning captured stdout and
// stderr. An empty dir runs in the process working directory.
type runner func(ctx context.Context, dir string, args ...string) (string, string, error)

// CLI invokes the git executable as a subprocess. Every call is attempted
// exactly once; there are no retries and no timeouts, so a hung remote
// blocks the caller.
type CLI struct {
	dir    string
	run    runner
	logger zerolog.Logger
}

// New creates a git client operating on the given repository directory
func New(dir string) *CLI {
	return &CLI{
		dir:    dir,
		run:    execGit,
		logger: logging.GetLogger("git"),
	}
}

// NewWithRunner creates a client with a custom process runner, for tests
func NewWithRunner(dir string, run runner) *CLI {
	return &CLI{
		dir:    dir,
		run:    run,
		logger: logging.GetLogger("git"),
	}
}

// Clone clones url into dir. It runs outside the repository directory
// since the target does not exist yet.
func (c *CLI) Clone(ctx context.Context, url, dir string) error {
	_, stderr, err := c.run(ctx, "", "clone", url, dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrProcessFailed,
			"git clone %s failed: %s", url, strings.TrimSpace(stderr))
	}
	c.logger.Info().Str("url", url).Str("dir", dir).Msg("Repository cloned")
	return nil
}

// StageAll stages every change in the repository
func (c *CLI) StageAll(ctx context.Context) error {
	_, stderr, err := c.run(ctx, c.dir, "add", "-A")
	if err != nil {
		return errors.Wrapf(err, errors.ErrProcessFailed,
			"git add failed: %s", strings.TrimSpace(stderr))
	}
	return nil
}

// Commit records staged changes. A clean working tree is an expected
// condition and reported as ErrNothingToCommit so callers can suppress it.
func (c *CLI) Commit(ctx context.Context, message string) error {
	stdout, stderr, err := c.run(ctx, c.dir, "commit", "-m", message)
	if err != nil {
		if isNothingToCommit(stdout + stderr) {
			return errors.New(errors.ErrNothingToCommit, "nothing to commit")
		}
		return errors.Wrapf(err, errors.ErrProcessFailed,
			"git commit failed: %s", strings.TrimSpace(stderr))
	}
	c.logger.Info().Str("message", message).Msg("Changes committed")
	return nil
}

// Pull rebase-pulls from the remote branch
func (c *CLI) Pull(ctx context.Context, remote, branch string) error {
	_, stderr, err := c.run(ctx, c.dir, "pull", remote, branch, "--rebase")
	if err != nil {
		return errors.Wrapf(err, errors.ErrPullFailed,
			"git pull from %s/%s failed: %s", remote, branch, strings.TrimSpace(stderr))
	}
	return nil
}

// Push pushes to the remote branch
func (c *CLI) Push(ctx context.Context, remote, branch string) error {
	_, stderr, err := c.run(ctx, c.dir, "push", remote, branch)
	if err != nil {
		return errors.Wrapf(err, errors.ErrProcessFailed,
			"git push to %s/%s failed: %s", remote, branch, strings.TrimSpace(stderr))
	}
	c.logger.Info().Str("remote", remote).Str("branch", branch).Msg("Changes pushed")
	return nil
}

// isNothingToCommit matches git's clean working tree message. git exits
// non-zero for this case, so it has to be told apart from real failures.
func isNothingToCommit(output string) bool {
	return strings.Contains(output, "nothing to commit") ||
		strings.Contains(output, "nothing added to commit")
}

// IsRepository reports whether dir is itself a git repository root
func IsRepository(fs types.FS, dir string) bool {
	if _, err := fs.Stat(dir); err != nil {
		return false
	}
	_, err := fs.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// execGit is the production runner
func execGit(ctx context.Context, dir string, args ...string) (string, string, error) {
	logging.LogCommand(logging.GetLogger("git"), "git", args)

	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
