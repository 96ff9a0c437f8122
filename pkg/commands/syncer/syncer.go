// Package syncer runs the stage/commit/pull/push cycle on the dotfiles
// repository and re-materializes links afterwards.
package syncer

import (
	"context"

	"github.com/arthur-debert/dotsync/pkg/commands/link"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/git"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the sync command
type Options struct {
	DotfilesDir string
	FileSystem  types.FS   // Allow injecting a filesystem for testing
	Git         git.Client // Allow injecting a git client for testing
}

// Sync stages all changes, commits them, rebase-pulls from the remote and,
// if a commit occurred, pushes it. A clean working tree and a failing pull
// are both expected conditions: the former suppresses the push, the latter
// is logged and sync continues without the remote's latest changes. Any
// other git failure aborts the run. Links are re-materialized at the end.
func Sync(ctx context.Context, opts Options) (*types.SyncResult, error) {
	logger := logging.GetLogger("commands.syncer")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	client := opts.Git
	if client == nil {
		client = git.New(opts.DotfilesDir)
	}

	repoOpts, err := config.LoadOptions(opts.DotfilesDir)
	if err != nil {
		return nil, err
	}

	result := &types.SyncResult{}

	if err := client.StageAll(ctx); err != nil {
		return nil, err
	}

	if err := client.Commit(ctx, repoOpts.CommitMessage); err != nil {
		if !errors.IsErrorCode(err, errors.ErrNothingToCommit) {
			return nil, err
		}
		logger.Info().Msg("No changes to commit")
	} else {
		result.Committed = true
	}

	if err := client.Pull(ctx, repoOpts.Remote, repoOpts.Branch); err != nil {
		// Deliberately swallowed: sync continues without the remote's
		// latest changes
		logger.Warn().Err(err).
			Str("remote", repoOpts.Remote).
			Str("branch", repoOpts.Branch).
			Msg("Pull failed, continuing")
		result.PullFailed = true
	}

	if result.Committed {
		if err := client.Push(ctx, repoOpts.Remote, repoOpts.Branch); err != nil {
			return nil, err
		}
		result.Pushed = true
	}

	links, err := link.Materialize(link.Options{
		DotfilesDir: opts.DotfilesDir,
		FileSystem:  fs,
	})
	if err != nil {
		return nil, err
	}
	result.Links = *links

	logger.Info().
		Bool("committed", result.Committed).
		Bool("pushed", result.Pushed).
		Bool("pull_failed", result.PullFailed).
		Int("links_created", len(result.Links.Created)).
		Msg("Sync completed")

	return result, nil
}
