// Package initialize clones the dotfiles repository and records the
// machine configuration.
package initialize

import (
	"context"
	"os"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/git"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the init command
type Options struct {
	ConfigPath string     // Defaults to the XDG config location
	FileSystem types.FS   // Allow injecting a filesystem for testing
	Git        git.Client // Allow injecting a git client for testing
}

// Init clones repoURL into dotfilesDir if the directory does not exist
// yet, then saves the configuration. Re-running against an existing
// directory is a no-op apart from the config save.
func Init(ctx context.Context, repoURL, dotfilesDir string, opts Options) (*types.InitResult, error) {
	logger := logging.GetLogger("commands.initialize")

	if repoURL == "" {
		return nil, errors.New(errors.ErrInvalidInput, "repository URL is required")
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	dir, err := paths.Normalize(dotfilesDir)
	if err != nil {
		return nil, err
	}

	client := opts.Git
	if client == nil {
		client = git.New(dir)
	}

	result := &types.InitResult{DotfilesDir: dir}

	if _, err := fs.Stat(dir); err == nil {
		logger.Info().Str("dir", dir).Msg("Repository already cloned")
	} else if os.IsNotExist(err) {
		logger.Info().Str("url", repoURL).Str("dir", dir).Msg("Cloning repository")
		if err := client.Clone(ctx, repoURL, dir); err != nil {
			return nil, err
		}
		result.Cloned = true
	} else {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dir)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = paths.ConfigFilePath()
	}

	store := config.NewStore(fs, configPath)
	if err := store.Save(config.Config{RepoURL: repoURL, DotfilesDir: dir}); err != nil {
		return nil, err
	}

	return result, nil
}
