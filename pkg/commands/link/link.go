// Package link materializes symlinks for every managed path.
package link

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for link materialization
type Options struct {
	DotfilesDir string
	FileSystem  types.FS // Allow injecting a filesystem for testing
}

// Materialize walks the manifest and ensures a symlink exists at each
// original path, pointing at its mirror inside the dotfiles directory.
// A path that already exists on disk is skipped with a warning: the tool
// never overwrites live files, and a symlink created by a previous run
// also counts as existing, which makes the pass idempotent.
func Materialize(opts Options) (*types.LinkResult, error) {
	logger := logging.GetLogger("commands.link")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	store := manifest.NewStore(fs, paths.ManifestPath(opts.DotfilesDir))
	managed, err := store.Get()
	if err != nil {
		return nil, err
	}

	result := &types.LinkResult{}
	for _, original := range managed {
		mirror := paths.MirrorPath(opts.DotfilesDir, original)

		if _, err := fs.Lstat(original); err == nil {
			logger.Warn().
				Str("path", original).
				Msg("Path already exists, skipping")
			result.Skipped = append(result.Skipped, original)
			continue
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", original)
		}

		if err := fs.MkdirAll(filepath.Dir(original), 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create parent directories for %s", original)
		}

		if err := fs.Symlink(mirror, original); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSymlinkCreate,
				"failed to create symlink %s -> %s", original, mirror)
		}

		logger.Info().
			Str("path", original).
			Str("target", mirror).
			Msg("Created symlink")
		result.Created = append(result.Created, original)
	}

	return result, nil
}
