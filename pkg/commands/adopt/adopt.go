// Package adopt brings an existing file or folder under management:
// the original is backed up, its content moves into the dotfiles
// directory, and a sync is triggered.
package adopt

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotsync/pkg/commands/syncer"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/git"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the adopt command
type Options struct {
	DotfilesDir string
	FileSystem  types.FS   // Allow injecting a filesystem for testing
	Git         git.Client // Allow injecting a git client for testing
	NoSync      bool       // Skip the sync that normally follows adoption
}

// Adopt dispatches on whether the path is a file or a folder. Paths whose
// mirror already exists are skipped with a warning and nothing is touched.
func Adopt(ctx context.Context, sourcePath string, opts Options) (*types.AdoptResult, error) {
	logger := logging.GetLogger("commands.adopt")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	original, err := paths.Normalize(sourcePath)
	if err != nil {
		return nil, err
	}

	info, err := fs.Lstat(original)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "source path does not exist: %s", original)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", original)
	}

	mirror := paths.MirrorPath(opts.DotfilesDir, original)
	result := &types.AdoptResult{
		Path:   original,
		Mirror: mirror,
		IsDir:  info.IsDir(),
	}

	if _, err := fs.Stat(mirror); err == nil {
		logger.Warn().
			Str("path", original).
			Str("mirror", mirror).
			Msg("Mirror path already exists, skipping")
		result.Skipped = true
		result.SkipReason = string(errors.ErrAlreadyManaged)
		return result, nil
	}

	if info.IsDir() && git.IsRepository(fs, original) {
		logger.Warn().
			Str("path", original).
			Msg("Folder is itself a git repository, adopting it is unsupported")
		result.Skipped = true
		result.SkipReason = string(errors.ErrUnsupportedRepo)
		return result, nil
	}

	repoOpts, err := config.LoadOptions(opts.DotfilesDir)
	if err != nil {
		return nil, err
	}
	result.BackupPath = paths.BackupPath(original, repoOpts.BackupSuffix)

	store := manifest.NewStore(fs, paths.ManifestPath(opts.DotfilesDir))
	if err := store.Append(original); err != nil {
		return nil, err
	}

	if err := fs.MkdirAll(filepath.Dir(mirror), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create mirror directories for %s", mirror)
	}

	if info.IsDir() {
		err = adoptFolder(fs, logger, original, mirror, result.BackupPath)
	} else {
		err = adoptFile(fs, logger, original, mirror, result.BackupPath)
	}
	if err != nil {
		return nil, err
	}

	// The original path no longer exists after the rename; the link pass
	// inside sync creates the forward symlink.
	if !opts.NoSync {
		if _, err := syncer.Sync(ctx, syncer.Options{
			DotfilesDir: opts.DotfilesDir,
			FileSystem:  fs,
			Git:         opts.Git,
		}); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// adoptFile backs the original up as a sibling and copies the backup's
// content into the mirror
func adoptFile(fs types.FS, logger zerolog.Logger, original, mirror, backup string) error {
	if err := fs.Rename(original, backup); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to back up %s to %s", original, backup)
	}

	if err := copyFile(fs, backup, mirror); err != nil {
		return err
	}

	logger.Info().
		Str("path", original).
		Str("mirror", mirror).
		Str("backup", backup).
		Msg("Adopted file")
	return nil
}

// adoptFolder copies the whole tree into the mirror, then moves the
// original aside
func adoptFolder(fs types.FS, logger zerolog.Logger, original, mirror, backup string) error {
	if err := copyTree(fs, original, mirror); err != nil {
		return err
	}

	if err := fs.Rename(original, backup); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to back up %s to %s", original, backup)
	}

	logger.Info().
		Str("path", original).
		Str("mirror", mirror).
		Str("backup", backup).
		Msg("Adopted folder")
	return nil
}

func copyFile(fs types.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}

	data, err := fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}

	if err := fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to write %s", dst)
	}
	return nil
}

// copyTree recursively copies src to dst, preserving file modes and
// recreating symlinks as symlinks
func copyTree(fs types.FS, src, dst string) error {
	info, err := fs.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := fs.Readlink(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read symlink %s", src)
		}
		if err := fs.Symlink(target, dst); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to recreate symlink %s", dst)
		}
		return nil
	}

	if !info.IsDir() {
		return copyFile(fs, src, dst)
	}

	if err := fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dst)
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", src)
	}

	for _, entry := range entries {
		if err := copyTree(fs, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
