// Package status reports the link state of every managed path.
package status

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the status command
type Options struct {
	Config     config.Config
	FileSystem types.FS // Allow injecting a filesystem for testing
}

// Report classifies every managed path as linked, conflict, unlinked or
// missing. It never mutates anything.
func Report(opts Options) (*types.StatusReport, error) {
	logger := logging.GetLogger("commands.status")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	store := manifest.NewStore(fs, paths.ManifestPath(opts.Config.DotfilesDir))
	managed, err := store.Get()
	if err != nil {
		return nil, err
	}

	report := &types.StatusReport{
		RepoURL:     opts.Config.RepoURL,
		DotfilesDir: opts.Config.DotfilesDir,
	}

	for _, original := range managed {
		mirror := paths.MirrorPath(opts.Config.DotfilesDir, original)
		state, err := classify(fs, opts.Config.DotfilesDir, original, mirror)
		if err != nil {
			return nil, err
		}
		report.Managed = append(report.Managed, types.ManagedStatus{
			Path:   original,
			Mirror: mirror,
			State:  state,
		})
	}

	logger.Debug().Int("managed", len(report.Managed)).Msg("Status report built")
	return report, nil
}

func classify(fs types.FS, dotfilesDir, original, mirror string) (types.LinkState, error) {
	info, err := fs.Lstat(original)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", original)
		}
		if _, err := fs.Lstat(mirror); err == nil {
			return types.StateUnlinked, nil
		}
		return types.StateMissing, nil
	}

	if info.Mode()&os.ModeSymlink == 0 {
		// A real file or directory occupies the original path
		return types.StateConflict, nil
	}

	target, err := fs.Readlink(original)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read symlink %s", original)
	}

	// A symlink pointing anywhere inside the dotfiles directory counts as
	// managed; anything else is a foreign link occupying the path
	if target == mirror || strings.HasPrefix(target, dotfilesDir+string(os.PathSeparator)) {
		return types.StateLinked, nil
	}
	return types.StateConflict, nil
}
