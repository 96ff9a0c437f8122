// Package paths provides centralized path handling for dotsync.
// It implements XDG Base Directory compliance for the machine config and
// the mirror-path mapping between managed originals and their copies
// inside the dotfiles directory.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotsync/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotsync
	EnvConfigDir = "DOTSYNC_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. These define dotsync's on-disk footprint and are not
// user-configurable; changing them would orphan existing installations.
const (
	// AppDirName is the directory name for dotsync-specific files
	AppDirName = "dotsync"

	// ConfigFileName is the machine config file inside the config dir
	ConfigFileName = "config.json"

	// ManifestFileName is the managed-path manifest inside the dotfiles dir.
	// It lives in the repository itself so it synchronizes with it.
	ManifestFileName = ".dotsync.json"

	// OptionsFileName is the optional repo options file at the dotfiles root
	OptionsFileName = ".dotsync.toml"
)

// ConfigDir returns the directory holding the machine config file,
// respecting the DOTSYNC_CONFIG_DIR override.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the full path of the machine config file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ManifestPath returns the manifest location for a given dotfiles directory
func ManifestPath(dotfilesDir string) string {
	return filepath.Join(dotfilesDir, ManifestFileName)
}

// OptionsPath returns the repo options file location for a given dotfiles directory
func OptionsPath(dotfilesDir string) string {
	return filepath.Join(dotfilesDir, OptionsFileName)
}

// MirrorPath maps a managed original path to its location inside the
// dotfiles directory: the filesystem root is stripped and the remainder
// joined onto dotfilesDir. The mapping is derivable from the original path
// alone, so no mapping table is ever kept.
func MirrorPath(dotfilesDir, original string) string {
	trimmed := strings.TrimPrefix(original, string(filepath.Separator))
	return filepath.Join(dotfilesDir, trimmed)
}

// OriginalPath is the inverse of MirrorPath: re-prepending the filesystem
// root to the mirror's path relative to dotfilesDir reproduces the
// original path exactly.
func OriginalPath(dotfilesDir, mirror string) (string, error) {
	rel, err := filepath.Rel(dotfilesDir, mirror)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput,
			"mirror path %s is not under %s", mirror, dotfilesDir)
	}
	if strings.HasPrefix(rel, "..") {
		return "", errors.Newf(errors.ErrInvalidInput,
			"mirror path %s is not under %s", mirror, dotfilesDir)
	}
	return string(filepath.Separator) + rel, nil
}

// BackupPath returns the sibling path the original is renamed to when a
// path is adopted.
func BackupPath(original, suffix string) string {
	return original + suffix
}

// Normalize expands ~, makes the path absolute, and cleans it
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := ExpandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the current user's home)
		return path
	}

	return path
}
