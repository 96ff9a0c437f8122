// Package testutil provides helpers shared by dotsync's tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Env is an isolated on-disk environment with a fake home directory and a
// dotfiles directory, both under t.TempDir so symlink and rename behavior
// is the real thing.
type Env struct {
	FS          types.FS
	HomeDir     string
	DotfilesDir string
	Manifest    *manifest.Store
}

// NewEnv creates a fresh environment for one test
func NewEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	homeDir := filepath.Join(root, "home", "user")
	dotfilesDir := filepath.Join(root, "dots")
	require.NoError(t, os.MkdirAll(homeDir, 0755))
	require.NoError(t, os.MkdirAll(dotfilesDir, 0755))

	fs := filesystem.NewOS()
	return &Env{
		FS:          fs,
		HomeDir:     homeDir,
		DotfilesDir: dotfilesDir,
		Manifest:    manifest.NewStore(fs, paths.ManifestPath(dotfilesDir)),
	}
}

// WriteHomeFile creates a file under the fake home directory and returns
// its absolute path
func (e *Env) WriteHomeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(e.HomeDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Mirror returns the mirror path of an original path in this environment
func (e *Env) Mirror(original string) string {
	return paths.MirrorPath(e.DotfilesDir, original)
}
