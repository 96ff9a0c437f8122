package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
)

func newStore(t *testing.T) (*config.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	return config.NewStore(filesystem.NewOS(), path), path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	store, _ := newStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.RepoURL)
	assert.Empty(t, cfg.DotfilesDir)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store, path := newStore(t)

	err := store.Save(config.Config{
		RepoURL:     "https://example/dots",
		DotfilesDir: "/tmp/dots",
	})
	require.NoError(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example/dots", cfg.RepoURL)
	assert.Equal(t, "/tmp/dots", cfg.DotfilesDir)
	assert.Equal(t, config.CurrentVersion, cfg.Version)

	// The on-disk shape carries the stated field names
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"repo_url"`)
	assert.Contains(t, string(data), `"dotfiles_dir"`)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.json")
	store := config.NewStore(filesystem.NewOS(), path)

	err := store.Save(config.Config{RepoURL: "https://example/dots"})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigCorrupt))
}

func TestLoadLegacyUnversionedFile(t *testing.T) {
	store, path := newStore(t)
	legacy := `{"repo_url": "https://example/dots", "dotfiles_dir": "/tmp/dots"}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Version)
	assert.Equal(t, "https://example/dots", cfg.RepoURL)
	assert.Equal(t, "/tmp/dots", cfg.DotfilesDir)
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	store, path := newStore(t)
	future := `{"version": 99, "repo_url": "https://example/dots"}`
	require.NoError(t, os.WriteFile(path, []byte(future), 0644))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigCorrupt))
}
