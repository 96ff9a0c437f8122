package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/paths"
)

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := config.LoadOptions(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "origin", opts.Remote)
	assert.Equal(t, "main", opts.Branch)
	assert.Equal(t, "dotsync: update managed files", opts.CommitMessage)
	assert.Equal(t, ".bak", opts.BackupSuffix)
}

func TestLoadOptionsFromRepoFile(t *testing.T) {
	dotfilesDir := t.TempDir()
	optionsFile := filepath.Join(dotfilesDir, paths.OptionsFileName)
	content := "branch = \"master\"\ncommit_message = \"dots: checkpoint\"\n"
	require.NoError(t, os.WriteFile(optionsFile, []byte(content), 0644))

	opts, err := config.LoadOptions(dotfilesDir)
	require.NoError(t, err)

	assert.Equal(t, "master", opts.Branch)
	assert.Equal(t, "dots: checkpoint", opts.CommitMessage)
	// Untouched keys keep their defaults
	assert.Equal(t, "origin", opts.Remote)
	assert.Equal(t, ".bak", opts.BackupSuffix)
}

func TestLoadOptionsEnvOverridesFile(t *testing.T) {
	dotfilesDir := t.TempDir()
	optionsFile := filepath.Join(dotfilesDir, paths.OptionsFileName)
	require.NoError(t, os.WriteFile(optionsFile, []byte("branch = \"master\"\n"), 0644))

	t.Setenv("DOTSYNC_BRANCH", "trunk")
	t.Setenv("DOTSYNC_REMOTE", "upstream")

	opts, err := config.LoadOptions(dotfilesDir)
	require.NoError(t, err)

	assert.Equal(t, "trunk", opts.Branch)
	assert.Equal(t, "upstream", opts.Remote)
}

func TestLoadOptionsBadTOML(t *testing.T) {
	dotfilesDir := t.TempDir()
	optionsFile := filepath.Join(dotfilesDir, paths.OptionsFileName)
	require.NoError(t, os.WriteFile(optionsFile, []byte("branch = [unclosed"), 0644))

	_, err := config.LoadOptions(dotfilesDir)
	assert.Error(t, err)
}
