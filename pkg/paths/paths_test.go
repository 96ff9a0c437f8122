package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorPath(t *testing.T) {
	tests := []struct {
		name        string
		dotfilesDir string
		original    string
		expected    string
	}{
		{
			name:        "home file",
			dotfilesDir: "/tmp/dots",
			original:    "/home/u/.bashrc",
			expected:    "/tmp/dots/home/u/.bashrc",
		},
		{
			name:        "nested config file",
			dotfilesDir: "/tmp/dots",
			original:    "/home/u/.config/nvim/init.lua",
			expected:    "/tmp/dots/home/u/.config/nvim/init.lua",
		},
		{
			name:        "path outside home",
			dotfilesDir: "/var/dotfiles",
			original:    "/etc/gitconfig",
			expected:    "/var/dotfiles/etc/gitconfig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MirrorPath(tt.dotfilesDir, tt.original))
		})
	}
}

func TestOriginalPathIsInverseOfMirrorPath(t *testing.T) {
	dotfilesDir := "/tmp/dots"
	originals := []string{
		"/home/u/.bashrc",
		"/home/u/.config/nvim/init.lua",
		"/etc/gitconfig",
	}

	for _, original := range originals {
		mirror := MirrorPath(dotfilesDir, original)
		roundTripped, err := OriginalPath(dotfilesDir, mirror)
		require.NoError(t, err)
		assert.Equal(t, original, roundTripped)
	}
}

func TestOriginalPathRejectsOutsideMirror(t *testing.T) {
	_, err := OriginalPath("/tmp/dots", "/tmp/elsewhere/file")
	assert.Error(t, err)
}

func TestBackupPath(t *testing.T) {
	assert.Equal(t, "/home/u/.bashrc.bak", BackupPath("/home/u/.bashrc", ".bak"))
}

func TestManifestPath(t *testing.T) {
	assert.Equal(t, "/tmp/dots/.dotsync.json", ManifestPath("/tmp/dots"))
}

func TestConfigDirOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv(EnvConfigDir, override)

	assert.Equal(t, override, ConfigDir())
	assert.Equal(t, filepath.Join(override, ConfigFileName), ConfigFilePath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, ".vimrc"), ExpandHome("~/.vimrc"))
	assert.Equal(t, "/absolute/path", ExpandHome("/absolute/path"))
	assert.Equal(t, "~other/file", ExpandHome("~other/file"))
	assert.Equal(t, "", ExpandHome(""))
}

func TestNormalize(t *testing.T) {
	abs, err := Normalize("/tmp/../tmp/dots")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dots", abs)

	_, err = Normalize("")
	assert.Error(t, err)
}
