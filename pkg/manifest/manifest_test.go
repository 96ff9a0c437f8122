package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/manifest"
)

func newStore(t *testing.T) (*manifest.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".dotsync.json")
	return manifest.NewStore(filesystem.NewOS(), path), path
}

func TestGetMissingFileYieldsEmptyList(t *testing.T) {
	store, _ := newStore(t)

	managed, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, managed)
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Append("/home/u/.bashrc"))
	require.NoError(t, store.Append("/home/u/.vimrc"))
	require.NoError(t, store.Append("/home/u/.config/nvim"))

	managed, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/u/.bashrc", "/home/u/.vimrc", "/home/u/.config/nvim"}, managed)
}

func TestAppendDoesNotDeduplicate(t *testing.T) {
	// Dedup is the caller's job, via the mirror existence check
	store, _ := newStore(t)

	require.NoError(t, store.Append("/home/u/.bashrc"))
	require.NoError(t, store.Append("/home/u/.bashrc"))

	managed, err := store.Get()
	require.NoError(t, err)
	assert.Len(t, managed, 2)
}

func TestGetLegacyBareArray(t *testing.T) {
	store, path := newStore(t)
	legacy := `["/home/u/.bashrc", "/home/u/.vimrc"]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	managed, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/u/.bashrc", "/home/u/.vimrc"}, managed)
}

func TestAppendRewritesLegacyInCurrentShape(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`["/home/u/.bashrc"]`), 0644))

	require.NoError(t, store.Append("/home/u/.vimrc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version"`)
	assert.Contains(t, string(data), `"managed"`)

	managed, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/u/.bashrc", "/home/u/.vimrc"}, managed)
}

func TestGetCorruptManifest(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	_, err := store.Get()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestCorrupt))
}

func TestGetRejectsNewerSchema(t *testing.T) {
	store, path := newStore(t)
	future := `{"version": 42, "managed": []}`
	require.NoError(t, os.WriteFile(path, []byte(future), 0644))

	_, err := store.Get()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestCorrupt))
}
