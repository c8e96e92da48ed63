package refindex_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/adapters/refindex"
	"go.trai.ch/reinhard/internal/core/domain"
)

func testIndex() *domain.ReferenceIndex {
	index := domain.NewReferenceIndex("2.17.0")
	index.AddObject("tanjun.Client")
	index.AddUse("tanjun.Client", "reinhard.components.Setup")
	return index
}

func TestStore_WriteAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := refindex.NewStore()

	entry, err := store.Write(dir, "tanjun", "2.17.0", testIndex())
	require.NoError(t, err)
	assert.Equal(t, "tanjun_index.json", entry.File)
	assert.Equal(t, "2.17.0", entry.Version)
	assert.NotEmpty(t, entry.Hash)

	manifest := domain.IndexManifest{
		GeneratedAt: time.Now().UTC(),
		Entries:     map[string]domain.ManifestEntry{"tanjun": entry},
	}
	require.NoError(t, store.WriteManifest(dir, manifest))

	loaded, err := store.Load(dir, "tanjun", false)
	require.NoError(t, err)
	assert.Equal(t, "2.17.0", loaded.Version)
	assert.Equal(t, []string{"reinhard.components.Setup"}, loaded.Uses("tanjun.Client"))

	readBack, err := store.Manifest(dir)
	require.NoError(t, err)
	assert.Equal(t, entry, readBack.Entries["tanjun"])
}

func TestStore_Load_MissingIndex(t *testing.T) {
	_, err := refindex.NewStore().Load(t.TempDir(), "nope", true)
	require.ErrorIs(t, err, domain.ErrIndexNotFound)
}

func TestStore_Load_SkipVerify(t *testing.T) {
	dir := t.TempDir()
	store := refindex.NewStore()

	_, err := store.Write(dir, "tanjun", "2.17.0", testIndex())
	require.NoError(t, err)

	// No manifest written; verification would fail but skipVerify bypasses it.
	loaded, err := store.Load(dir, "tanjun", true)
	require.NoError(t, err)
	assert.Equal(t, "2.17.0", loaded.Version)

	_, err = store.Load(dir, "tanjun", false)
	require.ErrorIs(t, err, domain.ErrManifestReadFailed)
}

func TestStore_Verify(t *testing.T) {
	dir := t.TempDir()
	store := refindex.NewStore()

	entry, err := store.Write(dir, "tanjun", "2.17.0", testIndex())
	require.NoError(t, err)
	manifest := domain.IndexManifest{
		GeneratedAt: time.Now().UTC(),
		Entries:     map[string]domain.ManifestEntry{"tanjun": entry},
	}
	require.NoError(t, store.WriteManifest(dir, manifest))

	t.Run("Clean", func(t *testing.T) {
		require.NoError(t, store.Verify(dir))
	})

	t.Run("Tampered Artifact", func(t *testing.T) {
		path := filepath.Join(dir, entry.File)
		require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
		require.ErrorIs(t, store.Verify(dir), domain.ErrManifestMismatch)
	})

	t.Run("Missing Artifact", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(dir, entry.File)))
		require.ErrorIs(t, store.Verify(dir), domain.ErrIndexNotFound)
	})
}
