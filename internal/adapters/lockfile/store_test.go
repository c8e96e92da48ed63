package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/adapters/lockfile"
	"go.trai.ch/reinhard/internal/core/domain"
)

// writeLocksDir lays out a locks directory from a name -> content map.
func writeLocksDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestStore_Load(t *testing.T) {
	dir := writeLocksDir(t, map[string]string{
		"nox.txt": "argcomplete==3.2.3 # via nox\ncolorlog==6.8.2 # via nox\nnox==2024.3.2\n",
		"nox.in":  "nox>=2024.3.2\n",
		"type-checking.txt": "mypy==1.9.0\n",
		"notes.md":          "not a lock file\n",
	})

	set, err := lockfile.NewStore().Load(dir)
	require.NoError(t, err)
	require.Len(t, set.Files, 2)

	nox := set.Files[0]
	assert.Equal(t, filepath.Join(dir, "nox.txt"), nox.Path)
	require.Len(t, nox.Pins, 3)
	assert.Equal(t, "argcomplete", nox.Pins[0].Name)
	assert.Equal(t, "3.2.3", nox.Pins[0].Version.String())
	assert.Equal(t, "nox", nox.Pins[0].Origin)
	assert.Equal(t, "", nox.Pins[2].Origin)

	require.Len(t, nox.Requirements, 1)
	assert.Equal(t, "nox", nox.Requirements[0].Name)
	assert.True(t, nox.Requirements[0].Spec.Match(domain.ParseVersion("2024.4.0")))
	assert.False(t, nox.Requirements[0].Spec.Match(domain.ParseVersion("2023.1.1")))

	assert.Nil(t, set.Files[1].Requirements)
}

func TestStore_Load_EmptyDir(t *testing.T) {
	set, err := lockfile.NewStore().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, set.Files)
}

func TestStore_Load_Strict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "Range Instead Of Pin",
			content: "hikari>=2.0.0\n",
			wantErr: domain.ErrInexactPin,
		},
		{
			name:    "Missing Version",
			content: "hikari==\n",
			wantErr: domain.ErrInexactPin,
		},
		{
			name:    "Bare Name",
			content: "hikari\n",
			wantErr: domain.ErrInexactPin,
		},
		{
			name:    "Duplicate Package",
			content: "hikari==2.0.0\nHikari==2.1.0\n",
			wantErr: domain.ErrDuplicatePin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeLocksDir(t, map[string]string{"dev.txt": tt.content})

			_, err := lockfile.NewStore().Load(dir)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStore_Load_CommentsAndBlanks(t *testing.T) {
	dir := writeLocksDir(t, map[string]string{
		"dev.txt": "# generated\n\nhikari==2.0.0\n  # trailing comment line\n",
	})

	set, err := lockfile.NewStore().Load(dir)
	require.NoError(t, err)
	require.Len(t, set.Files, 1)
	require.Len(t, set.Files[0].Pins, 1)
}

func TestStore_Load_ManifestExtrasAndOptions(t *testing.T) {
	dir := writeLocksDir(t, map[string]string{
		"dev.txt": "ruff==0.3.4\n",
		"dev.in":  "-c constraints.txt\nruff\nsphinx[docs]>=7,<8 # docs build\n",
	})

	set, err := lockfile.NewStore().Load(dir)
	require.NoError(t, err)
	reqs := set.Files[0].Requirements
	require.Len(t, reqs, 2)
	assert.Equal(t, "ruff", reqs[0].Name)
	assert.True(t, reqs[0].Spec.IsEmpty())
	assert.Equal(t, "sphinx", reqs[1].Name)
	assert.True(t, reqs[1].Spec.Match(domain.ParseVersion("7.2.6")))
	assert.False(t, reqs[1].Spec.Match(domain.ParseVersion("8.0.0")))
}

func TestStore_Write_Canonical(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dev.txt")

	file := domain.LockFile{
		Path: path,
		Pins: []domain.Pin{
			{Name: "nox", Version: domain.ParseVersion("2024.3.2")},
			{Name: "argcomplete", Version: domain.ParseVersion("3.2.3"), Origin: "nox"},
		},
	}

	require.NoError(t, lockfile.NewStore().Write(file))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "argcomplete==3.2.3 # via nox\nnox==2024.3.2\n", string(data))

	// Round trip through Load preserves the pins.
	set, err := lockfile.NewStore().Load(dir)
	require.NoError(t, err)
	require.Len(t, set.Files, 1)
	assert.True(t, set.Files[0].Sorted())
}
