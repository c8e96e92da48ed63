package refindex_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/adapters/refindex"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// writeTree lays out Go source files from a relative path -> content map and
// returns the tree root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newGenerator(t *testing.T) *refindex.Generator {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return refindex.NewGenerator(mockLogger)
}

func TestGenerator_Generate(t *testing.T) {
	root := writeTree(t, map[string]string{
		"tanjun/client.go": `package tanjun

import "example.com/tanjun/abc"

type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) Run() {}

type Context = abc.Context

func internalOnly() {}
`,
		"tanjun/abc/abc.go": `package abc

type Context struct{}

func (c Context) Respond() {}
`,
		"reinhard/components/basic.go": `package components

import (
	"example.com/tanjun"
	"example.com/tanjun/abc"
)

type Component struct{}

func (c *Component) OnMessage(ctx abc.Context) {
	_ = tanjun.NewClient()
}

func Setup(client *tanjun.Client) {}
`,
	})

	entry := domain.ProfileEntry{
		Name:  "tanjun",
		Index: []string{filepath.Join(root, "tanjun")},
		Scan:  []string{filepath.Join(root, "reinhard")},
	}

	index, err := newGenerator(t).Generate(context.Background(), entry, "2.17.0")
	require.NoError(t, err)

	assert.Equal(t, "2.17.0", index.Version)

	t.Run("Indexes Exported Declarations", func(t *testing.T) {
		for _, path := range []string{
			"tanjun.Client",
			"tanjun.NewClient",
			"tanjun.Client.Run",
			"tanjun.abc.Context",
			"tanjun.abc.Context.Respond",
		} {
			assert.Contains(t, index.ObjectPathsToUses, path)
		}
		assert.NotContains(t, index.ObjectPathsToUses, "tanjun.internalOnly")
	})

	t.Run("Resolves Cross Package Alias", func(t *testing.T) {
		assert.Equal(t, "tanjun.abc.Context", index.Aliases["tanjun.Context"])
	})

	t.Run("Records Uses With Method Sites", func(t *testing.T) {
		assert.Contains(t, index.Uses("tanjun.abc.Context"), "reinhard.components.Component.OnMessage()")
		assert.Contains(t, index.Uses("tanjun.NewClient"), "reinhard.components.Component.OnMessage()")
		assert.Contains(t, index.Uses("tanjun.Client"), "reinhard.components.Setup")
	})

	t.Run("Uses Reachable Through Alias", func(t *testing.T) {
		assert.Equal(t, index.Uses("tanjun.abc.Context"), index.Uses("tanjun.Context"))
	})

	t.Run("Search Finds Objects", func(t *testing.T) {
		assert.Equal(t, []string{"tanjun.NewClient"}, index.SearchObjects("newclient"))
	})
}

func TestGenerator_Generate_ScanDefaultsToIndexRoots(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/lib.go": `package lib

type Thing struct{}
`,
	})

	entry := domain.ProfileEntry{
		Name:  "lib",
		Index: []string{filepath.Join(root, "lib")},
	}

	index, err := newGenerator(t).Generate(context.Background(), entry, "1.0.0")
	require.NoError(t, err)
	assert.Contains(t, index.ObjectPathsToUses, "lib.Thing")
}

func TestGenerator_Generate_TrackFlags(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/lib.go": "package lib\n\ntype Thing struct{}\n",
		"bot/bot.go": `package bot

import (
	"example.com/alluka"
	"example.com/lib"
)

func Setup(t lib.Thing) {
	_ = alluka.NewClient()
	_ = len("abc")
}
`,
	})

	entry := domain.ProfileEntry{
		Name:  "lib",
		Index: []string{filepath.Join(root, "lib")},
		Scan:  []string{filepath.Join(root, "bot")},
	}

	t.Run("Off By Default", func(t *testing.T) {
		index, err := newGenerator(t).Generate(context.Background(), entry, "1.0.0")
		require.NoError(t, err)

		assert.Contains(t, index.Uses("lib.Thing"), "bot.Setup")
		assert.NotContains(t, index.ObjectPathsToUses, "example.com.alluka.NewClient")
		assert.NotContains(t, index.ObjectPathsToUses, "builtins.len")
	})

	t.Run("Third Party", func(t *testing.T) {
		tracked := entry
		tracked.TrackThirdParty = true

		index, err := newGenerator(t).Generate(context.Background(), tracked, "1.0.0")
		require.NoError(t, err)

		assert.Contains(t, index.Uses("example.com.alluka.NewClient"), "bot.Setup")
		assert.NotContains(t, index.ObjectPathsToUses, "builtins.len")
	})

	t.Run("Builtins", func(t *testing.T) {
		tracked := entry
		tracked.TrackBuiltins = true

		index, err := newGenerator(t).Generate(context.Background(), tracked, "1.0.0")
		require.NoError(t, err)

		assert.Contains(t, index.Uses("builtins.len"), "bot.Setup")
		assert.NotContains(t, index.ObjectPathsToUses, "example.com.alluka.NewClient")
	})
}

func TestGenerator_Generate_SkipsTestFilesAndTestdata(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/lib.go":              "package lib\n\ntype Thing struct{}\n",
		"lib/lib_test.go":         "package lib\n\ntype TestOnly struct{}\n",
		"lib/testdata/fixture.go": "package fixture\n\ntype Fixture struct{}\n",
	})

	entry := domain.ProfileEntry{Name: "lib", Index: []string{filepath.Join(root, "lib")}}

	index, err := newGenerator(t).Generate(context.Background(), entry, "1.0.0")
	require.NoError(t, err)
	assert.Contains(t, index.ObjectPathsToUses, "lib.Thing")
	assert.NotContains(t, index.ObjectPathsToUses, "lib.TestOnly")
	assert.NotContains(t, index.ObjectPathsToUses, "lib.testdata.Fixture")
}

func TestGenerator_Generate_ParseError(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/broken.go": "package lib\n\nfunc {\n",
	})

	entry := domain.ProfileEntry{Name: "lib", Index: []string{filepath.Join(root, "lib")}}

	_, err := newGenerator(t).Generate(context.Background(), entry, "1.0.0")
	require.ErrorIs(t, err, domain.ErrSourceParseFailed)
}
