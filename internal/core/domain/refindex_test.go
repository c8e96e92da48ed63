package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/core/domain"
)

func TestSearchTree(t *testing.T) {
	tree := domain.NewSearchTree()
	tree.Insert("tanjun.abc.SlashContext")
	tree.Insert("tanjun.clients.Client")
	tree.Insert("alluka.Client")

	t.Run("Full Segment", func(t *testing.T) {
		assert.Equal(t, []string{"tanjun.abc.SlashContext"}, tree.Search("slashcontext"))
	})

	t.Run("Prefix Stops Early", func(t *testing.T) {
		// "client" is an interior node with links only where a segment ends.
		assert.ElementsMatch(t, []string{"tanjun.clients.Client", "alluka.Client"}, tree.Search("client"))
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"tanjun.clients.Client", "alluka.Client"}, tree.Search("Client"))
	})

	t.Run("No Match", func(t *testing.T) {
		assert.Nil(t, tree.Search("zzz"))
	})

	t.Run("Duplicate Insert", func(t *testing.T) {
		tree.Insert("alluka.Client")
		assert.Len(t, tree.Search("client"), 2)
	})
}

func TestSearchTree_JSONRoundTrip(t *testing.T) {
	tree := domain.NewSearchTree()
	tree.Insert("pkg.Foo")
	tree.Insert("pkg.Fox")

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	// The artifact shape nests one object per character with "_link" leaves.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "f")

	restored := domain.NewSearchTree()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, []string{"pkg.Foo"}, restored.Search("foo"))
	assert.Equal(t, []string{"pkg.Fox"}, restored.Search("fox"))
}

func TestReferenceIndex(t *testing.T) {
	index := domain.NewReferenceIndex("2.17.0")

	index.AddObject("tanjun.abc.SlashContext")
	index.AddUse("tanjun.abc.SlashContext", "reinhard.components.basic")
	index.AddUse("tanjun.abc.SlashContext", "reinhard.components.docs")
	index.AddUse("tanjun.abc.SlashContext", "reinhard.components.basic")
	index.AddAlias("tanjun.SlashContext", "tanjun.abc.SlashContext")

	t.Run("Uses Deduplicated", func(t *testing.T) {
		assert.Equal(t,
			[]string{"reinhard.components.basic", "reinhard.components.docs"},
			index.Uses("tanjun.abc.SlashContext"))
	})

	t.Run("Uses Through Alias", func(t *testing.T) {
		assert.Equal(t,
			[]string{"reinhard.components.basic", "reinhard.components.docs"},
			index.Uses("tanjun.SlashContext"))
	})

	t.Run("Self Alias Ignored", func(t *testing.T) {
		index.AddAlias("tanjun.abc.SlashContext", "tanjun.abc.SlashContext")
		_, ok := index.Aliases["tanjun.abc.SlashContext"]
		assert.False(t, ok)
	})

	t.Run("Search Resolves Aliases", func(t *testing.T) {
		hits := index.SearchObjects("slashcontext")
		assert.Equal(t, []string{"tanjun.abc.SlashContext"}, hits)
	})

	t.Run("AddObject Idempotent", func(t *testing.T) {
		index.AddObject("tanjun.abc.SlashContext")
		assert.Len(t, index.Uses("tanjun.abc.SlashContext"), 2)
	})
}

func TestReferenceIndex_JSONShape(t *testing.T) {
	index := domain.NewReferenceIndex("1.0.0")
	index.AddObject("pkg.Thing")

	data, err := json.Marshal(index)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"aliases", "alias_search_tree", "object_paths_to_uses", "object_search_tree", "version"} {
		assert.Contains(t, raw, key)
	}

	var restored domain.ReferenceIndex
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, "1.0.0", restored.Version)
	assert.Equal(t, []string{"pkg.Thing"}, restored.SearchObjects("thing"))
}
