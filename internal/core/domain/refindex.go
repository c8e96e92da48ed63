package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// searchLinkKey is the leaf key holding full paths in a search tree node.
const searchLinkKey = "_link"

// SearchTree is a character trie over the lowercased final segment of
// object paths. Interior keys are single characters; the "_link" key at any
// node lists the full paths whose final segment ends there.
type SearchTree struct {
	children map[string]*SearchTree
	links    []string
}

// NewSearchTree creates an empty SearchTree.
func NewSearchTree() *SearchTree {
	return &SearchTree{}
}

// Insert adds a path to the tree, keyed on the lowercased text after the
// last '.' of the path.
func (t *SearchTree) Insert(path string) {
	segment := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		segment = path[i+1:]
	}

	node := t
	for _, r := range strings.ToLower(segment) {
		key := string(r)
		if node.children == nil {
			node.children = make(map[string]*SearchTree)
		}
		child, ok := node.children[key]
		if !ok {
			child = NewSearchTree()
			node.children[key] = child
		}
		node = child
	}

	if !slices.Contains(node.links, path) {
		node.links = append(node.links, path)
	}
}

// Search walks the tree character by character over the lowercased query
// and returns the paths linked at the final node.
func (t *SearchTree) Search(query string) []string {
	node := t
	for _, r := range strings.ToLower(query) {
		child, ok := node.children[string(r)]
		if !ok {
			return nil
		}
		node = child
	}
	return slices.Clone(node.links)
}

// MarshalJSON renders the tree in the artifact's nested-object shape.
func (t *SearchTree) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.children)+1)
	for key, child := range t.children {
		out[key] = child
	}
	if len(t.links) > 0 {
		out[searchLinkKey] = t.links
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the tree from the artifact's nested-object shape.
func (t *SearchTree) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = SearchTree{}
	for key, value := range raw {
		if key == searchLinkKey {
			if err := json.Unmarshal(value, &t.links); err != nil {
				return err
			}
			continue
		}

		child := NewSearchTree()
		if err := json.Unmarshal(value, child); err != nil {
			return err
		}
		if t.children == nil {
			t.children = make(map[string]*SearchTree)
		}
		t.children[key] = child
	}

	return nil
}

// ReferenceIndex tracks where exported objects are referenced across a set
// of source trees, together with alias links and per-character search trees.
type ReferenceIndex struct {
	Aliases           map[string]string   `json:"aliases"`
	AliasSearchTree   *SearchTree         `json:"alias_search_tree"`
	ObjectPathsToUses map[string][]string `json:"object_paths_to_uses"`
	ObjectSearchTree  *SearchTree         `json:"object_search_tree"`
	Version           string              `json:"version"`
}

// NewReferenceIndex creates an empty index for the given library version.
func NewReferenceIndex(version string) *ReferenceIndex {
	return &ReferenceIndex{
		Aliases:           make(map[string]string),
		AliasSearchTree:   NewSearchTree(),
		ObjectPathsToUses: make(map[string][]string),
		ObjectSearchTree:  NewSearchTree(),
		Version:           version,
	}
}

// AddAlias records an alias to a canonical path. A self-alias is ignored.
func (i *ReferenceIndex) AddAlias(alias, target string) {
	if alias == target {
		return
	}
	if _, exists := i.Aliases[alias]; !exists {
		i.AliasSearchTree.Insert(alias)
	}
	i.Aliases[alias] = target
}

// AddObject registers an object path with no recorded uses yet.
func (i *ReferenceIndex) AddObject(path string) {
	if _, exists := i.ObjectPathsToUses[path]; exists {
		return
	}
	i.ObjectPathsToUses[path] = []string{}
	i.ObjectSearchTree.Insert(path)
}

// AddUse records that the object at path is referenced from use.
func (i *ReferenceIndex) AddUse(path, use string) {
	uses, exists := i.ObjectPathsToUses[path]
	if exists {
		if !slices.Contains(uses, use) {
			i.ObjectPathsToUses[path] = append(uses, use)
		}
		return
	}
	i.ObjectPathsToUses[path] = []string{use}
	i.ObjectSearchTree.Insert(path)
}

// Resolve follows the alias table to an object's canonical path.
func (i *ReferenceIndex) Resolve(path string) string {
	if target, ok := i.Aliases[path]; ok {
		return target
	}
	return path
}

// SearchObjects returns the object paths whose final segment matches the
// query prefix, with aliases resolved to canonical paths.
func (i *ReferenceIndex) SearchObjects(query string) []string {
	hits := i.ObjectSearchTree.Search(query)
	for _, alias := range i.AliasSearchTree.Search(query) {
		target := i.Resolve(alias)
		if !slices.Contains(hits, target) {
			hits = append(hits, target)
		}
	}
	slices.Sort(hits)
	return hits
}

// Uses returns the recorded referencing paths for an object, following
// aliases.
func (i *ReferenceIndex) Uses(path string) []string {
	return slices.Clone(i.ObjectPathsToUses[i.Resolve(path)])
}

// ManifestEntry describes one written index artifact.
type ManifestEntry struct {
	File    string `json:"file"`
	Hash    string `json:"xxhash"`
	Version string `json:"version"`
}

// IndexManifest describes a generated index artifact directory.
type IndexManifest struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Entries     map[string]ManifestEntry `json:"entries"`
}
