package tokens

import "strings"

// MetadataMarker prefixes keys that carry document metadata rather than tokens.
const MetadataMarker = "$"

// Kind discriminates the variants of a token tree node.
type Kind int

const (
	KindGroup Kind = iota
	KindLeaf
	KindMetadata
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindMetadata:
		return "metadata"
	default:
		return "group"
	}
}

// Node is one entry of a token tree: a leaf, a group, or a metadata marker,
// as reported by Kind.
type Node struct {
	kind  Kind
	leaf  Leaf
	group *Group
}

// Leaf is a concrete token: a literal or reference value and a descriptive type.
type Leaf struct {
	Value string
	Type  string
}

// LeafNode wraps a leaf token.
func LeafNode(value, tokenType string) Node {
	return Node{kind: KindLeaf, leaf: Leaf{Value: value, Type: tokenType}}
}

// GroupNode wraps a nested token tree.
func GroupNode(group *Group) Node {
	if group == nil {
		group = NewGroup()
	}
	return Node{kind: KindGroup, group: group}
}

// MetadataNode marks a reserved metadata entry. Its payload is not part of
// the token model.
func MetadataNode() Node {
	return Node{kind: KindMetadata}
}

// Kind reports the node variant.
func (n Node) Kind() Kind {
	return n.kind
}

// Leaf returns the leaf token and whether the node is a leaf.
func (n Node) Leaf() (Leaf, bool) {
	return n.leaf, n.kind == KindLeaf
}

// Group returns the nested tree and whether the node is a group.
func (n Node) Group() (*Group, bool) {
	return n.group, n.kind == KindGroup
}

// IsMetadataKey reports whether key is reserved for metadata.
func IsMetadataKey(key string) bool {
	return strings.HasPrefix(key, MetadataMarker)
}

// Group is an ordered token tree. Keys keep the order in which they were set.
type Group struct {
	keys     []string
	children map[string]Node
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{children: make(map[string]Node)}
}

// Set stores a child node. Re-setting a key replaces the node but keeps its position.
func (g *Group) Set(key string, node Node) {
	if _, exists := g.children[key]; !exists {
		g.keys = append(g.keys, key)
	}
	g.children[key] = node
}

// Get returns the child stored under key.
func (g *Group) Get(key string) (Node, bool) {
	if g == nil {
		return Node{}, false
	}
	node, ok := g.children[key]
	return node, ok
}

// Keys returns the child keys in insertion order.
func (g *Group) Keys() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.keys...)
}

// Len returns the number of direct children, metadata included.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Lookup walks the tree one path segment at a time.
func (g *Group) Lookup(path []string) (Node, bool) {
	if g == nil || len(path) == 0 {
		return Node{}, false
	}

	current := g
	for i, segment := range path {
		node, ok := current.Get(segment)
		if !ok {
			return Node{}, false
		}
		if i == len(path)-1 {
			return node, true
		}
		next, isGroup := node.Group()
		if !isGroup {
			return Node{}, false
		}
		current = next
	}

	return Node{}, false
}

// Walk visits every leaf below g in depth-first, insertion order. Metadata is skipped.
func (g *Group) Walk(fn func(path []string, leaf Leaf) error) error {
	return g.walk(nil, fn)
}

func (g *Group) walk(prefix []string, fn func(path []string, leaf Leaf) error) error {
	if g == nil {
		return nil
	}
	for _, key := range g.keys {
		if IsMetadataKey(key) {
			continue
		}
		node := g.children[key]
		path := append(append([]string(nil), prefix...), key)
		switch node.Kind() {
		case KindLeaf:
			if err := fn(path, node.leaf); err != nil {
				return err
			}
		case KindGroup:
			if err := node.group.walk(path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// CountLeaves returns the number of leaf tokens below g.
func (g *Group) CountLeaves() int {
	count := 0
	_ = g.Walk(func([]string, Leaf) error {
		count++
		return nil
	})
	return count
}
