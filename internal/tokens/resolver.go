package tokens

import (
	"regexp"
	"strings"

	tokenerrors "github.com/alexisbeaulieu97/tokenkit/pkg/errors"
)

var referencePattern = regexp.MustCompile(`^\{([^{}]+)\}$`)

// IsReference reports whether value has the {dotted.path} reference form.
func IsReference(value string) bool {
	return referencePattern.MatchString(value)
}

// ReferencePath splits a reference into its path segments.
func ReferencePath(value string) ([]string, bool) {
	matches := referencePattern.FindStringSubmatch(value)
	if len(matches) != 2 {
		return nil, false
	}
	return strings.Split(matches[1], "."), true
}

// FlatKey converts a dotted token path into its table key.
func FlatKey(dotted string) string {
	return strings.ReplaceAll(dotted, ".", "-")
}

// Options tunes reference resolution.
type Options struct {
	// ScopedLookup disables the retry against the global tree when a path is
	// missing from the scope it was first looked up in.
	ScopedLookup bool

	// Strict turns unresolved references into UnresolvedReferenceError
	// instead of returning the reference text unchanged.
	Strict bool
}

// Resolver resolves references against one document. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	doc  *Document
	opts Options
}

// NewResolver creates a resolver for doc.
func NewResolver(doc *Document, opts Options) *Resolver {
	if doc == nil {
		doc = NewDocument(nil)
	}
	return &Resolver{doc: doc, opts: opts}
}

// Resolve converts value into its final literal. Literals are returned
// unchanged. The first hop is looked up in scope (the global tree when nil);
// every following hop uses the global tree. An unresolvable reference is
// returned as-is unless the resolver is strict.
func (r *Resolver) Resolve(value string, scope *Group) (string, error) {
	return r.resolve(value, scope, "")
}

func (r *Resolver) resolve(value string, scope *Group, token string) (string, error) {
	if scope == nil {
		scope = r.doc.Global
	}

	current := value
	var chain []string
	visited := make(map[string]struct{})

	for {
		path, ok := ReferencePath(current)
		if !ok {
			return current, nil
		}

		dotted := strings.Join(path, ".")
		chain = append(chain, dotted)
		key := visitKey(dotted, scope == r.doc.Global)
		if _, seen := visited[key]; seen {
			return "", tokenerrors.NewCycleError(chain)
		}
		visited[key] = struct{}{}

		target, found := r.lookup(path, scope)
		if !found.ok() {
			if r.opts.Strict {
				return "", tokenerrors.NewUnresolvedReferenceError(current, token)
			}
			return current, nil
		}

		current = target.Value
		scope = r.doc.Global
	}
}

// visitKey tells a theme path apart from the same path in the global tree, so
// a theme leaf may point at the global token it overrides.
func visitKey(dotted string, global bool) string {
	if global {
		return "global:" + dotted
	}
	return "scope:" + dotted
}

type lookupResult int

const (
	lookupMissing lookupResult = iota
	lookupInScope
	lookupViaGlobal
)

func (l lookupResult) ok() bool {
	return l != lookupMissing
}

// lookup finds the leaf at path, retrying from the global tree when a segment
// is missing from scope.
func (r *Resolver) lookup(path []string, scope *Group) (Leaf, lookupResult) {
	node, found := scope.Lookup(path)
	result := lookupInScope
	if !found && !r.opts.ScopedLookup && scope != r.doc.Global {
		node, found = r.doc.Global.Lookup(path)
		result = lookupViaGlobal
	}
	if !found {
		return Leaf{}, lookupMissing
	}

	leaf, isLeaf := node.Leaf()
	if !isLeaf {
		return Leaf{}, lookupMissing
	}
	return leaf, result
}

// Flatten resolves every leaf below tree into a table keyed by the hyphenated
// path. prefix is a dotted path prepended to every key; scope is the tree
// references are first looked up in.
func (r *Resolver) Flatten(tree *Group, prefix string, scope *Group) (*Table, error) {
	table := NewTable()
	if err := r.flattenInto(table, tree, prefix, scope); err != nil {
		return nil, err
	}
	return table, nil
}

func (r *Resolver) flattenInto(table *Table, tree *Group, prefix string, scope *Group) error {
	for _, key := range tree.Keys() {
		if IsMetadataKey(key) {
			continue
		}

		node, _ := tree.Get(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch node.Kind() {
		case KindLeaf:
			leaf, _ := node.Leaf()
			value, err := r.resolve(leaf.Value, scope, path)
			if err != nil {
				return err
			}
			table.Set(FlatKey(path), value)
		case KindGroup:
			child, _ := node.Group()
			if err := r.flattenInto(table, child, path, scope); err != nil {
				return err
			}
		}
	}
	return nil
}
