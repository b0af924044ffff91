package tokens

import (
	"sync"

	tokenerrors "github.com/alexisbeaulieu97/tokenkit/pkg/errors"
)

// Builder produces the effective table for each theme and caches the result.
// Returned tables are shared between callers and must be treated as read-only.
type Builder struct {
	doc      *Document
	resolver *Resolver

	mu    sync.Mutex
	cache map[string]*Table
}

// NewBuilder creates a builder for doc.
func NewBuilder(doc *Document, opts Options) *Builder {
	resolver := NewResolver(doc, opts)
	return &Builder{
		doc:      resolver.doc,
		resolver: resolver,
		cache:    make(map[string]*Table),
	}
}

// Document returns the document the builder reads from.
func (b *Builder) Document() *Document {
	return b.doc
}

// Resolver returns the resolver used for every table.
func (b *Builder) Resolver() *Resolver {
	return b.resolver
}

// Table returns the global table overlaid with theme's overrides. An empty
// name or GlobalTree returns the global table on its own.
func (b *Builder) Table(theme string) (*Table, error) {
	if theme == "" {
		theme = GlobalTree
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.tableLocked(theme)
}

func (b *Builder) tableLocked(theme string) (*Table, error) {
	if cached, ok := b.cache[theme]; ok {
		return cached, nil
	}

	global := b.doc.Global
	if theme == GlobalTree {
		base, err := b.resolver.Flatten(global, "", global)
		if err != nil {
			return nil, err
		}
		b.cache[theme] = base
		return base, nil
	}

	tree, ok := b.doc.Theme(theme)
	if !ok {
		return nil, tokenerrors.NewUnknownThemeError(theme, b.doc.ThemeNames())
	}

	base, err := b.tableLocked(GlobalTree)
	if err != nil {
		return nil, err
	}
	overrides, err := b.resolver.Flatten(tree, "", global)
	if err != nil {
		return nil, err
	}

	merged := base.Merge(overrides)
	b.cache[theme] = merged
	return merged, nil
}

// Lookup returns the resolved value of one flat key in theme. A missing key
// reports false without an error.
func (b *Builder) Lookup(key, theme string) (string, bool, error) {
	table, err := b.Table(theme)
	if err != nil {
		return "", false, err
	}
	value, ok := table.Get(key)
	return value, ok, nil
}

// ResolveIn resolves value using theme's tree as the first-hop scope.
func (b *Builder) ResolveIn(value, theme string) (string, error) {
	if theme == "" || theme == GlobalTree {
		return b.resolver.Resolve(value, b.doc.Global)
	}
	tree, ok := b.doc.Theme(theme)
	if !ok {
		return "", tokenerrors.NewUnknownThemeError(theme, b.doc.ThemeNames())
	}
	return b.resolver.Resolve(value, tree)
}
