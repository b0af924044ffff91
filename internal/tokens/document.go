// Package tokens resolves design token documents into flat per-theme tables.
//
// A Document holds a global token tree plus named theme override trees. A
// Resolver turns {dotted.path} references into literal values, a Builder
// combines the global and theme tables, and the derived accessors render the
// tables as CSS custom properties or a nested colour palette.
package tokens

// GlobalTree is the document key holding the base token tree. It also names
// the base table when passed to Builder.Table.
const GlobalTree = "global"

// ThemeSet mirrors one entry of the optional $themes metadata list.
type ThemeSet struct {
	ID                string            `json:"id,omitempty"`
	Name              string            `json:"name"`
	Group             string            `json:"group,omitempty"`
	SelectedTokenSets map[string]string `json:"selectedTokenSets,omitempty"`
}

// Document is an immutable, fully decoded token document.
type Document struct {
	Global     *Group
	themeNames []string
	themes     map[string]*Group
	ThemeSets  []ThemeSet
	Metadata   map[string]any
}

// NewDocument creates a document around the given global tree.
func NewDocument(global *Group) *Document {
	if global == nil {
		global = NewGroup()
	}
	return &Document{
		Global:   global,
		themes:   make(map[string]*Group),
		Metadata: make(map[string]any),
	}
}

// AddTheme registers a theme override tree. Later registrations of the same name replace the tree.
func (d *Document) AddTheme(name string, tree *Group) {
	if tree == nil {
		tree = NewGroup()
	}
	if _, exists := d.themes[name]; !exists {
		d.themeNames = append(d.themeNames, name)
	}
	d.themes[name] = tree
}

// Theme returns the override tree for name.
func (d *Document) Theme(name string) (*Group, bool) {
	tree, ok := d.themes[name]
	return tree, ok
}

// ThemeNames returns theme names in document order.
func (d *Document) ThemeNames() []string {
	return append([]string(nil), d.themeNames...)
}
