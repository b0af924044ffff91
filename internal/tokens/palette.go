package tokens

import "strings"

const (
	// ColorPrefix selects the palette entries of a table.
	ColorPrefix = "color-"

	// DefaultKey holds a value whose key is also the parent of deeper shades.
	DefaultKey = "DEFAULT"
)

// NestedColors re-nests the color-* entries of table into a tree keyed by the
// remaining hyphen-separated segments. Values are copied as-is.
func NestedColors(table *Table) map[string]any {
	root := make(map[string]any)

	for key, value := range table.WithPrefix(ColorPrefix).All() {
		parts := strings.Split(key, "-")
		node := root
		for _, part := range parts[:len(parts)-1] {
			node = descend(node, part)
		}

		last := parts[len(parts)-1]
		if existing, ok := node[last].(map[string]any); ok {
			existing[DefaultKey] = value
			continue
		}
		node[last] = value
	}

	return root
}

func descend(node map[string]any, part string) map[string]any {
	switch existing := node[part].(type) {
	case map[string]any:
		return existing
	case string:
		child := map[string]any{DefaultKey: existing}
		node[part] = child
		return child
	default:
		child := make(map[string]any)
		node[part] = child
		return child
	}
}
