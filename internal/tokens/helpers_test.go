package tokens

// tree builds a group from alternating key/value pairs. Strings become colour
// leaves, *Group values nest, and Node values are stored as given.
func tree(entries ...any) *Group {
	g := NewGroup()
	for i := 0; i+1 < len(entries); i += 2 {
		key := entries[i].(string)
		switch v := entries[i+1].(type) {
		case *Group:
			g.Set(key, GroupNode(v))
		case Node:
			g.Set(key, v)
		case string:
			g.Set(key, LeafNode(v, "color"))
		default:
			panic("unsupported tree entry")
		}
	}
	return g
}

func sampleDocument() *Document {
	doc := NewDocument(tree(
		"color", tree(
			"amber", tree("500", "#F59E0B", "600", "#D97706"),
			"slate", tree("50", "#F8FAFC", "900", "#0F172A"),
			"brand", "{color.amber.500}",
		),
		"button", tree(
			"primary", "{color.brand}",
		),
		"$metadata", MetadataNode(),
	))
	doc.AddTheme("light", tree(
		"surface", "{color.slate.50}",
	))
	doc.AddTheme("dark", tree(
		"surface", "{color.slate.900}",
		"color", tree("brand", "{color.amber.600}"),
	))
	return doc
}
