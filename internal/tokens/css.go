package tokens

import (
	"fmt"
	"strings"
)

// DefaultSelectorFormat renders the selector of a non-default theme block.
const DefaultSelectorFormat = `[data-theme="%s"]`

// CSSDeclarations renders one custom property declaration per table entry,
// in table order.
func CSSDeclarations(table *Table, prefix string) string {
	var b strings.Builder
	writeDeclarations(&b, table, prefix, "")
	return b.String()
}

func writeDeclarations(b *strings.Builder, table *Table, prefix, indent string) {
	for key, value := range table.All() {
		fmt.Fprintf(b, "%s--%s%s: %s;\n", indent, prefix, key, value)
	}
}

// StylesheetOptions configures Stylesheet.
type StylesheetOptions struct {
	Prefix string
	// DefaultTheme supplies the :root block. Empty uses the global table.
	DefaultTheme string
	// SelectorFormat is a fmt pattern taking the theme name.
	SelectorFormat string
	Indent         string
}

// Stylesheet renders a :root block followed by one block per document theme.
func Stylesheet(b *Builder, opts StylesheetOptions) (string, error) {
	if opts.SelectorFormat == "" {
		opts.SelectorFormat = DefaultSelectorFormat
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	root, err := b.Table(opts.DefaultTheme)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	writeBlock(&out, ":root", root, opts)

	for _, theme := range b.Document().ThemeNames() {
		table, err := b.Table(theme)
		if err != nil {
			return "", err
		}
		out.WriteString("\n")
		writeBlock(&out, fmt.Sprintf(opts.SelectorFormat, theme), table, opts)
	}

	return out.String(), nil
}

func writeBlock(out *strings.Builder, selector string, table *Table, opts StylesheetOptions) {
	out.WriteString(selector)
	out.WriteString(" {\n")
	writeDeclarations(out, table, opts.Prefix, opts.Indent)
	out.WriteString("}\n")
}
