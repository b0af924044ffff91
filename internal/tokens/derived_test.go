package tokens

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSSDeclarationsFollowTableOrder(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Set("color-amber-500", "#F59E0B")
	table.Set("space-4", "1rem")

	assert.Equal(t, "--color-amber-500: #F59E0B;\n--space-4: 1rem;\n", CSSDeclarations(table, ""))
	assert.Equal(t, "--ui-color-amber-500: #F59E0B;\n--ui-space-4: 1rem;\n", CSSDeclarations(table, "ui-"))
	assert.Empty(t, CSSDeclarations(NewTable(), "ui-"))
}

func TestStylesheetRendersOneBlockPerTheme(t *testing.T) {
	t.Parallel()

	doc := NewDocument(tree("color", tree("bg", "#FFFFFF")))
	doc.AddTheme("light", tree())
	doc.AddTheme("dark", tree("color", tree("bg", "#000000")))

	css, err := Stylesheet(NewBuilder(doc, Options{}), StylesheetOptions{DefaultTheme: "light"})
	require.NoError(t, err)

	want := ":root {\n  --color-bg: #FFFFFF;\n}\n" +
		"\n[data-theme=\"light\"] {\n  --color-bg: #FFFFFF;\n}\n" +
		"\n[data-theme=\"dark\"] {\n  --color-bg: #000000;\n}\n"
	assert.Equal(t, want, css)
}

func TestStylesheetCustomSelectorAndPrefix(t *testing.T) {
	t.Parallel()

	doc := NewDocument(tree("radius", "4px"))
	doc.AddTheme("dark", tree())

	css, err := Stylesheet(NewBuilder(doc, Options{}), StylesheetOptions{
		Prefix:         "ds-",
		SelectorFormat: ".theme-%s",
		Indent:         "\t",
	})
	require.NoError(t, err)
	assert.Equal(t, ":root {\n\t--ds-radius: 4px;\n}\n\n.theme-dark {\n\t--ds-radius: 4px;\n}\n", css)
}

func TestStylesheetUnknownDefaultTheme(t *testing.T) {
	t.Parallel()

	_, err := Stylesheet(NewBuilder(sampleDocument(), Options{}), StylesheetOptions{DefaultTheme: "sepia"})
	require.Error(t, err)
}

func TestNestedColors(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Set("color-amber-500", "#F59E0B")
	table.Set("color-amber-600", "#D97706")
	table.Set("color-white", "#FFFFFF")
	table.Set("space-4", "1rem")
	table.Set("colorful", "ignored")

	assert.Equal(t, map[string]any{
		"amber": map[string]any{"500": "#F59E0B", "600": "#D97706"},
		"white": "#FFFFFF",
	}, NestedColors(table))
}

func TestNestedColorsValueAndGroupShareKey(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Set("color-primary", "#2563EB")
	table.Set("color-primary-hover", "#1D4ED8")
	table.Set("color-accent-soft", "#FDE68A")
	table.Set("color-accent", "#F59E0B")

	assert.Equal(t, map[string]any{
		"primary": map[string]any{"DEFAULT": "#2563EB", "hover": "#1D4ED8"},
		"accent":  map[string]any{"DEFAULT": "#F59E0B", "soft": "#FDE68A"},
	}, NestedColors(table))
}

func TestNestedColorsFromGlobalTable(t *testing.T) {
	t.Parallel()

	global, err := NewBuilder(sampleDocument(), Options{}).Table(GlobalTree)
	require.NoError(t, err)

	palette := NestedColors(global)
	assert.Equal(t, "#F59E0B", palette["brand"])
	assert.Equal(t, map[string]any{"50": "#F8FAFC", "900": "#0F172A"}, palette["slate"])
	assert.NotContains(t, palette, "primary")
}

func TestTableMergeLeavesInputsUntouched(t *testing.T) {
	t.Parallel()

	base := NewTable()
	base.Set("a", "1")
	base.Set("b", "2")
	overlay := NewTable()
	overlay.Set("b", "20")
	overlay.Set("c", "30")

	merged := base.Merge(overlay)
	assert.Equal(t, []string{"a", "b", "c"}, merged.Keys())
	assert.Equal(t, map[string]string{"a": "1", "b": "20", "c": "30"}, merged.Map())
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, base.Map())
	assert.Equal(t, 2, overlay.Len())
}

func TestTableMarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Set("z-index-modal", "50")
	table.Set("color-amber-500", "#F59E0B")

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.Equal(t, `{"z-index-modal":"50","color-amber-500":"#F59E0B"}`, string(data))

	data, err = json.Marshal(NewTable())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestGroupLookupAndWalk(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()

	node, ok := doc.Global.Lookup([]string{"color", "amber", "500"})
	require.True(t, ok)
	leaf, isLeaf := node.Leaf()
	require.True(t, isLeaf)
	assert.Equal(t, Leaf{Value: "#F59E0B", Type: "color"}, leaf)

	_, ok = doc.Global.Lookup([]string{"color", "amber", "500", "deeper"})
	assert.False(t, ok)

	meta, ok := doc.Global.Get("$metadata")
	require.True(t, ok)
	assert.Equal(t, KindMetadata, meta.Kind())

	assert.Equal(t, 6, doc.Global.CountLeaves())
}
