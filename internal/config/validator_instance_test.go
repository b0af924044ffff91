package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetValidator(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	// Should return the same instance (singleton)
	assert.Same(t, v1, v2)
}

func TestThemeNameValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"simple", "dark", true},
		{"hyphenated", "high-contrast", true},
		{"underscore", "dark_dimmed", true},
		{"digit first", "2024", true},
		{"empty", "", false},
		{"space", "dark mode", false},
		{"metadata marker", "$themes", false},
		{"leading hyphen", "-dark", false},
		{"dot", "brand.dark", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, "theme_name")
			assert.Equal(t, tt.expected, err == nil, "theme_name(%q)", tt.value)
			assert.Equal(t, tt.expected, ValidThemeName(tt.value))
		})
	}
}

func TestCSSIdentValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"plain", "ds", true},
		{"trailing hyphen", "ds-", true},
		{"leading underscore", "_x", true},
		{"leading digit", "1ds", false},
		{"space", "d s", false},
		{"colon", "ds:", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, "css_ident")
			assert.Equal(t, tt.expected, err == nil, "css_ident(%q)", tt.value)
		})
	}
}

func TestSelectorFormatValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"data attribute", `[data-theme="%s"]`, true},
		{"class", ".theme-%s", true},
		{"no placeholder", ".dark", false},
		{"two placeholders", ".%s-%s", false},
		{"other verb", ".%s-%d", false},
		{"literal percent", ".%s-100%", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, "selector_format")
			assert.Equal(t, tt.expected, err == nil, "selector_format(%q)", tt.value)
		})
	}
}
