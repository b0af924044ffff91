package config

import (
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

// Format identifies the encoding of a token document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Reserved keys of the token document.
const (
	themesKey    = "$themes"
	valueKey     = "value"
	typeKey      = "type"
	dtcgValueKey = "$value"
	dtcgTypeKey  = "$type"
)

// FormatFromPath infers the document format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// themeSetEntry is the on-disk shape of one $themes entry.
type themeSetEntry struct {
	ID                string            `yaml:"id"`
	Name              string            `yaml:"name" validate:"required,theme_name"`
	Group             string            `yaml:"group"`
	SelectedTokenSets map[string]string `yaml:"selectedTokenSets" validate:"omitempty,dive,keys,required,endkeys,oneof=enabled disabled source"`
}

func (s themeSetEntry) toThemeSet() tokens.ThemeSet {
	return tokens.ThemeSet{
		ID:                s.ID,
		Name:              s.Name,
		Group:             s.Group,
		SelectedTokenSets: s.SelectedTokenSets,
	}
}
