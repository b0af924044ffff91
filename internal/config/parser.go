package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
	tokenerrors "github.com/alexisbeaulieu97/tokenkit/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseDocument loads a token document from disk, validates its shape, and
// returns the decoded model. The format follows the file extension.
func ParseDocument(path string) (*tokens.Document, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, tokenerrors.NewParseError(path, 0, fmt.Errorf("unsupported token document extension"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tokenerrors.NewParseError(path, 0, err)
	}

	return DecodeDocument(data, format, path)
}

// DecodeDocument decodes raw document bytes. path is only used in error messages.
func DecodeDocument(data []byte, format Format, path string) (*tokens.Document, error) {
	var root yaml.Node

	switch format {
	case FormatJSON:
		decoded, line, err := decodeJSON(data)
		if err != nil {
			return nil, tokenerrors.NewParseError(path, line, err)
		}
		root = decoded
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, tokenerrors.NewParseError(path, extractLine(err), err)
		}
	case FormatTOML:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, tokenerrors.NewParseError(path, tomlLine(err), err)
		}
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{nodeFromValue(raw)}}
	default:
		return nil, tokenerrors.NewParseError(path, 0, fmt.Errorf("unknown document format %q", format))
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, tokenerrors.NewValidationError("document", "token document is empty", nil)
	}

	return buildDocument(root.Content[0])
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}

func tomlLine(err error) int {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, _ := decodeErr.Position()
		return row
	}
	return 0
}
