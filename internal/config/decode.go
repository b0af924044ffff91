package config

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
	tokenerrors "github.com/alexisbeaulieu97/tokenkit/pkg/errors"
)

// buildDocument classifies the top-level entries: global tree, theme trees and metadata.
func buildDocument(node *yaml.Node) (*tokens.Document, error) {
	node = deref(node)
	if node.Kind != yaml.MappingNode {
		return nil, tokenerrors.NewValidationError("document", "top level must be a mapping of token trees", nil)
	}

	doc := tokens.NewDocument(nil)
	sawGlobal := false

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch {
		case key == themesKey:
			sets, err := decodeThemeSets(value)
			if err != nil {
				return nil, err
			}
			doc.ThemeSets = sets
		case tokens.IsMetadataKey(key):
			raw, err := decodeRaw(value, key)
			if err != nil {
				return nil, err
			}
			doc.Metadata[key] = raw
		case key == tokens.GlobalTree:
			group, err := buildGroup(value, key)
			if err != nil {
				return nil, err
			}
			doc.Global = group
			sawGlobal = true
		default:
			if !ValidThemeName(key) {
				return nil, tokenerrors.NewValidationError(key, fmt.Sprintf("invalid theme name %q", key), nil)
			}
			group, err := buildGroup(value, key)
			if err != nil {
				return nil, err
			}
			doc.AddTheme(key, group)
		}
	}

	if !sawGlobal {
		return nil, tokenerrors.NewValidationError(tokens.GlobalTree, "token document requires a global tree", nil)
	}

	return doc, nil
}

func buildGroup(node *yaml.Node, field string) (*tokens.Group, error) {
	node = deref(node)
	if node.Kind != yaml.MappingNode {
		return nil, tokenerrors.NewValidationError(field, "expected a mapping of tokens", nil)
	}

	group := tokens.NewGroup()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		childField := fieldForToken(field, key)

		if tokens.IsMetadataKey(key) {
			if _, err := decodeRaw(node.Content[i+1], childField); err != nil {
				return nil, err
			}
			group.Set(key, tokens.MetadataNode())
			continue
		}

		child, err := buildNode(node.Content[i+1], childField)
		if err != nil {
			return nil, err
		}
		group.Set(key, child)
	}

	return group, nil
}

// buildNode decides once whether a mapping is a token leaf or a nested group.
func buildNode(node *yaml.Node, field string) (tokens.Node, error) {
	node = deref(node)
	if node.Kind != yaml.MappingNode {
		return tokens.Node{}, tokenerrors.NewValidationError(field, "expected a token or a group of tokens", nil)
	}

	valueNode, tokenType, isLeaf := leafFields(node)
	if !isLeaf {
		group, err := buildGroup(node, field)
		if err != nil {
			return tokens.Node{}, err
		}
		return tokens.GroupNode(group), nil
	}

	value, err := leafValue(valueNode, field)
	if err != nil {
		return tokens.Node{}, err
	}
	return tokens.LeafNode(value, tokenType), nil
}

func leafFields(node *yaml.Node) (*yaml.Node, string, bool) {
	var valueNode *yaml.Node
	tokenType := ""
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case valueKey, dtcgValueKey:
			valueNode = node.Content[i+1]
		case typeKey, dtcgTypeKey:
			if typed := deref(node.Content[i+1]); typed.Kind == yaml.ScalarNode {
				tokenType = typed.Value
			}
		}
	}
	return valueNode, tokenType, valueNode != nil
}

// leafValue returns scalars as written; composite values are kept as compact JSON.
func leafValue(node *yaml.Node, field string) (string, error) {
	node = deref(node)
	if node.Kind == yaml.ScalarNode {
		if node.ShortTag() == "!!null" {
			return "", tokenerrors.NewValidationError(field, "token value must not be null", nil)
		}
		return node.Value, nil
	}

	raw, err := decodeRaw(node, field)
	if err != nil {
		return "", err
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return "", tokenerrors.NewValidationError(field, "composite token value cannot be encoded", err)
	}
	return string(encoded), nil
}

func decodeThemeSets(node *yaml.Node) ([]tokens.ThemeSet, error) {
	var entries []themeSetEntry
	if err := node.Decode(&entries); err != nil {
		return nil, tokenerrors.NewValidationError(themesKey, "expected a list of theme sets", err)
	}

	v := validatorInstance()
	sets := make([]tokens.ThemeSet, 0, len(entries))
	for i, entry := range entries {
		if err := v.Struct(entry); err != nil {
			return nil, convertValidationError(err, fieldForThemeSet(i))
		}
		sets = append(sets, entry.toThemeSet())
	}
	return sets, nil
}

func decodeRaw(node *yaml.Node, field string) (any, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, tokenerrors.NewValidationError(field, "metadata cannot be decoded", err)
	}
	return raw, nil
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node == nil {
		return &yaml.Node{}
	}
	return node
}

// nodeFromValue converts a decoded TOML value into a YAML node tree. TOML
// tables carry no order, so keys are sorted.
func nodeFromValue(value any) *yaml.Node {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range keys {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				nodeFromValue(v[key]),
			)
		}
		return node
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			node.Content = append(node.Content, nodeFromValue(item))
		}
		return node
	case []map[string]any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			node.Content = append(node.Content, nodeFromValue(item))
		}
		return node
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(v)}
	}
}
