// Package testutils contains helpers for building yaml nodes in tests.
package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ParseNode parses an inline YAML or JSON fixture and returns its content node.
func ParseNode(t *testing.T, doc string) *yaml.Node {
	t.Helper()

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &root))
	require.Equal(t, yaml.DocumentNode, root.Kind)
	require.NotEmpty(t, root.Content)

	return root.Content[0]
}

func CreateStringYamlNode(value string, line, column int) *yaml.Node {
	return &yaml.Node{
		Value:  value,
		Kind:   yaml.ScalarNode,
		Tag:    "!!str",
		Line:   line,
		Column: column,
	}
}

func CreateIntYamlNode(value int, line, column int) *yaml.Node {
	return &yaml.Node{
		Value:  fmt.Sprintf("%d", value),
		Kind:   yaml.ScalarNode,
		Tag:    "!!int",
		Line:   line,
		Column: column,
	}
}

func CreateBoolYamlNode(value bool, line, column int) *yaml.Node {
	return &yaml.Node{
		Value:  fmt.Sprintf("%t", value),
		Kind:   yaml.ScalarNode,
		Tag:    "!!bool",
		Line:   line,
		Column: column,
	}
}

// CreateMapYamlNode builds a mapping node from alternating key and value nodes.
func CreateMapYamlNode(contents []*yaml.Node, line, column int) *yaml.Node {
	return &yaml.Node{
		Content: contents,
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Line:    line,
		Column:  column,
	}
}

// CreateSeqYamlNode builds a sequence node from items.
func CreateSeqYamlNode(items []*yaml.Node, line, column int) *yaml.Node {
	return &yaml.Node{
		Content: items,
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
		Line:    line,
		Column:  column,
	}
}
