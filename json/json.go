// Package json converts yaml.v3 document nodes into JSON and into generic Go values.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/schemareader/sequencedmap"
	"github.com/speakeasy-api/schemareader/yml"
	"gopkg.in/yaml.v3"
)

// YAMLToJSON will convert the provided YAML node to JSON in a stable way not reordering keys.
// An indentation of 0 produces compact output.
func YAMLToJSON(node *yaml.Node, indentation int, buffer io.Writer) error {
	v, err := Decode(node)
	if err != nil {
		return err
	}

	e := json.NewEncoder(buffer)
	e.SetEscapeHTML(false)
	e.SetIndent("", strings.Repeat(" ", indentation))

	return e.Encode(v)
}

// Decode converts node into a generic value: nil, bool, int, float64, string,
// []any or *sequencedmap.Map[string, any] for objects so that key order survives.
func Decode(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return Decode(node.Content[0])
	case yaml.SequenceNode:
		return decodeSequence(node)
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.ScalarNode:
		return decodeScalar(node)
	case yaml.AliasNode:
		return Decode(node.Alias)
	default:
		return nil, fmt.Errorf("unknown node kind: %s", yml.NodeKindToString(node.Kind))
	}
}

func decodeMapping(node *yaml.Node) (any, error) {
	v := sequencedmap.NewWithCapacity[string, any](len(node.Content) / 2)

	for key, valueNode := range yml.Fields(node) {
		vv, err := Decode(valueNode)
		if err != nil {
			return nil, err
		}

		v.Set(key, vv)
	}

	return v, nil
}

func decodeSequence(node *yaml.Node) (any, error) {
	v := make([]any, 0, len(node.Content))

	for item := range yml.Elements(node) {
		vv, err := Decode(item)
		if err != nil {
			return nil, err
		}

		v = append(v, vv)
	}

	return v, nil
}

func decodeScalar(node *yaml.Node) (any, error) {
	var v any

	if err := node.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}
