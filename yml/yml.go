// Package yml provides helpers for navigating and extracting values from yaml.v3 nodes,
// which serve as the generic document tree for both YAML and JSON inputs.
package yml

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML or JSON document into its root node.
// An empty input yields a nil node.
func Parse(r io.Reader) (*yaml.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}

	return &root, nil
}

// ResolveAlias follows alias nodes to the node they point at.
func ResolveAlias(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.AliasNode:
		return ResolveAlias(node.Alias)
	default:
		return node
	}
}

// Unwrap resolves aliases and steps through document nodes to the content node.
func Unwrap(node *yaml.Node) *yaml.Node {
	node = ResolveAlias(node)
	for node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = ResolveAlias(node.Content[0])
	}
	return node
}

// IsObject reports whether node is a mapping.
func IsObject(node *yaml.Node) bool {
	node = Unwrap(node)
	return node != nil && node.Kind == yaml.MappingNode
}

// IsArray reports whether node is a sequence.
func IsArray(node *yaml.Node) bool {
	node = Unwrap(node)
	return node != nil && node.Kind == yaml.SequenceNode
}

// IsTextual reports whether node is a string scalar.
func IsTextual(node *yaml.Node) bool {
	node = Unwrap(node)
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

// IsNull reports whether node is absent or an explicit null scalar.
func IsNull(node *yaml.Node) bool {
	node = Unwrap(node)
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

// IsMergeKey returns true if the given node is a YAML merge key (<<).
func IsMergeKey(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.Tag == "!!merge" && node.Value == "<<"
}

// GetMapElementNodes returns the key and value nodes for key within mapNode.
func GetMapElementNodes(mapNode *yaml.Node, key string) (*yaml.Node, *yaml.Node, bool) {
	for keyNode, valueNode := range fields(Unwrap(mapNode)) {
		if keyNode.Value == key {
			return keyNode, valueNode, true
		}
	}

	return nil, nil, false
}

// Get returns the value node stored under key, or nil when mapNode is not a mapping or lacks key.
func Get(mapNode *yaml.Node, key string) *yaml.Node {
	_, valueNode, _ := GetMapElementNodes(mapNode, key)
	return Unwrap(valueNode)
}

// Has reports whether mapNode carries key, whatever its value.
func Has(mapNode *yaml.Node, key string) bool {
	_, _, ok := GetMapElementNodes(mapNode, key)
	return ok
}

// Fields iterates the fields of a mapping node in document order.
// Fields merged in with "<<" are yielded in place of the merge key, except those the mapping defines itself.
func Fields(mapNode *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		for keyNode, valueNode := range fields(Unwrap(mapNode)) {
			if !yield(keyNode.Value, Unwrap(valueNode)) {
				return
			}
		}
	}
}

// Elements iterates the items of a sequence node in order.
func Elements(seqNode *yaml.Node) iter.Seq[*yaml.Node] {
	return func(yield func(*yaml.Node) bool) {
		seqNode = Unwrap(seqNode)
		if seqNode == nil || seqNode.Kind != yaml.SequenceNode {
			return
		}

		for _, item := range seqNode.Content {
			if !yield(Unwrap(item)) {
				return
			}
		}
	}
}

// fields yields each distinct key of mapNode once. Keys defined directly on the mapping win over merged ones,
// and an earlier merge source wins over a later one.
func fields(mapNode *yaml.Node) iter.Seq2[*yaml.Node, *yaml.Node] {
	return func(yield func(*yaml.Node, *yaml.Node) bool) {
		if mapNode == nil || mapNode.Kind != yaml.MappingNode {
			return
		}

		local := map[string]bool{}
		for i := 0; i+1 < len(mapNode.Content); i += 2 {
			if keyNode := ResolveAlias(mapNode.Content[i]); !IsMergeKey(keyNode) {
				local[keyNode.Value] = true
			}
		}

		merged := map[string]bool{}

		for i := 0; i+1 < len(mapNode.Content); i += 2 {
			keyNode := ResolveAlias(mapNode.Content[i])
			valueNode := mapNode.Content[i+1]

			if IsMergeKey(keyNode) {
				for _, source := range mergeSources(valueNode) {
					for k, v := range fields(source) {
						if local[k.Value] || merged[k.Value] {
							continue
						}
						merged[k.Value] = true
						if !yield(k, v) {
							return
						}
					}
				}
				continue
			}

			if !yield(keyNode, valueNode) {
				return
			}
		}
	}
}

func mergeSources(valueNode *yaml.Node) []*yaml.Node {
	valueNode = ResolveAlias(valueNode)
	if valueNode == nil {
		return nil
	}

	if valueNode.Kind == yaml.SequenceNode {
		sources := make([]*yaml.Node, 0, len(valueNode.Content))
		for _, item := range valueNode.Content {
			sources = append(sources, ResolveAlias(item))
		}
		return sources
	}

	return []*yaml.Node{valueNode}
}

// NodeKindToString returns a human-readable string representation of a yaml.Kind.
func NodeKindToString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
