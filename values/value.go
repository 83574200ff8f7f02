package values

import (
	"github.com/speakeasy-api/schemareader/json"
	"gopkg.in/yaml.v3"
)

// Value represents a raw, uninterpreted JSON value in a schema document,
// such as a default, an example or an enum entry. The node's Kind and Tag
// record which of null, boolean, number, string, array or object it holds.
type Value = *yaml.Node

// Interface returns the Go representation of v, see json.Decode.
func Interface(v Value) (any, error) {
	return json.Decode(v)
}

// Clone returns a deep copy of v so callers can own the node independently of its source tree.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}

	c := *v
	if v.Kind == yaml.AliasNode {
		return Clone(v.Alias)
	}

	if len(v.Content) > 0 {
		c.Content = make([]*yaml.Node, len(v.Content))
		for i, child := range v.Content {
			c.Content[i] = Clone(child)
		}
	}

	return &c
}
