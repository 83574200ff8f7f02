package inspect

import (
	"fmt"

	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/speakeasy-api/schemareader/yml"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// Selector picks the nodes of a document that hold the schemas to read.
type Selector interface {
	Select(root *yaml.Node) []*yaml.Node
}

type rootSelector struct{}

func (rootSelector) Select(root *yaml.Node) []*yaml.Node {
	if node := yml.Unwrap(root); node != nil {
		return []*yaml.Node{node}
	}
	return nil
}

type yamlPathSelector struct {
	path *yamlpath.Path
}

func (y yamlPathSelector) Select(root *yaml.Node) []*yaml.Node {
	// errors aren't actually possible from yamlpath.
	result, _ := y.path.Find(root)
	return result
}

type rfcJSONPathSelector struct {
	path *jsonpath.JSONPath
}

func (r rfcJSONPathSelector) Select(root *yaml.Node) []*yaml.Node {
	return r.path.Query(root)
}

// NewSelector creates a Selector for expr. An empty expression selects the document root.
// Expressions are RFC 9535 JSONPath unless legacy is set, which selects the yamlpath dialect.
func NewSelector(expr string, legacy bool) (Selector, error) {
	if expr == "" {
		return rootSelector{}, nil
	}

	if legacy {
		path, err := yamlpath.NewPath(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid legacy jsonpath %s: %w", expr, err)
		}
		return yamlPathSelector{path: path}, nil
	}

	path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension())
	if err != nil {
		return nil, fmt.Errorf("invalid rfc9535 jsonpath %s: %w", expr, err)
	}
	return rfcJSONPathSelector{path: path}, nil
}
