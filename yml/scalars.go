package yml

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/speakeasy-api/schemareader/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ErrInvalidFormat is returned when a scalar cannot be coerced to the type a field requires.
	ErrInvalidFormat = errors.Error("invalid format")
	// ErrInvalidDocument is returned when the input cannot be parsed as YAML or JSON.
	ErrInvalidDocument = errors.Error("invalid document")
)

// NodeError locates an error at a position within the source document.
type NodeError struct {
	Line   int
	Column int
	Err    error
}

// NewNodeError returns err annotated with node's position. A nil node yields err unchanged.
func NewNodeError(node *yaml.Node, err error) error {
	if node == nil {
		return err
	}
	return &NodeError{Line: node.Line, Column: node.Column, Err: err}
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("[%d:%d] %v", e.Line, e.Column, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// GetString returns the text of the scalar stored under key.
// Missing keys, explicit nulls and non-scalar values yield nil.
func GetString(mapNode *yaml.Node, key string) *string {
	node := Get(mapNode, key)
	if IsNull(node) || node.Kind != yaml.ScalarNode {
		return nil
	}

	v := node.Value
	return &v
}

// GetFloat parses the scalar stored under key as a decimal number.
func GetFloat(mapNode *yaml.Node, key string) (*float64, error) {
	node, err := scalarField(mapNode, key)
	if node == nil || err != nil {
		return nil, err
	}

	v, err := ParseDecimal(node.Value)
	if err != nil {
		return nil, NewNodeError(node, ErrInvalidFormat.Wrapf("%s: expected a number, got %q", key, node.Value))
	}

	return &v, nil
}

// GetInt parses the scalar stored under key as an integer.
func GetInt(mapNode *yaml.Node, key string) (*int64, error) {
	node, err := scalarField(mapNode, key)
	if node == nil || err != nil {
		return nil, err
	}

	v, err := strconv.ParseInt(strings.TrimSpace(node.Value), 10, 64)
	if err != nil {
		return nil, NewNodeError(node, ErrInvalidFormat.Wrapf("%s: expected an integer, got %q", key, node.Value))
	}

	return &v, nil
}

// GetBool parses the scalar stored under key as a boolean.
func GetBool(mapNode *yaml.Node, key string) (*bool, error) {
	node, err := scalarField(mapNode, key)
	if node == nil || err != nil {
		return nil, err
	}

	v, err := ParseBool(node.Value)
	if err != nil {
		return nil, NewNodeError(node, ErrInvalidFormat.Wrapf("%s: expected a boolean, got %q", key, node.Value))
	}

	return &v, nil
}

// decimalPattern matches plain decimal notation with an optional exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseDecimal parses s as a finite decimal number. Hex floats, NaN and infinities are rejected.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid decimal %q", s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("decimal %q is out of range", s)
	}

	return v, nil
}

// ParseBool accepts the boolean spellings of YAML 1.2 core schema.
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

// GetStringSlice reads a sequence of scalars stored under key.
// A missing key or a non-sequence value yields nil.
func GetStringSlice(mapNode *yaml.Node, key string) []string {
	node := Get(mapNode, key)
	if !IsArray(node) {
		return nil
	}

	out := make([]string, 0, len(node.Content))
	for item := range Elements(node) {
		if item == nil {
			continue
		}
		out = append(out, item.Value)
	}

	return out
}

func scalarField(mapNode *yaml.Node, key string) (*yaml.Node, error) {
	node := Get(mapNode, key)
	if IsNull(node) {
		return nil, nil
	}

	if node.Kind != yaml.ScalarNode {
		return nil, NewNodeError(node, ErrInvalidFormat.Wrapf("%s: expected a scalar, got %s", key, NodeKindToString(node.Kind)))
	}

	return node, nil
}

// CreateStringNode returns a plain string scalar.
func CreateStringNode(value string) *yaml.Node {
	return &yaml.Node{
		Value: value,
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
	}
}

// CreateBoolNode returns a boolean scalar.
func CreateBoolNode(value bool) *yaml.Node {
	return &yaml.Node{
		Value: strconv.FormatBool(value),
		Kind:  yaml.ScalarNode,
		Tag:   "!!bool",
	}
}

// CreateIntNode returns an integer scalar.
func CreateIntNode(value int64) *yaml.Node {
	return &yaml.Node{
		Value: strconv.FormatInt(value, 10),
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
	}
}

// CreateFloatNode returns a decimal scalar.
func CreateFloatNode(value float64) *yaml.Node {
	return &yaml.Node{
		Value: strconv.FormatFloat(value, 'g', -1, 64),
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
	}
}

// CreateSequenceNode returns a sequence holding items.
func CreateSequenceNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
		Content: items,
	}
}
