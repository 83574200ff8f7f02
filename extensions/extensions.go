// Package extensions holds the vendor extensions ("x-" keys) attached to schema model objects.
package extensions

import (
	"strings"

	"github.com/speakeasy-api/schemareader/sequencedmap"
	"github.com/speakeasy-api/schemareader/values"
	"github.com/speakeasy-api/schemareader/yml"
	"gopkg.in/yaml.v3"
)

// Prefix starts the name of every vendor extension.
const Prefix = "x-"

// Extension represents a single extension to an object, in its raw form.
type Extension = *yaml.Node

// Element represents a key/value pair of a set of extensions.
type Element struct {
	*sequencedmap.Element[string, Extension]
}

// NewElem will create a new element for the extensions set.
func NewElem(key string, value *yaml.Node) *Element {
	return &Element{
		sequencedmap.NewElem(key, value),
	}
}

// Extensions represents an ordered set of extensions to an object.
type Extensions struct {
	*sequencedmap.Map[string, Extension]
}

// New will create a new extensions set.
func New(elements ...*Element) *Extensions {
	ee := make([]*sequencedmap.Element[string, Extension], len(elements))
	for i, element := range elements {
		ee[i] = element.Element
	}

	return &Extensions{
		Map: sequencedmap.New(ee...),
	}
}

// Init will initialize the extensions set.
func (e *Extensions) Init() {
	if e.Map == nil {
		e.Map = sequencedmap.New[string, Extension]()
	}
}

// GetString returns the text of a scalar extension.
func (e *Extensions) GetString(key string) (string, bool) {
	if e == nil {
		return "", false
	}

	v, ok := e.Get(key)
	if !ok || v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}

	return v.Value, true
}

// IsExtension reports whether key names a vendor extension.
func IsExtension(key string) bool {
	return strings.HasPrefix(key, Prefix)
}

// Extendable is implemented by models that collect vendor extensions.
type Extendable interface {
	AddExtension(key string, value Extension)
}

// ReadInto scans the fields of node and adds a copy of every "x-" prefixed one to target, in document order.
// Standard fields never carry the prefix, so they are never picked up as extensions.
func ReadInto(node *yaml.Node, target Extendable) {
	for key, value := range yml.Fields(node) {
		if IsExtension(key) {
			target.AddExtension(key, values.Clone(value))
		}
	}
}

// Read returns copies of the vendor extensions of node, or nil when it has none.
func Read(node *yaml.Node) *Extensions {
	var e *Extensions
	for key, value := range yml.Fields(node) {
		if !IsExtension(key) {
			continue
		}
		if e == nil {
			e = New()
		}
		e.Set(key, values.Clone(value))
	}
	return e
}

// AddExtension adds or replaces an extension, so an Extensions value is itself Extendable.
func (e *Extensions) AddExtension(key string, value Extension) {
	e.Init()
	e.Set(key, value)
}
