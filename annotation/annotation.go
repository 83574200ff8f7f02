// Package annotation models metadata attached to program declarations, such as
// an @Schema annotation on a class, as read from a compiled index without executing the program.
package annotation

import (
	"iter"
	"strings"

	"github.com/speakeasy-api/schemareader/references"
	"github.com/speakeasy-api/schemareader/sequencedmap"
)

const (
	// AttrName is the attribute holding an explicit name.
	AttrName = "name"
	// AttrRef is the attribute holding a reference to another definition.
	AttrRef = "ref"
)

// Attribute is a named annotation value.
type Attribute struct {
	Name  string
	Value *Value
}

// Attr builds an Attribute.
func Attr(name string, value *Value) Attribute {
	return Attribute{Name: name, Value: value}
}

// Annotation is an annotation instance: its type name and its explicitly set attributes in declaration order.
type Annotation struct {
	// Name is the annotation type, e.g. "Schema".
	Name string
	// Target is the declaration the annotation is attached to, if known.
	Target string

	values *sequencedmap.Map[string, *Value]
}

// New creates an annotation instance. Attributes with a nil value are skipped.
func New(name string, attrs ...Attribute) *Annotation {
	a := &Annotation{
		Name:   name,
		values: sequencedmap.NewWithCapacity[string, *Value](len(attrs)),
	}
	for _, attr := range attrs {
		if attr.Value == nil {
			continue
		}
		a.values.Set(attr.Name, attr.Value)
	}
	return a
}

// Value returns the attribute value, or nil when the attribute is not set.
func (a *Annotation) Value(name string) *Value {
	if a == nil {
		return nil
	}
	v, _ := a.values.Get(name)
	return v
}

// Has reports whether the attribute is explicitly set.
func (a *Annotation) Has(name string) bool {
	return a.Value(name) != nil
}

// Attributes iterates the set attributes in declaration order.
func (a *Annotation) Attributes() iter.Seq2[string, *Value] {
	if a == nil {
		return func(func(string, *Value) bool) {}
	}
	return a.values.All()
}

// StringValue returns the text of a string-valued attribute.
// It reports false when the attribute is unset or is not textual.
func (a *Annotation) StringValue(name string) (string, bool) {
	v := a.Value(name)
	if v == nil {
		return "", false
	}
	s, err := v.AsString()
	if err != nil {
		return "", false
	}
	return s, true
}

// IsRef reports whether the annotation declares a reference instead of inline fields.
func (a *Annotation) IsRef() bool {
	ref, ok := a.StringValue(AttrRef)
	return ok && strings.TrimSpace(ref) != ""
}

// NameFromRef returns the final path segment of the annotation's reference, or "" when it has none.
func (a *Annotation) NameFromRef() string {
	if !a.IsRef() {
		return ""
	}
	ref, _ := a.StringValue(AttrRef)
	return references.ExpandSchemaRef(ref).Name()
}

// Index resolves type names to the annotation declared on them.
type Index interface {
	// Lookup returns the annotation of the given annotation type declared on typeName.
	Lookup(typeName, annotationName string) (*Annotation, bool)
}

// MapIndex is an in-memory Index keyed by type name.
type MapIndex map[string][]*Annotation

var _ Index = MapIndex(nil)

// Add records an annotation declared on typeName.
func (m MapIndex) Add(typeName string, a *Annotation) {
	a.Target = typeName
	m[typeName] = append(m[typeName], a)
}

// Lookup implements Index.
func (m MapIndex) Lookup(typeName, annotationName string) (*Annotation, bool) {
	for _, a := range m[typeName] {
		if a.Name == annotationName {
			return a, true
		}
	}
	return nil, false
}

// SimpleName strips the package and any enclosing types from a fully qualified type name.
func SimpleName(typeName string) string {
	if i := strings.LastIndexAny(typeName, ".$"); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}
