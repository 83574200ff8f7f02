package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/speakeasy-api/schemareader/errors"
	"github.com/speakeasy-api/schemareader/yml"
)

const (
	// ErrKindMismatch is returned when an attribute is read as a kind it does not hold.
	ErrKindMismatch = errors.Error("annotation value kind mismatch")
	// ErrInvalidNumber is returned when a string attribute does not hold a parsable number.
	ErrInvalidNumber = errors.Error("annotation value is not a number")
)

// Kind identifies what an annotation attribute value holds.
type Kind int

const (
	KindString Kind = iota + 1
	KindBoolean
	KindInteger
	KindFloat
	// KindEnum holds the name of an enum constant, e.g. "STRING".
	KindEnum
	// KindClass holds a fully qualified type name.
	KindClass
	// KindNested holds another annotation.
	KindNested
	// KindArray holds an ordered list of values.
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindClass:
		return "class"
	case KindNested:
		return "nested"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a single annotation attribute value.
type Value struct {
	kind   Kind
	text   string
	b      bool
	i      int64
	f      float64
	nested *Annotation
	array  []*Value
}

func String(s string) *Value { return &Value{kind: KindString, text: s} }

func Bool(b bool) *Value { return &Value{kind: KindBoolean, b: b} }

func Int(i int64) *Value { return &Value{kind: KindInteger, i: i} }

func Float(f float64) *Value { return &Value{kind: KindFloat, f: f} }

func Enum(constant string) *Value { return &Value{kind: KindEnum, text: constant} }

func Class(typeName string) *Value { return &Value{kind: KindClass, text: typeName} }

func Nested(a *Annotation) *Value { return &Value{kind: KindNested, nested: a} }

func Array(values ...*Value) *Value { return &Value{kind: KindArray, array: values} }

// Kind returns the kind of the value. A nil value has kind 0.
func (v *Value) Kind() Kind {
	if v == nil {
		return 0
	}
	return v.kind
}

func (v *Value) mismatch(want Kind) error {
	return ErrKindMismatch.Wrapf("expected %s, got %s", want, v.Kind())
}

// AsString returns the text of a string, enum or class value.
func (v *Value) AsString() (string, error) {
	switch v.Kind() {
	case KindString, KindEnum, KindClass:
		return v.text, nil
	default:
		return "", v.mismatch(KindString)
	}
}

// AsBool returns the value of a boolean.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBoolean {
		return false, v.mismatch(KindBoolean)
	}
	return v.b, nil
}

// AsInt returns an integer value. Strings holding an integer are accepted.
func (v *Value) AsInt() (int64, error) {
	switch v.Kind() {
	case KindInteger:
		return v.i, nil
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.text), 10, 64)
		if err != nil {
			return 0, ErrInvalidNumber.Wrapf("%q", v.text)
		}
		return i, nil
	default:
		return 0, v.mismatch(KindInteger)
	}
}

// AsFloat returns a numeric value as a decimal. Integers and strings holding a number are accepted.
func (v *Value) AsFloat() (float64, error) {
	switch v.Kind() {
	case KindFloat:
		return v.f, nil
	case KindInteger:
		return float64(v.i), nil
	case KindString:
		f, err := yml.ParseDecimal(v.text)
		if err != nil {
			return 0, ErrInvalidNumber.Wrapf("%q", v.text)
		}
		return f, nil
	default:
		return 0, v.mismatch(KindFloat)
	}
}

// AsNested returns the annotation held by a nested value.
func (v *Value) AsNested() (*Annotation, error) {
	if v.Kind() != KindNested {
		return nil, v.mismatch(KindNested)
	}
	return v.nested, nil
}

// AsArray returns the elements of an array value. A single non-array value is treated as a one element array.
func (v *Value) AsArray() []*Value {
	switch v.Kind() {
	case 0:
		return nil
	case KindArray:
		return v.array
	default:
		return []*Value{v}
	}
}

// AsNestedArray returns the annotations held by an array of nested values.
func (v *Value) AsNestedArray() ([]*Annotation, error) {
	items := v.AsArray()
	out := make([]*Annotation, 0, len(items))
	for i, item := range items {
		a, err := item.AsNested()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// AsStringArray returns the text of every element of an array value.
func (v *Value) AsStringArray() ([]string, error) {
	items := v.AsArray()
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := item.AsString()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}
