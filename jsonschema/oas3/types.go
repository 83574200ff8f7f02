package oas3

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SchemaType is the canonical name of an OpenAPI 3.0 schema type.
type SchemaType string

const (
	SchemaTypeArray   SchemaType = "array"
	SchemaTypeBoolean SchemaType = "boolean"
	SchemaTypeInteger SchemaType = "integer"
	SchemaTypeNumber  SchemaType = "number"
	SchemaTypeObject  SchemaType = "object"
	SchemaTypeString  SchemaType = "string"
)

// SchemaTypes lists every SchemaType in declaration order.
var SchemaTypes = []SchemaType{
	SchemaTypeObject,
	SchemaTypeArray,
	SchemaTypeString,
	SchemaTypeNumber,
	SchemaTypeInteger,
	SchemaTypeBoolean,
}

// ParseSchemaType matches name case-insensitively against the known schema types.
// Names are compared after uppercasing, so "OBJECT", "Object" and "object" are the same type.
// Surrounding whitespace is not trimmed.
func ParseSchemaType(name string) (SchemaType, error) {
	upper := cases.Upper(language.Und).String(name)

	for _, t := range SchemaTypes {
		if strings.ToUpper(string(t)) == upper {
			return t, nil
		}
	}

	return "", ErrUnknownSchemaType.Wrapf("%q", name)
}

func (t SchemaType) String() string {
	return string(t)
}
