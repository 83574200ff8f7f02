package inspect

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/speakeasy-api/schemareader/json"
	"github.com/speakeasy-api/schemareader/jsonschema/oas3"
	"github.com/speakeasy-api/schemareader/values"
)

const indentUnit = "  "

// writeSchema prints an indented, one line per schema summary of s and everything nested in it.
func writeSchema(w io.Writer, label string, s *oas3.Schema, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	if s == nil {
		fmt.Fprintf(w, "%s%s: <absent>\n", indent, label)
		return
	}

	fmt.Fprintf(w, "%s%s: %s\n", indent, label, summarize(s))

	if d := s.GetDiscriminator(); d != nil {
		fmt.Fprintf(w, "%s%sdiscriminator: %s", indent, indentUnit, d.GetPropertyName())
		for value, target := range d.GetMapping().All() {
			fmt.Fprintf(w, " %s=%s", value, target)
		}
		fmt.Fprintln(w)
	}

	for key, value := range s.GetExtensions().All() {
		fmt.Fprintf(w, "%s%s%s: %s\n", indent, indentUnit, key, renderValue(value))
	}

	if s.Items != nil {
		writeSchema(w, "items", s.Items, depth+1)
	}
	if s.Not != nil {
		writeSchema(w, "not", s.Not, depth+1)
	}
	writeSchemaList(w, "allOf", s.AllOf, depth+1)
	writeSchemaList(w, "oneOf", s.OneOf, depth+1)
	writeSchemaList(w, "anyOf", s.AnyOf, depth+1)

	required := s.GetRequired()
	for name, prop := range s.GetProperties().All() {
		propLabel := name
		if slices.Contains(required, name) {
			propLabel += "*"
		}
		writeSchema(w, propLabel, prop, depth+1)
	}

	if ap := s.GetAdditionalProperties(); ap.IsLeft() {
		writeSchema(w, "additionalProperties", ap.GetLeft(), depth+1)
	}
}

func writeSchemaList(w io.Writer, label string, schemas []*oas3.Schema, depth int) {
	for i, s := range schemas {
		writeSchema(w, fmt.Sprintf("%s[%d]", label, i), s, depth)
	}
}

// summarize renders the scalar fields of s that are set, in a stable order.
func summarize(s *oas3.Schema) string {
	parts := []string{}

	switch {
	case s.IsReference():
		parts = append(parts, "$ref "+s.GetRef().String())
	case s.Type != nil:
		parts = append(parts, s.GetType().String())
	default:
		parts = append(parts, "any")
	}

	if s.Format != nil {
		parts = append(parts, "format="+s.GetFormat())
	}
	if s.Title != nil {
		parts = append(parts, "title="+strconv.Quote(s.GetTitle()))
	}

	parts = appendFloat(parts, "multipleOf", s.MultipleOf)
	parts = appendFloat(parts, "minimum", s.Minimum)
	parts = appendBool(parts, "exclusiveMinimum", s.ExclusiveMinimum)
	parts = appendFloat(parts, "maximum", s.Maximum)
	parts = appendBool(parts, "exclusiveMaximum", s.ExclusiveMaximum)
	parts = appendInt(parts, "minLength", s.MinLength)
	parts = appendInt(parts, "maxLength", s.MaxLength)
	if s.Pattern != nil {
		parts = append(parts, "pattern="+strconv.Quote(*s.Pattern))
	}
	parts = appendInt(parts, "minItems", s.MinItems)
	parts = appendInt(parts, "maxItems", s.MaxItems)
	parts = appendBool(parts, "uniqueItems", s.UniqueItems)
	parts = appendInt(parts, "minProperties", s.MinProperties)
	parts = appendInt(parts, "maxProperties", s.MaxProperties)
	parts = appendBool(parts, "nullable", s.Nullable)
	parts = appendBool(parts, "readOnly", s.ReadOnly)
	parts = appendBool(parts, "writeOnly", s.WriteOnly)
	parts = appendBool(parts, "deprecated", s.Deprecated)

	if ap := s.GetAdditionalProperties(); ap.IsRight() {
		parts = append(parts, "additionalProperties="+strconv.FormatBool(ap.RightValue()))
	}
	if len(s.Enum) > 0 {
		enum := make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			enum = append(enum, renderValue(v))
		}
		parts = append(parts, "enum=["+strings.Join(enum, ",")+"]")
	}
	if s.Default != nil {
		parts = append(parts, "default="+renderValue(s.Default))
	}
	if s.Example != nil {
		parts = append(parts, "example="+renderValue(s.Example))
	}
	if s.XML != nil && s.XML.Name != nil {
		parts = append(parts, "xml="+s.XML.GetName())
	}
	if s.ExternalDocs != nil {
		parts = append(parts, "docs="+s.ExternalDocs.GetURL())
	}

	return strings.Join(parts, " ")
}

// renderValue prints v as compact JSON.
func renderValue(v values.Value) string {
	buf := &bytes.Buffer{}
	if err := json.YAMLToJSON(v, 0, buf); err != nil {
		return "<" + err.Error() + ">"
	}
	return strings.TrimSpace(buf.String())
}

func appendFloat(parts []string, name string, v *float64) []string {
	if v == nil {
		return parts
	}
	return append(parts, name+"="+strconv.FormatFloat(*v, 'g', -1, 64))
}

func appendInt(parts []string, name string, v *int64) []string {
	if v == nil {
		return parts
	}
	return append(parts, name+"="+strconv.FormatInt(*v, 10))
}

func appendBool(parts []string, name string, v *bool) []string {
	if v == nil {
		return parts
	}
	return append(parts, name+"="+strconv.FormatBool(*v))
}
