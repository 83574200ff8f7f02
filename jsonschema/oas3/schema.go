// Package oas3 contains the OpenAPI 3.0 Schema object model and the readers that
// build it from document nodes and from annotation metadata.
// https://spec.openapis.org/oas/v3.0.3#schema-object
package oas3

import (
	"github.com/speakeasy-api/schemareader/extensions"
	"github.com/speakeasy-api/schemareader/pointer"
	"github.com/speakeasy-api/schemareader/references"
	"github.com/speakeasy-api/schemareader/sequencedmap"
	"github.com/speakeasy-api/schemareader/values"
)

// AdditionalProperties holds either a nested schema (left) or a boolean flag (right), never both.
type AdditionalProperties = values.EitherValue[Schema, bool]

// NewAdditionalPropertiesFromSchema returns an AdditionalProperties holding a schema.
func NewAdditionalPropertiesFromSchema(schema *Schema) *AdditionalProperties {
	if schema == nil {
		return nil
	}
	return values.NewLeft[Schema, bool](schema)
}

// NewAdditionalPropertiesFromBool returns an AdditionalProperties holding a boolean flag.
func NewAdditionalPropertiesFromBool(allowed bool) *AdditionalProperties {
	return values.NewRight[Schema](pointer.From(allowed))
}

// Schema is an OpenAPI 3.0 Schema object. Every field is optional; nil means the
// field was absent from the source, which is distinct from an explicit false or zero.
type Schema struct {
	// Name is only meaningful when the schema is a named member of a components map.
	Name *string
	Ref  *references.Reference

	Title       *string
	Description *string
	Format      *string
	Type        *SchemaType

	MultipleOf       *float64
	Maximum          *float64
	ExclusiveMaximum *bool
	Minimum          *float64
	ExclusiveMinimum *bool

	MaxLength *int64
	MinLength *int64
	Pattern   *string

	MaxItems      *int64
	MinItems      *int64
	UniqueItems   *bool
	MaxProperties *int64
	MinProperties *int64

	Required []string
	Enum     []values.Value

	Items      *Schema
	Not        *Schema
	AllOf      []*Schema
	OneOf      []*Schema
	AnyOf      []*Schema
	Properties *sequencedmap.Map[string, *Schema]

	AdditionalProperties *AdditionalProperties

	Default    values.Value
	Example    values.Value
	ReadOnly   *bool
	WriteOnly  *bool
	Nullable   *bool
	Deprecated *bool

	XML           *XML
	ExternalDocs  *ExternalDocumentation
	Discriminator *Discriminator
	Extensions    *extensions.Extensions
}

var _ extensions.Extendable = (*Schema)(nil)

// NewSchema returns an empty schema carrying the given name, which may be nil.
func NewSchema(name *string) *Schema {
	return &Schema{Name: name}
}

// AddExtension attaches a vendor extension to the schema.
func (s *Schema) AddExtension(key string, value extensions.Extension) {
	if s.Extensions == nil {
		s.Extensions = extensions.New()
	}
	s.Extensions.Set(key, value)
}

// IsReference returns true if the schema is a reference to another schema.
func (s *Schema) IsReference() bool {
	return s != nil && s.Ref != nil && *s.Ref != ""
}

// GetName returns the value of the Name field. Returns empty string if not set.
func (s *Schema) GetName() string {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Name)
}

// GetRef returns the value of the Ref field. Returns empty string if not set.
func (s *Schema) GetRef() references.Reference {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Ref)
}

// GetType returns the value of the Type field. Returns empty string if not set.
func (s *Schema) GetType() SchemaType {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Type)
}

// GetTitle returns the value of the Title field. Returns empty string if not set.
func (s *Schema) GetTitle() string {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Title)
}

// GetDescription returns the value of the Description field. Returns empty string if not set.
func (s *Schema) GetDescription() string {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Description)
}

// GetFormat returns the value of the Format field. Returns empty string if not set.
func (s *Schema) GetFormat() string {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Format)
}

// GetItems returns the value of the Items field. Returns nil if not set.
func (s *Schema) GetItems() *Schema {
	if s == nil {
		return nil
	}
	return s.Items
}

// GetProperties returns the value of the Properties field. Returns nil if not set.
func (s *Schema) GetProperties() *sequencedmap.Map[string, *Schema] {
	if s == nil {
		return nil
	}
	return s.Properties
}

// GetAdditionalProperties returns the value of the AdditionalProperties field. Returns nil if not set.
func (s *Schema) GetAdditionalProperties() *AdditionalProperties {
	if s == nil {
		return nil
	}
	return s.AdditionalProperties
}

// GetRequired returns the value of the Required field. Returns nil if not set.
func (s *Schema) GetRequired() []string {
	if s == nil {
		return nil
	}
	return s.Required
}

// GetEnum returns the value of the Enum field. Returns nil if not set.
func (s *Schema) GetEnum() []values.Value {
	if s == nil {
		return nil
	}
	return s.Enum
}

// GetDiscriminator returns the value of the Discriminator field. Returns nil if not set.
func (s *Schema) GetDiscriminator() *Discriminator {
	if s == nil {
		return nil
	}
	return s.Discriminator
}

// GetExtensions returns the value of the Extensions field. Returns an empty extensions map if not set.
func (s *Schema) GetExtensions() *extensions.Extensions {
	if s == nil || s.Extensions == nil {
		return extensions.New()
	}
	return s.Extensions
}
