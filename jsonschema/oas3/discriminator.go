package oas3

import (
	"github.com/speakeasy-api/schemareader/extensions"
	"github.com/speakeasy-api/schemareader/sequencedmap"
	"github.com/speakeasy-api/schemareader/yml"
	"gopkg.in/yaml.v3"
)

// Discriminator is used to aid in serialization, deserialization, and validation of the oneOf, anyOf and allOf schemas.
type Discriminator struct {
	// PropertyName is the name of the property in the payload that will hold the discriminator value.
	PropertyName string
	// Mapping is an object to hold mappings between payload values and schema names or references.
	Mapping *sequencedmap.Map[string, string]
	// Extensions provides a list of extensions to the Discriminator object.
	Extensions *extensions.Extensions
}

// GetPropertyName returns the value of the PropertyName field. Returns empty string if not set.
func (d *Discriminator) GetPropertyName() string {
	if d == nil {
		return ""
	}
	return d.PropertyName
}

// GetMapping returns the value of the Mapping field. Returns nil if not set.
func (d *Discriminator) GetMapping() *sequencedmap.Map[string, string] {
	if d == nil {
		return nil
	}
	return d.Mapping
}

// ReadDiscriminator reads a Discriminator object. It returns nil when node is absent or not an object.
func ReadDiscriminator(node *yaml.Node) (*Discriminator, error) {
	node = yml.Unwrap(node)
	if !yml.IsObject(node) {
		return nil, nil
	}

	d := &Discriminator{
		Extensions: extensions.Read(node),
	}

	if name := yml.GetString(node, "propertyName"); name != nil {
		d.PropertyName = *name
	}

	if mapping := yml.Get(node, "mapping"); yml.IsObject(mapping) {
		d.Mapping = sequencedmap.New[string, string]()
		for key, value := range yml.Fields(mapping) {
			if value == nil || value.Kind != yaml.ScalarNode {
				return nil, yml.NewNodeError(value, ErrInvalidFormat.Wrapf("mapping.%s: expected a string", key))
			}
			d.Mapping.Set(key, value.Value)
		}
	}

	return d, nil
}
