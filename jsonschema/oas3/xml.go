package oas3

import (
	"github.com/speakeasy-api/schemareader/extensions"
	"github.com/speakeasy-api/schemareader/yml"
	"gopkg.in/yaml.v3"
)

// XML represents the metadata of a schema describing a XML element.
type XML struct {
	// Name replaces the name of the element/attribute used for the described schema property.
	Name *string
	// Namespace defines a URI of the namespace definition.
	Namespace *string
	// Prefix to be used for the name.
	Prefix *string
	// Attribute determines whether the property definition creates an attribute.
	Attribute *bool
	// Wrapped determines whether the property definition is wrapped.
	Wrapped *bool
	// Extensions provides a list of extensions to the XML object.
	Extensions *extensions.Extensions
}

// GetName returns the value of the Name field. Returns empty string if not set.
func (x *XML) GetName() string {
	if x == nil || x.Name == nil {
		return ""
	}
	return *x.Name
}

// GetAttribute returns the value of the Attribute field. Returns false if not set.
func (x *XML) GetAttribute() bool {
	if x == nil || x.Attribute == nil {
		return false
	}
	return *x.Attribute
}

// GetWrapped returns the value of the Wrapped field. Returns false if not set.
func (x *XML) GetWrapped() bool {
	if x == nil || x.Wrapped == nil {
		return false
	}
	return *x.Wrapped
}

// ReadXML reads an XML object. It returns nil when node is absent or not an object.
func ReadXML(node *yaml.Node) (*XML, error) {
	node = yml.Unwrap(node)
	if !yml.IsObject(node) {
		return nil, nil
	}

	attribute, err := yml.GetBool(node, "attribute")
	if err != nil {
		return nil, err
	}
	wrapped, err := yml.GetBool(node, "wrapped")
	if err != nil {
		return nil, err
	}

	return &XML{
		Name:       yml.GetString(node, "name"),
		Namespace:  yml.GetString(node, "namespace"),
		Prefix:     yml.GetString(node, "prefix"),
		Attribute:  attribute,
		Wrapped:    wrapped,
		Extensions: extensions.Read(node),
	}, nil
}
