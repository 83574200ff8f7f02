package oas3

import (
	"github.com/speakeasy-api/schemareader/extensions"
	"github.com/speakeasy-api/schemareader/yml"
	"gopkg.in/yaml.v3"
)

// ExternalDocumentation allows referencing external documentation for the associated object.
type ExternalDocumentation struct {
	// Description is a description of the target documentation. May contain CommonMark syntax.
	Description *string
	// URL is the URL for the target documentation.
	URL string
	// Extensions provides a list of extensions to the ExternalDocumentation object.
	Extensions *extensions.Extensions
}

// GetDescription returns the value of the Description field. Returns an empty string if not set.
func (e *ExternalDocumentation) GetDescription() string {
	if e == nil || e.Description == nil {
		return ""
	}
	return *e.Description
}

// GetURL returns the value of the URL field. Returns an empty string if not set.
func (e *ExternalDocumentation) GetURL() string {
	if e == nil {
		return ""
	}
	return e.URL
}

// AddExtension attaches a vendor extension to the external documentation.
func (e *ExternalDocumentation) AddExtension(key string, value extensions.Extension) {
	if e.Extensions == nil {
		e.Extensions = extensions.New()
	}
	e.Extensions.Set(key, value)
}

// ReadExternalDocs reads an External Documentation object. It returns nil when node is absent or not an object.
func ReadExternalDocs(node *yaml.Node) *ExternalDocumentation {
	node = yml.Unwrap(node)
	if !yml.IsObject(node) {
		return nil
	}

	docs := &ExternalDocumentation{
		Description: yml.GetString(node, "description"),
		Extensions:  extensions.Read(node),
	}
	if url := yml.GetString(node, "url"); url != nil {
		docs.URL = *url
	}

	return docs
}
