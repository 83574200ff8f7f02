package oas3

import (
	"github.com/speakeasy-api/schemareader/errors"
	"github.com/speakeasy-api/schemareader/yml"
)

const (
	// ErrInvalidFormat is returned when a field holds a value that cannot be coerced to its type.
	ErrInvalidFormat = yml.ErrInvalidFormat
	// ErrUnknownSchemaType is returned for a type name outside the known set.
	ErrUnknownSchemaType = errors.Error("unknown schema type")
	// ErrMaxDepthExceeded is returned when schemas nest deeper than the configured limit.
	ErrMaxDepthExceeded = errors.Error("schema nesting exceeds maximum depth")
	// ErrSchemaInvalid is returned by strict reads when a node fails meta-schema validation.
	ErrSchemaInvalid = errors.Error("schema failed validation")
)

// Field names of the Schema object in documents.
const (
	PropName                 = "name"
	PropRef                  = "$ref"
	PropFormat               = "format"
	PropTitle                = "title"
	PropDescription          = "description"
	PropDefault              = "default"
	PropMultipleOf           = "multipleOf"
	PropMaximum              = "maximum"
	PropExclusiveMaximum     = "exclusiveMaximum"
	PropMinimum              = "minimum"
	PropExclusiveMinimum     = "exclusiveMinimum"
	PropMaxLength            = "maxLength"
	PropMinLength            = "minLength"
	PropPattern              = "pattern"
	PropMaxItems             = "maxItems"
	PropMinItems             = "minItems"
	PropUniqueItems          = "uniqueItems"
	PropMaxProperties        = "maxProperties"
	PropMinProperties        = "minProperties"
	PropRequired             = "required"
	PropEnum                 = "enum"
	PropType                 = "type"
	PropItems                = "items"
	PropNot                  = "not"
	PropAllOf                = "allOf"
	PropOneOf                = "oneOf"
	PropAnyOf                = "anyOf"
	PropProperties           = "properties"
	PropAdditionalProperties = "additionalProperties"
	PropReadOnly             = "readOnly"
	PropWriteOnly            = "writeOnly"
	PropNullable             = "nullable"
	PropDeprecated           = "deprecated"
	PropXML                  = "xml"
	PropExternalDocs         = "externalDocs"
	PropExample              = "example"
	PropDiscriminator        = "discriminator"
)

// Field names of the Schema annotation.
const (
	AnnotationSchema                = "Schema"
	AnnotationExtension             = "Extension"
	AnnotationDiscriminatorMapping  = "DiscriminatorMapping"
	AnnotationExternalDocumentation = "ExternalDocumentation"

	AttrName                  = "name"
	AttrRef                   = "ref"
	AttrTitle                 = "title"
	AttrDescription           = "description"
	AttrFormat                = "format"
	AttrType                  = "type"
	AttrMultipleOf            = "multipleOf"
	AttrMaximum               = "maximum"
	AttrMinimum               = "minimum"
	AttrExclusiveMaximum      = "exclusiveMaximum"
	AttrExclusiveMinimum      = "exclusiveMinimum"
	AttrMaxLength             = "maxLength"
	AttrMinLength             = "minLength"
	AttrPattern               = "pattern"
	AttrMaxItems              = "maxItems"
	AttrMinItems              = "minItems"
	AttrUniqueItems           = "uniqueItems"
	AttrMaxProperties         = "maxProperties"
	AttrMinProperties         = "minProperties"
	AttrRequiredProperties    = "requiredProperties"
	AttrEnumeration           = "enumeration"
	AttrDefaultValue          = "defaultValue"
	AttrExample               = "example"
	AttrNullable              = "nullable"
	AttrReadOnly              = "readOnly"
	AttrWriteOnly             = "writeOnly"
	AttrDeprecated            = "deprecated"
	AttrHidden                = "hidden"
	AttrNot                   = "not"
	AttrAllOf                 = "allOf"
	AttrOneOf                 = "oneOf"
	AttrAnyOf                 = "anyOf"
	AttrItems                 = "items"
	AttrImplementation        = "implementation"
	AttrProperties            = "properties"
	AttrAdditionalProperties  = "additionalProperties"
	AttrDiscriminatorProperty = "discriminatorProperty"
	AttrDiscriminatorMapping  = "discriminatorMapping"
	AttrExternalDocs          = "externalDocs"
	AttrExtensions            = "extensions"
	AttrValue                 = "value"
	AttrSchema                = "schema"
	AttrParseValue            = "parseValue"
	AttrURL                   = "url"

	// schemaTypeDefault is the annotation type constant meaning "not set".
	schemaTypeDefault = "DEFAULT"
)
