package oas3_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/speakeasy-api/schemareader/internal/testutils"
	"github.com/speakeasy-api/schemareader/jsonschema/oas3"
	"github.com/speakeasy-api/schemareader/sequencedmap"
	"github.com/speakeasy-api/schemareader/values"
	"github.com/speakeasy-api/schemareader/yml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReadSchema_Absent_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *yaml.Node
	}{
		{name: "nil node", node: nil},
		{name: "scalar node", node: testutils.ParseNode(t, `"string"`)},
		{name: "sequence node", node: testutils.ParseNode(t, `[1, 2]`)},
		{name: "null node", node: testutils.ParseNode(t, `null`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := oas3.ReadSchema(t.Context(), tt.node)
			require.NoError(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestReadSchema_Empty_Success(t *testing.T) {
	t.Parallel()

	s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"unknown": 1}`))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, &oas3.Schema{}, s)
}

func TestReadSchema_DocumentNode_Success(t *testing.T) {
	t.Parallel()

	root, err := yml.Parse(bytes.NewBufferString("type: string\n"))
	require.NoError(t, err)
	require.Equal(t, yaml.DocumentNode, root.Kind)

	s, err := oas3.ReadSchema(t.Context(), root)
	require.NoError(t, err)
	assert.Equal(t, oas3.SchemaTypeString, s.GetType())
}

func TestReadSchema_Fields_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `
name: Pet
title: A pet
description: Something that lives with you
format: custom
type: object
multipleOf: 0.5
maximum: 100
exclusiveMaximum: true
minimum: -1.25
exclusiveMinimum: false
maxLength: 10
minLength: 1
pattern: ^[a-z]+$
maxItems: 5
minItems: 0
uniqueItems: true
maxProperties: 3
minProperties: 1
readOnly: true
writeOnly: false
nullable: true
deprecated: false
required: [id, name]
`)

	s, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "Pet", s.GetName())
	assert.Equal(t, "A pet", s.GetTitle())
	assert.Equal(t, "Something that lives with you", s.GetDescription())
	assert.Equal(t, "custom", s.GetFormat())
	assert.Equal(t, oas3.SchemaTypeObject, s.GetType())
	assert.InDelta(t, 0.5, *s.MultipleOf, 0)
	assert.InDelta(t, 100.0, *s.Maximum, 0)
	assert.True(t, *s.ExclusiveMaximum)
	assert.InDelta(t, -1.25, *s.Minimum, 0)
	assert.False(t, *s.ExclusiveMinimum)
	assert.Equal(t, int64(10), *s.MaxLength)
	assert.Equal(t, int64(1), *s.MinLength)
	assert.Equal(t, "^[a-z]+$", *s.Pattern)
	assert.Equal(t, int64(5), *s.MaxItems)
	assert.Equal(t, int64(0), *s.MinItems)
	assert.True(t, *s.UniqueItems)
	assert.Equal(t, int64(3), *s.MaxProperties)
	assert.Equal(t, int64(1), *s.MinProperties)
	assert.True(t, *s.ReadOnly)
	assert.False(t, *s.WriteOnly)
	assert.True(t, *s.Nullable)
	assert.False(t, *s.Deprecated)
	assert.Equal(t, []string{"id", "name"}, s.GetRequired())
}

func TestReadSchema_AbsentFieldsStayNil_Success(t *testing.T) {
	t.Parallel()

	s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"minLength": 0, "nullable": false}`))
	require.NoError(t, err)

	require.NotNil(t, s.MinLength)
	assert.Equal(t, int64(0), *s.MinLength)
	require.NotNil(t, s.Nullable)
	assert.False(t, *s.Nullable)

	assert.Nil(t, s.MaxLength)
	assert.Nil(t, s.ReadOnly)
	assert.Nil(t, s.Type)
	assert.Nil(t, s.Required)
	assert.Nil(t, s.Enum)
	assert.Nil(t, s.Properties)
	assert.Nil(t, s.AdditionalProperties)
	assert.Nil(t, s.Default)
}

func TestReadSchema_Reference_Success(t *testing.T) {
	t.Parallel()

	s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `$ref: "#/components/schemas/Pet"`))
	require.NoError(t, err)

	assert.True(t, s.IsReference())
	assert.Equal(t, "#/components/schemas/Pet", s.GetRef().String())
	assert.Equal(t, "Pet", s.GetRef().Name())
}

func TestReadSchema_Properties_PreservesOrder_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `{"properties": {"b": {"type": "integer"}, "a": {"type": "string"}, "c": {}}}`)

	s, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)

	props := s.GetProperties()
	require.NotNil(t, props)
	assert.Equal(t, []string{"b", "a", "c"}, sequencedmap.KeysSlice(props))
	assert.Equal(t, oas3.SchemaTypeInteger, props.GetOrZero("b").GetType())
	assert.Equal(t, oas3.SchemaTypeString, props.GetOrZero("a").GetType())
	assert.Equal(t, &oas3.Schema{}, props.GetOrZero("c"))
}

func TestReadSchema_Properties_NonObjectIsAbsent_Success(t *testing.T) {
	t.Parallel()

	s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"properties": [1], "allOf": {"type": "string"}, "items": "string"}`))
	require.NoError(t, err)

	assert.Nil(t, s.Properties)
	assert.Nil(t, s.AllOf)
	assert.Nil(t, s.Items)
}

func TestReadSchema_AdditionalProperties_Success(t *testing.T) {
	t.Parallel()

	t.Run("boolean flag", func(t *testing.T) {
		t.Parallel()

		s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"additionalProperties": true}`))
		require.NoError(t, err)

		ap := s.GetAdditionalProperties()
		require.NotNil(t, ap)
		assert.True(t, ap.IsRight())
		assert.False(t, ap.IsLeft())
		assert.True(t, ap.RightValue())
		assert.Nil(t, ap.GetLeft())
	})

	t.Run("false flag", func(t *testing.T) {
		t.Parallel()

		s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"additionalProperties": false}`))
		require.NoError(t, err)

		ap := s.GetAdditionalProperties()
		require.NotNil(t, ap)
		require.True(t, ap.IsRight())
		assert.False(t, ap.RightValue())
	})

	t.Run("nested schema", func(t *testing.T) {
		t.Parallel()

		s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"additionalProperties": {"type": "string"}}`))
		require.NoError(t, err)

		ap := s.GetAdditionalProperties()
		require.NotNil(t, ap)
		assert.True(t, ap.IsLeft())
		assert.False(t, ap.IsRight())
		assert.Nil(t, ap.GetRight())
		assert.Equal(t, oas3.SchemaTypeString, ap.GetLeft().GetType())
	})

	t.Run("empty schema", func(t *testing.T) {
		t.Parallel()

		s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"additionalProperties": {}}`))
		require.NoError(t, err)

		ap := s.GetAdditionalProperties()
		require.NotNil(t, ap)
		assert.True(t, ap.IsLeft())
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"additionalProperties": null}`))
		require.NoError(t, err)
		assert.Nil(t, s.GetAdditionalProperties())
	})
}

func TestReadSchema_AdditionalProperties_Error(t *testing.T) {
	t.Parallel()

	_, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"additionalProperties": "sometimes"}`))
	require.ErrorIs(t, err, oas3.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "additionalProperties")
}

func TestReadSchema_TypeNormalization_Success(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"object", "OBJECT", "Object"} {
		s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"type": "`+name+`"}`))
		require.NoError(t, err, name)
		assert.Equal(t, oas3.SchemaTypeObject, s.GetType(), name)
	}

	_, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"type": " object "}`))
	require.ErrorIs(t, err, oas3.ErrUnknownSchemaType)
}

func TestReadSchema_NonTextualType_Success(t *testing.T) {
	t.Parallel()

	s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"type": 5}`))
	require.NoError(t, err)
	assert.Nil(t, s.Type)

	s, err = oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"type": ["string", "null"]}`))
	require.NoError(t, err)
	assert.Nil(t, s.Type)
}

func TestReadSchema_UnknownType_Error(t *testing.T) {
	t.Parallel()

	_, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `
properties:
  id:
    type: uuid
`))
	require.ErrorIs(t, err, oas3.ErrUnknownSchemaType)

	var nodeErr *yml.NodeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, 4, nodeErr.Line)
	assert.Contains(t, err.Error(), "properties: id:")
}

func TestReadSchema_MalformedScalar_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "integer", doc: `{"minLength": "not-a-number"}`},
		{name: "decimal", doc: `{"maximum": "ten"}`},
		{name: "not a number", doc: `{"minimum": "NaN"}`},
		{name: "infinity", doc: `{"maximum": "Infinity"}`},
		{name: "yaml infinity", doc: "maximum: .inf"},
		{name: "hex float", doc: `{"multipleOf": "0x1p-2"}`},
		{name: "decimal out of range", doc: `{"minimum": 1e400}`},
		{name: "boolean", doc: `{"nullable": "maybe"}`},
		{name: "nested integer", doc: `{"items": {"maxItems": 1.5}}`},
		{name: "object for scalar", doc: `{"uniqueItems": {"a": true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, tt.doc))
			require.ErrorIs(t, err, oas3.ErrInvalidFormat)
			assert.Nil(t, s)
		})
	}
}

func TestReadSchema_NestedItems_Success(t *testing.T) {
	t.Parallel()

	s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"type": "array", "items": {"type": "array", "items": {"type": "string"}}}`))
	require.NoError(t, err)

	outer := s.GetItems()
	require.NotNil(t, outer)
	assert.Equal(t, oas3.SchemaTypeArray, outer.GetType())

	inner := outer.GetItems()
	require.NotNil(t, inner)
	assert.Equal(t, oas3.SchemaTypeString, inner.GetType())
	assert.Nil(t, inner.GetItems())
}

func TestReadSchema_Composition_PreservesOrder_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `
allOf:
  - $ref: "#/components/schemas/A"
  - $ref: "#/components/schemas/B"
oneOf:
  - type: string
  - type: integer
  - type: boolean
anyOf:
  - type: number
not:
  type: object
`)

	s, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)

	require.Len(t, s.AllOf, 2)
	assert.Equal(t, "A", s.AllOf[0].GetRef().Name())
	assert.Equal(t, "B", s.AllOf[1].GetRef().Name())

	require.Len(t, s.OneOf, 3)
	assert.Equal(t, oas3.SchemaTypeString, s.OneOf[0].GetType())
	assert.Equal(t, oas3.SchemaTypeInteger, s.OneOf[1].GetType())
	assert.Equal(t, oas3.SchemaTypeBoolean, s.OneOf[2].GetType())

	require.Len(t, s.AnyOf, 1)
	assert.Equal(t, oas3.SchemaTypeNumber, s.AnyOf[0].GetType())

	assert.Equal(t, oas3.SchemaTypeObject, s.Not.GetType())
}

func TestReadSchema_CompositionElementError_Error(t *testing.T) {
	t.Parallel()

	_, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"oneOf": [{"type": "string"}, {"minItems": "x"}]}`))
	require.ErrorIs(t, err, oas3.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "oneOf: [1]:")
}

func TestReadSchema_OpaqueValues_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `
default: {"b": 1, "a": [true, null]}
example: hello
enum: [1, "two", {"three": 3}, null]
`)

	s, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)

	def, err := values.Interface(s.Default)
	require.NoError(t, err)
	defMap, ok := def.(*sequencedmap.Map[string, any])
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, sequencedmap.KeysSlice(defMap))
	assert.Equal(t, 1, defMap.GetOrZero("b"))
	assert.Equal(t, []any{true, nil}, defMap.GetOrZero("a"))

	example, err := values.Interface(s.Example)
	require.NoError(t, err)
	assert.Equal(t, "hello", example)

	require.Len(t, s.Enum, 4)
	first, err := values.Interface(s.Enum[0])
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, yaml.MappingNode, s.Enum[2].Kind)
	assert.True(t, yml.IsNull(s.Enum[3]))
}

func TestReadSchema_OpaqueValuesAreCopies_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `{"default": {"a": 1}}`)

	s, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)

	source := yml.Get(node, "default")
	assert.NotSame(t, source, s.Default)

	source.Content[1].Value = "2"
	v, err := values.Interface(s.Default)
	require.NoError(t, err)
	assert.Equal(t, 1, v.(*sequencedmap.Map[string, any]).GetOrZero("a"))
}

func TestReadSchema_ExplicitNullDefault_Success(t *testing.T) {
	t.Parallel()

	s, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"default": null}`))
	require.NoError(t, err)

	require.NotNil(t, s.Default)
	assert.True(t, yml.IsNull(s.Default))
}

func TestReadSchema_SubObjects_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `
discriminator:
  propertyName: petType
  mapping:
    dog: "#/components/schemas/Dog"
    cat: Cat
xml:
  name: animal
  wrapped: true
externalDocs:
  description: More
  url: https://example.com/docs
  x-audience: public
`)

	s, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)

	d := s.GetDiscriminator()
	require.NotNil(t, d)
	assert.Equal(t, "petType", d.GetPropertyName())
	assert.Equal(t, []string{"dog", "cat"}, sequencedmap.KeysSlice(d.GetMapping()))
	assert.Equal(t, "Cat", d.GetMapping().GetOrZero("cat"))

	require.NotNil(t, s.XML)
	assert.Equal(t, "animal", s.XML.GetName())
	assert.True(t, s.XML.GetWrapped())

	require.NotNil(t, s.ExternalDocs)
	assert.Equal(t, "More", s.ExternalDocs.GetDescription())
	assert.Equal(t, "https://example.com/docs", s.ExternalDocs.GetURL())
	audience, ok := s.ExternalDocs.Extensions.GetString("x-audience")
	require.True(t, ok)
	assert.Equal(t, "public", audience)
}

func TestReadSchema_SubObjects_Error(t *testing.T) {
	t.Parallel()

	_, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"discriminator": {"propertyName": "kind", "mapping": {"a": [1]}}}`))
	require.ErrorIs(t, err, oas3.ErrInvalidFormat)

	_, err = oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"xml": {"attribute": "often"}}`))
	require.ErrorIs(t, err, oas3.ErrInvalidFormat)
}

func TestReadSchema_Extensions_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `
type: string
x-speakeasy-name: petName
description: not an extension
x-order: [2, 1]
`)

	s, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)

	ext := s.GetExtensions()
	assert.Equal(t, []string{"x-speakeasy-name", "x-order"}, sequencedmap.KeysSlice(ext.Map))

	name, ok := ext.GetString("x-speakeasy-name")
	require.True(t, ok)
	assert.Equal(t, "petName", name)

	order, ok := ext.Get("x-order")
	require.True(t, ok)
	assert.Equal(t, yaml.SequenceNode, order.Kind)
}

func TestReadSchema_AliasesAndMergeKeys_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `
base: &base
  type: string
  maxLength: 5
schema:
  properties:
    first: *base
    second:
      <<: *base
      minLength: 1
    third:
      <<: *base
      type: integer
      maxLength: 9
`)

	s, err := oas3.ReadSchema(t.Context(), yml.Get(node, "schema"))
	require.NoError(t, err)

	first := s.GetProperties().GetOrZero("first")
	assert.Equal(t, oas3.SchemaTypeString, first.GetType())
	assert.Equal(t, int64(5), *first.MaxLength)

	second := s.GetProperties().GetOrZero("second")
	assert.Equal(t, oas3.SchemaTypeString, second.GetType())
	assert.Equal(t, int64(5), *second.MaxLength)
	assert.Equal(t, int64(1), *second.MinLength)

	third := s.GetProperties().GetOrZero("third")
	assert.Equal(t, oas3.SchemaTypeInteger, third.GetType())
	assert.Equal(t, int64(9), *third.MaxLength)
}

func TestReadSchema_FreshTreePerCall_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `{"properties": {"a": {"type": "string"}}}`)

	first, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)
	second, err := oas3.ReadSchema(t.Context(), node)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first.GetProperties().GetOrZero("a"), second.GetProperties().GetOrZero("a"))
}

func TestReadSchema_MaxDepth_Error(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `{"items": {"items": {"items": {"type": "string"}}}}`)

	_, err := oas3.ReadSchema(t.Context(), node, oas3.WithMaxDepth(2))
	require.ErrorIs(t, err, oas3.ErrMaxDepthExceeded)

	s, err := oas3.ReadSchema(t.Context(), node, oas3.WithMaxDepth(3))
	require.NoError(t, err)
	assert.Equal(t, oas3.SchemaTypeString, s.GetItems().GetItems().GetItems().GetType())

	_, err = oas3.ReadSchema(t.Context(), node, oas3.WithMaxDepth(0))
	require.NoError(t, err)
}

func TestReadSchema_Logger_Success(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := oas3.ReadSchema(t.Context(), testutils.ParseNode(t, `{"items": {"type": "string"}}`), oas3.WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "processing a schema from node")
	assert.Contains(t, buf.String(), "depth=1")
}

func TestReadSchemaArray_Success(t *testing.T) {
	t.Parallel()

	schemas, err := oas3.ReadSchemaArray(t.Context(), testutils.ParseNode(t, `[{"type": "string"}, {}, {"type": "integer"}]`))
	require.NoError(t, err)
	require.Len(t, schemas, 3)
	assert.Equal(t, oas3.SchemaTypeString, schemas[0].GetType())
	assert.Equal(t, &oas3.Schema{}, schemas[1])
	assert.Equal(t, oas3.SchemaTypeInteger, schemas[2].GetType())

	schemas, err = oas3.ReadSchemaArray(t.Context(), testutils.ParseNode(t, `{"type": "string"}`))
	require.NoError(t, err)
	assert.Nil(t, schemas)

	schemas, err = oas3.ReadSchemaArray(t.Context(), nil)
	require.NoError(t, err)
	assert.Nil(t, schemas)
}

func TestReadSchemaArray_Error(t *testing.T) {
	t.Parallel()

	_, err := oas3.ReadSchemaArray(t.Context(), testutils.ParseNode(t, `[{"type": "string"}, {"type": "text"}]`))
	require.ErrorIs(t, err, oas3.ErrUnknownSchemaType)
	assert.Contains(t, err.Error(), "[1]:")
}

func TestReadSchemas_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `
Pet:
  type: object
  properties:
    name: {type: string}
Error:
  type: object
Id:
  type: string
  format: uuid
Any: {}
`)

	schemas, err := oas3.ReadSchemas(t.Context(), node)
	require.NoError(t, err)
	require.NotNil(t, schemas)

	assert.Equal(t, []string{"Pet", "Error", "Id", "Any"}, sequencedmap.KeysSlice(schemas))
	assert.Equal(t, "uuid", schemas.GetOrZero("Id").GetFormat())
	assert.Equal(t, oas3.SchemaTypeString, schemas.GetOrZero("Pet").GetProperties().GetOrZero("name").GetType())
	assert.Equal(t, &oas3.Schema{}, schemas.GetOrZero("Any"))
}

func TestReadSchemas_NonObject_Success(t *testing.T) {
	t.Parallel()

	schemas, err := oas3.ReadSchemas(t.Context(), testutils.ParseNode(t, `[1]`))
	require.NoError(t, err)
	assert.Nil(t, schemas)

	schemas, err = oas3.ReadSchemas(t.Context(), nil)
	require.NoError(t, err)
	assert.Nil(t, schemas)
}

func TestReadSchemas_EntryNotObject_Success(t *testing.T) {
	t.Parallel()

	schemas, err := oas3.ReadSchemas(t.Context(), testutils.ParseNode(t, `{"Pet": {"type": "object"}, "Broken": 1}`))
	require.NoError(t, err)

	require.Equal(t, 2, schemas.Len())
	assert.True(t, schemas.Has("Broken"))
	assert.Nil(t, schemas.GetOrZero("Broken"))
}

func TestReadSchemas_Error(t *testing.T) {
	t.Parallel()

	_, err := oas3.ReadSchemas(t.Context(), testutils.ParseNode(t, `{"Pet": {"type": "object"}, "Bad": {"maxLength": "long"}}`))
	require.ErrorIs(t, err, oas3.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "schema Bad:")
}
