package oas3

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/speakeasy-api/schemareader/extensions"
	"github.com/speakeasy-api/schemareader/references"
	"github.com/speakeasy-api/schemareader/sequencedmap"
	"github.com/speakeasy-api/schemareader/values"
	"github.com/speakeasy-api/schemareader/yml"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ReadSchema reads a Schema object from node. It returns nil when node is absent or
// is not an object. Malformed scalars and unknown type names abort the read.
//
// Nested schemas are read recursively, so the call stack grows with the nesting
// depth of the document; use WithMaxDepth to bound it for untrusted input.
func ReadSchema(ctx context.Context, node *yaml.Node, opts ...Option) (*Schema, error) {
	r := newReader(opts...)

	if err := r.validate(node); err != nil {
		return nil, err
	}

	return r.readSchema(ctx, node, 0)
}

// ReadSchemaArray reads a sequence of Schema objects. It returns nil when node is
// absent or not a sequence. A failure reading any element fails the whole read.
func ReadSchemaArray(ctx context.Context, node *yaml.Node, opts ...Option) ([]*Schema, error) {
	r := newReader(opts...)

	for item := range yml.Elements(node) {
		if err := r.validate(item); err != nil {
			return nil, err
		}
	}

	return r.readSchemaArray(ctx, node, 0)
}

// ReadSchemas reads an object whose fields are Schema objects, such as a components
// schemas map, keyed by field name in document order. It returns nil when node is
// absent or not an object. Entries are read concurrently.
func ReadSchemas(ctx context.Context, node *yaml.Node, opts ...Option) (*sequencedmap.Map[string, *Schema], error) {
	r := newReader(opts...)

	node = yml.Unwrap(node)
	if !yml.IsObject(node) {
		return nil, nil
	}

	type entry struct {
		name string
		node *yaml.Node
	}

	entries := []entry{}
	for name, child := range yml.Fields(node) {
		entries = append(entries, entry{name: name, node: child})
	}

	r.logger.DebugContext(ctx, "processing a map of schemas", slog.Int("count", len(entries)))

	results := make([]*Schema, len(entries))

	g, ctx := errgroup.WithContext(ctx)

	for i, e := range entries {
		g.Go(func() error {
			if err := r.validate(e.node); err != nil {
				return fmt.Errorf("schema %s: %w", e.name, err)
			}

			schema, err := r.readSchema(ctx, e.node, 0)
			if err != nil {
				return fmt.Errorf("schema %s: %w", e.name, err)
			}
			results[i] = schema
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	schemas := sequencedmap.NewWithCapacity[string, *Schema](len(entries))
	for i, e := range entries {
		schemas.Set(e.name, results[i])
	}

	return schemas, nil
}

type reader struct {
	*options
}

func newReader(opts ...Option) *reader {
	return &reader{options: newOptions(opts...)}
}

func (r *reader) validate(node *yaml.Node) error {
	if !r.strict {
		return nil
	}
	return validateSchemaNode(node)
}

func (r *reader) readSchema(ctx context.Context, node *yaml.Node, depth int) (*Schema, error) {
	node = yml.Unwrap(node)
	if !yml.IsObject(node) {
		return nil, nil
	}

	if r.maxDepth > 0 && depth > r.maxDepth {
		return nil, yml.NewNodeError(node, ErrMaxDepthExceeded.Wrapf("limit is %d", r.maxDepth))
	}

	r.logger.DebugContext(ctx, "processing a schema from node", slog.Int("line", node.Line), slog.Int("depth", depth))

	s := NewSchema(yml.GetString(node, PropName))

	f := &fieldReader{node: node}

	if ref := f.string(PropRef); ref != nil {
		s.Ref = (*references.Reference)(ref)
	}
	s.Format = f.string(PropFormat)
	s.Title = f.string(PropTitle)
	s.Description = f.string(PropDescription)
	s.MultipleOf = f.float(PropMultipleOf)
	s.Maximum = f.float(PropMaximum)
	s.ExclusiveMaximum = f.bool(PropExclusiveMaximum)
	s.Minimum = f.float(PropMinimum)
	s.ExclusiveMinimum = f.bool(PropExclusiveMinimum)
	s.MaxLength = f.int(PropMaxLength)
	s.MinLength = f.int(PropMinLength)
	s.Pattern = f.string(PropPattern)
	s.MaxItems = f.int(PropMaxItems)
	s.MinItems = f.int(PropMinItems)
	s.UniqueItems = f.bool(PropUniqueItems)
	s.MaxProperties = f.int(PropMaxProperties)
	s.MinProperties = f.int(PropMinProperties)
	s.ReadOnly = f.bool(PropReadOnly)
	s.WriteOnly = f.bool(PropWriteOnly)
	s.Nullable = f.bool(PropNullable)
	s.Deprecated = f.bool(PropDeprecated)
	if f.err != nil {
		return nil, f.err
	}

	schemaType, err := readSchemaType(yml.Get(node, PropType))
	if err != nil {
		return nil, err
	}
	s.Type = schemaType

	s.Required = yml.GetStringSlice(node, PropRequired)
	s.Enum = readValueArray(yml.Get(node, PropEnum))
	s.Default = values.Clone(yml.Get(node, PropDefault))
	s.Example = values.Clone(yml.Get(node, PropExample))

	if s.Items, err = r.readSchema(ctx, yml.Get(node, PropItems), depth+1); err != nil {
		return nil, fmt.Errorf("%s: %w", PropItems, err)
	}
	if s.Not, err = r.readSchema(ctx, yml.Get(node, PropNot), depth+1); err != nil {
		return nil, fmt.Errorf("%s: %w", PropNot, err)
	}
	if s.AllOf, err = r.readSchemaArray(ctx, yml.Get(node, PropAllOf), depth+1); err != nil {
		return nil, fmt.Errorf("%s: %w", PropAllOf, err)
	}
	if s.OneOf, err = r.readSchemaArray(ctx, yml.Get(node, PropOneOf), depth+1); err != nil {
		return nil, fmt.Errorf("%s: %w", PropOneOf, err)
	}
	if s.AnyOf, err = r.readSchemaArray(ctx, yml.Get(node, PropAnyOf), depth+1); err != nil {
		return nil, fmt.Errorf("%s: %w", PropAnyOf, err)
	}
	if s.Properties, err = r.readSchemaMap(ctx, yml.Get(node, PropProperties), depth+1); err != nil {
		return nil, fmt.Errorf("%s: %w", PropProperties, err)
	}
	if s.AdditionalProperties, err = r.readAdditionalProperties(ctx, node, depth+1); err != nil {
		return nil, fmt.Errorf("%s: %w", PropAdditionalProperties, err)
	}

	if s.XML, err = ReadXML(yml.Get(node, PropXML)); err != nil {
		return nil, fmt.Errorf("%s: %w", PropXML, err)
	}
	s.ExternalDocs = ReadExternalDocs(yml.Get(node, PropExternalDocs))
	if s.Discriminator, err = ReadDiscriminator(yml.Get(node, PropDiscriminator)); err != nil {
		return nil, fmt.Errorf("%s: %w", PropDiscriminator, err)
	}

	extensions.ReadInto(node, s)

	return s, nil
}

func (r *reader) readSchemaArray(ctx context.Context, node *yaml.Node, depth int) ([]*Schema, error) {
	if !yml.IsArray(node) {
		return nil, nil
	}

	schemas := []*Schema{}
	i := 0
	for item := range yml.Elements(node) {
		schema, err := r.readSchema(ctx, item, depth)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		schemas = append(schemas, schema)
		i++
	}

	return schemas, nil
}

func (r *reader) readSchemaMap(ctx context.Context, node *yaml.Node, depth int) (*sequencedmap.Map[string, *Schema], error) {
	if !yml.IsObject(node) {
		return nil, nil
	}

	schemas := sequencedmap.New[string, *Schema]()
	for name, child := range yml.Fields(node) {
		schema, err := r.readSchema(ctx, child, depth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		schemas.Set(name, schema)
	}

	return schemas, nil
}

// readAdditionalProperties reads an object as a nested schema and anything else as a boolean flag.
func (r *reader) readAdditionalProperties(ctx context.Context, node *yaml.Node, depth int) (*AdditionalProperties, error) {
	child := yml.Get(node, PropAdditionalProperties)

	if yml.IsObject(child) {
		schema, err := r.readSchema(ctx, child, depth)
		if err != nil {
			return nil, err
		}
		return NewAdditionalPropertiesFromSchema(schema), nil
	}

	allowed, err := yml.GetBool(node, PropAdditionalProperties)
	if err != nil || allowed == nil {
		return nil, err
	}

	return NewAdditionalPropertiesFromBool(*allowed), nil
}

// readSchemaType reads a textual type name. Non-textual values are treated as absent.
func readSchemaType(node *yaml.Node) (*SchemaType, error) {
	if !yml.IsTextual(node) {
		return nil, nil
	}

	t, err := ParseSchemaType(node.Value)
	if err != nil {
		return nil, yml.NewNodeError(node, err)
	}

	return &t, nil
}

func readValueArray(node *yaml.Node) []values.Value {
	if !yml.IsArray(node) {
		return nil
	}

	out := []values.Value{}
	for item := range yml.Elements(node) {
		out = append(out, values.Clone(item))
	}

	return out
}

// fieldReader extracts typed scalar fields from a mapping node, keeping the first error.
type fieldReader struct {
	node *yaml.Node
	err  error
}

func (f *fieldReader) string(key string) *string {
	if f.err != nil {
		return nil
	}
	return yml.GetString(f.node, key)
}

func (f *fieldReader) float(key string) *float64 {
	if f.err != nil {
		return nil
	}
	v, err := yml.GetFloat(f.node, key)
	f.err = err
	return v
}

func (f *fieldReader) int(key string) *int64 {
	if f.err != nil {
		return nil
	}
	v, err := yml.GetInt(f.node, key)
	f.err = err
	return v
}

func (f *fieldReader) bool(key string) *bool {
	if f.err != nil {
		return nil
	}
	v, err := yml.GetBool(f.node, key)
	f.err = err
	return v
}
