package oas3

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/speakeasy-api/schemareader/annotation"
	"github.com/speakeasy-api/schemareader/extensions"
	"github.com/speakeasy-api/schemareader/references"
	"github.com/speakeasy-api/schemareader/sequencedmap"
	"github.com/speakeasy-api/schemareader/values"
	"github.com/speakeasy-api/schemareader/yml"
	"gopkg.in/yaml.v3"
)

// ReadSchemaAnnotations reads an array of Schema annotations into a map keyed by schema name,
// in declaration order. An entry without a name attribute is keyed by the last segment of its
// ref; entries with neither are skipped. An explicitly empty name is kept as the key "".
// A nil value yields a nil map.
func ReadSchemaAnnotations(ctx context.Context, idx annotation.Index, value *annotation.Value, opts ...Option) (*sequencedmap.Map[string, *Schema], error) {
	if value == nil {
		return nil, nil
	}

	r := newAnnotationReader(idx, opts...)
	return r.readNamedSchemas(ctx, value, 0)
}

// ReadSchemaAnnotation reads a single Schema annotation. Attributes that name a type, such as
// items or implementation, are resolved through idx. A nil annotation or one marked hidden yields nil.
func ReadSchemaAnnotation(ctx context.Context, idx annotation.Index, a *annotation.Annotation, opts ...Option) (*Schema, error) {
	if a == nil {
		return nil, nil
	}

	r := newAnnotationReader(idx, opts...)
	return r.readSchema(ctx, a, 0)
}

type annotationReader struct {
	*options
	idx annotation.Index
	// visiting holds the types whose schema is being read, to stop self-referencing types.
	visiting map[string]bool
}

func newAnnotationReader(idx annotation.Index, opts ...Option) *annotationReader {
	if idx == nil {
		idx = annotation.MapIndex{}
	}
	return &annotationReader{
		options:  newOptions(opts...),
		idx:      idx,
		visiting: map[string]bool{},
	}
}

func (r *annotationReader) readNamedSchemas(ctx context.Context, value *annotation.Value, depth int) (*sequencedmap.Map[string, *Schema], error) {
	entries, err := value.AsNestedArray()
	if err != nil {
		return nil, ErrInvalidFormat.Wrap(err)
	}

	r.logger.DebugContext(ctx, "processing a map of schema annotations", slog.Int("count", len(entries)))

	schemas := sequencedmap.NewWithCapacity[string, *Schema](len(entries))
	for i, entry := range entries {
		name, ok := entry.StringValue(AttrName)
		if !ok {
			name = entry.NameFromRef()
			if name == "" {
				r.logger.DebugContext(ctx, "skipping schema annotation without a name or ref", slog.Int("index", i), slog.String("target", entry.Target))
				continue
			}
		}

		schema, err := r.readSchema(ctx, entry, depth)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		schemas.Set(name, schema)
	}

	return schemas, nil
}

func (r *annotationReader) readSchema(ctx context.Context, a *annotation.Annotation, depth int) (*Schema, error) {
	if a == nil {
		return nil, nil
	}

	if r.maxDepth > 0 && depth > r.maxDepth {
		return nil, ErrMaxDepthExceeded.Wrapf("limit is %d at %s", r.maxDepth, a.Target)
	}

	f := &attrReader{a: a}

	if hidden := f.bool(AttrHidden); hidden != nil && *hidden {
		return nil, nil
	}

	r.logger.DebugContext(ctx, "processing a schema from annotation", slog.String("target", a.Target), slog.Int("depth", depth))

	s := NewSchema(nil)
	if impl := a.Value(AttrImplementation); impl != nil {
		base, err := r.readImplementation(ctx, impl, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", AttrImplementation, err)
		}
		if base != nil {
			s = base
		}
	}
	s.Name = f.string(AttrName)

	if ref := f.string(AttrRef); ref != nil {
		s.Ref = pointerToRef(references.ExpandSchemaRef(*ref))
	}
	setIfPresent(&s.Title, f.string(AttrTitle))
	setIfPresent(&s.Description, f.string(AttrDescription))
	setIfPresent(&s.Format, f.string(AttrFormat))
	setIfPresent(&s.Pattern, f.string(AttrPattern))
	setIfPresent(&s.MultipleOf, f.float(AttrMultipleOf))
	setIfPresent(&s.Maximum, f.float(AttrMaximum))
	setIfPresent(&s.Minimum, f.float(AttrMinimum))
	setIfPresent(&s.ExclusiveMaximum, f.bool(AttrExclusiveMaximum))
	setIfPresent(&s.ExclusiveMinimum, f.bool(AttrExclusiveMinimum))
	setIfPresent(&s.MaxLength, f.int(AttrMaxLength))
	setIfPresent(&s.MinLength, f.int(AttrMinLength))
	setIfPresent(&s.MaxItems, f.int(AttrMaxItems))
	setIfPresent(&s.MinItems, f.int(AttrMinItems))
	setIfPresent(&s.UniqueItems, f.bool(AttrUniqueItems))
	setIfPresent(&s.MaxProperties, f.int(AttrMaxProperties))
	setIfPresent(&s.MinProperties, f.int(AttrMinProperties))
	setIfPresent(&s.Nullable, f.bool(AttrNullable))
	setIfPresent(&s.ReadOnly, f.bool(AttrReadOnly))
	setIfPresent(&s.WriteOnly, f.bool(AttrWriteOnly))
	setIfPresent(&s.Deprecated, f.bool(AttrDeprecated))
	if required := f.strings(AttrRequiredProperties); required != nil {
		s.Required = required
	}
	if enum := f.strings(AttrEnumeration); enum != nil {
		s.Enum = make([]values.Value, 0, len(enum))
		for _, e := range enum {
			s.Enum = append(s.Enum, yml.CreateStringNode(e))
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	schemaType, err := annotationSchemaType(a.Value(AttrType))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", AttrType, err)
	}
	setIfPresent(&s.Type, schemaType)

	if v := a.Value(AttrDefaultValue); v != nil {
		if s.Default, err = annotationValueNode(v, false); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrDefaultValue, err)
		}
	}
	if v := a.Value(AttrExample); v != nil {
		if s.Example, err = annotationValueNode(v, false); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrExample, err)
		}
	}

	if v := a.Value(AttrItems); v != nil {
		if s.Items, err = r.readClass(ctx, v, depth+1); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrItems, err)
		}
	}
	if v := a.Value(AttrNot); v != nil {
		if s.Not, err = r.readClass(ctx, v, depth+1); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrNot, err)
		}
	}
	if v := a.Value(AttrAllOf); v != nil {
		if s.AllOf, err = r.readClassArray(ctx, v, depth+1); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrAllOf, err)
		}
	}
	if v := a.Value(AttrOneOf); v != nil {
		if s.OneOf, err = r.readClassArray(ctx, v, depth+1); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrOneOf, err)
		}
	}
	if v := a.Value(AttrAnyOf); v != nil {
		if s.AnyOf, err = r.readClassArray(ctx, v, depth+1); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrAnyOf, err)
		}
	}
	if v := a.Value(AttrProperties); v != nil {
		if s.Properties, err = r.readProperties(ctx, s.Properties, v, depth+1); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrProperties, err)
		}
	}
	if v := a.Value(AttrAdditionalProperties); v != nil {
		if s.AdditionalProperties, err = r.readAdditionalProperties(ctx, v, depth+1); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrAdditionalProperties, err)
		}
	}

	if err := r.readDiscriminator(s, a); err != nil {
		return nil, err
	}
	if v := a.Value(AttrExternalDocs); v != nil {
		if s.ExternalDocs, err = readExternalDocsAnnotation(v); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrExternalDocs, err)
		}
	}
	if v := a.Value(AttrExtensions); v != nil {
		if err := readExtensionAnnotations(v, s); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrExtensions, err)
		}
	}

	return s, nil
}

// readImplementation reads the schema of the implementation type inline, even when it is a named component,
// so the annotation's own attributes can be laid over it.
func (r *annotationReader) readImplementation(ctx context.Context, v *annotation.Value, depth int) (*Schema, error) {
	typeName, err := classValue(v)
	if err != nil {
		return nil, err
	}

	a, ok := r.idx.Lookup(typeName, AnnotationSchema)
	if !ok || r.visiting[typeName] {
		return nil, nil
	}

	r.visiting[typeName] = true
	defer delete(r.visiting, typeName)

	return r.readSchema(ctx, a, depth)
}

// readClass resolves a type to its schema. Types declaring a named schema, types without a schema annotation
// and types already being read become references to components; other types are read inline.
func (r *annotationReader) readClass(ctx context.Context, v *annotation.Value, depth int) (*Schema, error) {
	typeName, err := classValue(v)
	if err != nil {
		return nil, err
	}

	a, ok := r.idx.Lookup(typeName, AnnotationSchema)
	if !ok || r.visiting[typeName] {
		return classReference(typeName, a), nil
	}
	if name, ok := a.StringValue(AttrName); ok && name != "" {
		return classReference(typeName, a), nil
	}

	r.visiting[typeName] = true
	defer delete(r.visiting, typeName)

	return r.readSchema(ctx, a, depth)
}

func (r *annotationReader) readClassArray(ctx context.Context, v *annotation.Value, depth int) ([]*Schema, error) {
	items := v.AsArray()
	schemas := make([]*Schema, 0, len(items))
	for i, item := range items {
		schema, err := r.readClass(ctx, item, depth)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

// readProperties lays the declared property schemas over any inherited from an implementation type.
func (r *annotationReader) readProperties(ctx context.Context, base *sequencedmap.Map[string, *Schema], v *annotation.Value, depth int) (*sequencedmap.Map[string, *Schema], error) {
	props, err := r.readNamedSchemas(ctx, v, depth)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return props, nil
	}

	for name, schema := range props.All() {
		base.Set(name, schema)
	}
	return base, nil
}

func (r *annotationReader) readAdditionalProperties(ctx context.Context, v *annotation.Value, depth int) (*AdditionalProperties, error) {
	switch v.Kind() {
	case annotation.KindBoolean:
		allowed, _ := v.AsBool()
		return NewAdditionalPropertiesFromBool(allowed), nil
	case annotation.KindClass:
		schema, err := r.readClass(ctx, v, depth)
		if err != nil {
			return nil, err
		}
		return NewAdditionalPropertiesFromSchema(schema), nil
	default:
		return nil, ErrInvalidFormat.Wrapf("expected a boolean or a class, got %s", v.Kind())
	}
}

func (r *annotationReader) readDiscriminator(s *Schema, a *annotation.Annotation) error {
	f := &attrReader{a: a}
	property := f.string(AttrDiscriminatorProperty)
	if f.err != nil {
		return f.err
	}

	v := a.Value(AttrDiscriminatorMapping)
	if property == nil && v == nil {
		return nil
	}

	if s.Discriminator == nil {
		s.Discriminator = &Discriminator{}
	}
	if property != nil {
		s.Discriminator.PropertyName = *property
	}
	if v == nil {
		return nil
	}

	mappings, err := v.AsNestedArray()
	if err != nil {
		return fmt.Errorf("%s: %w", AttrDiscriminatorMapping, ErrInvalidFormat.Wrap(err))
	}

	for _, m := range mappings {
		key, _ := m.StringValue(AttrValue)
		schemaValue := m.Value(AttrSchema)
		if key == "" || schemaValue == nil {
			continue
		}

		typeName, err := classValue(schemaValue)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", AttrDiscriminatorMapping, key, err)
		}
		target, _ := r.idx.Lookup(typeName, AnnotationSchema)

		if s.Discriminator.Mapping == nil {
			s.Discriminator.Mapping = sequencedmap.New[string, string]()
		}
		s.Discriminator.Mapping.Set(key, classReference(typeName, target).GetRef().String())
	}

	return nil
}

func readExternalDocsAnnotation(v *annotation.Value) (*ExternalDocumentation, error) {
	a, err := v.AsNested()
	if err != nil {
		return nil, ErrInvalidFormat.Wrap(err)
	}

	f := &attrReader{a: a}
	docs := &ExternalDocumentation{
		Description: f.string(AttrDescription),
	}
	if url := f.string(AttrURL); url != nil {
		docs.URL = *url
	}
	if f.err != nil {
		return nil, f.err
	}

	if ext := a.Value(AttrExtensions); ext != nil {
		if err := readExtensionAnnotations(ext, docs); err != nil {
			return nil, fmt.Errorf("%s: %w", AttrExtensions, err)
		}
	}

	return docs, nil
}

// readExtensionAnnotations adds each nested Extension annotation to target, prefixing names with "x-" when needed.
func readExtensionAnnotations(v *annotation.Value, target extensions.Extendable) error {
	entries, err := v.AsNestedArray()
	if err != nil {
		return ErrInvalidFormat.Wrap(err)
	}

	for _, e := range entries {
		f := &attrReader{a: e}
		name := f.string(AttrName)
		parse := f.bool(AttrParseValue)
		if f.err != nil {
			return f.err
		}
		if name == nil || *name == "" {
			continue
		}

		key := *name
		if !extensions.IsExtension(key) {
			key = extensions.Prefix + key
		}

		value := e.Value(AttrValue)
		if value == nil {
			value = annotation.String("")
		}

		node, err := annotationValueNode(value, parse != nil && *parse)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		target.AddExtension(key, node)
	}

	return nil
}

// classReference returns a schema referencing the component declared by typeName.
func classReference(typeName string, a *annotation.Annotation) *Schema {
	name := annotation.SimpleName(typeName)
	if declared, ok := a.StringValue(AttrName); ok && declared != "" {
		name = declared
	}

	s := NewSchema(nil)
	s.Ref = pointerToRef(references.ExpandSchemaRef(name))
	return s
}

func classValue(v *annotation.Value) (string, error) {
	if v.Kind() != annotation.KindClass && v.Kind() != annotation.KindString {
		return "", ErrInvalidFormat.Wrapf("expected a class, got %s", v.Kind())
	}
	name, _ := v.AsString()
	return name, nil
}

func annotationSchemaType(v *annotation.Value) (*SchemaType, error) {
	if v == nil {
		return nil, nil
	}

	name, err := v.AsString()
	if err != nil {
		return nil, ErrInvalidFormat.Wrap(err)
	}
	if strings.EqualFold(name, schemaTypeDefault) {
		return nil, nil
	}

	t, err := ParseSchemaType(name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// annotationValueNode converts an attribute value to a document node. Strings holding an object or array are
// parsed, as is any string when parse is set; other strings are kept as text.
func annotationValueNode(v *annotation.Value, parse bool) (*yaml.Node, error) {
	switch v.Kind() {
	case annotation.KindBoolean:
		b, _ := v.AsBool()
		return yml.CreateBoolNode(b), nil
	case annotation.KindInteger:
		i, _ := v.AsInt()
		return yml.CreateIntNode(i), nil
	case annotation.KindFloat:
		f, _ := v.AsFloat()
		return yml.CreateFloatNode(f), nil
	case annotation.KindEnum, annotation.KindClass:
		s, _ := v.AsString()
		return yml.CreateStringNode(s), nil
	case annotation.KindArray:
		items := v.AsArray()
		nodes := make([]*yaml.Node, 0, len(items))
		for i, item := range items {
			node, err := annotationValueNode(item, parse)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			nodes = append(nodes, node)
		}
		return yml.CreateSequenceNode(nodes...), nil
	case annotation.KindString:
		s, _ := v.AsString()
		trimmed := strings.TrimSpace(s)
		if !parse && !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			return yml.CreateStringNode(s), nil
		}

		root, err := yml.Parse(strings.NewReader(s))
		if err != nil {
			return nil, ErrInvalidFormat.Wrap(err)
		}
		if node := yml.Unwrap(root); node != nil {
			return node, nil
		}
		return yml.CreateStringNode(s), nil
	default:
		return nil, ErrInvalidFormat.Wrapf("unsupported value of kind %s", v.Kind())
	}
}

func setIfPresent[T any](field **T, v *T) {
	if v != nil {
		*field = v
	}
}

func pointerToRef(ref references.Reference) *references.Reference {
	return &ref
}

// attrReader extracts typed attributes from an annotation, keeping the first error.
type attrReader struct {
	a   *annotation.Annotation
	err error
}

func (f *attrReader) fail(name string, err error) {
	f.err = fmt.Errorf("%s: %w", name, ErrInvalidFormat.Wrap(err))
}

func (f *attrReader) string(name string) *string {
	v := f.a.Value(name)
	if f.err != nil || v == nil {
		return nil
	}
	s, err := v.AsString()
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return &s
}

func (f *attrReader) float(name string) *float64 {
	v := f.a.Value(name)
	if f.err != nil || v == nil {
		return nil
	}
	n, err := v.AsFloat()
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return &n
}

func (f *attrReader) int(name string) *int64 {
	v := f.a.Value(name)
	if f.err != nil || v == nil {
		return nil
	}
	n, err := v.AsInt()
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return &n
}

func (f *attrReader) bool(name string) *bool {
	v := f.a.Value(name)
	if f.err != nil || v == nil {
		return nil
	}
	b, err := v.AsBool()
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return &b
}

func (f *attrReader) strings(name string) []string {
	v := f.a.Value(name)
	if f.err != nil || v == nil {
		return nil
	}
	ss, err := v.AsStringArray()
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return ss
}
