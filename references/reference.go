// Package references models JSON reference ($ref) values found in schema documents.
package references

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ComponentsSchemasPrefix is the JSON pointer prefix of schemas shared through components.
const ComponentsSchemasPrefix = "#/components/schemas/"

// Reference is a JSON reference URI, optionally carrying a JSON pointer fragment.
type Reference string

var _ fmt.Stringer = (*Reference)(nil)

// GetURI returns the part of the reference before the fragment.
func (r Reference) GetURI() string {
	uri, _, _ := strings.Cut(string(r), "#")
	return strings.TrimSpace(uri)
}

// HasJSONPointer reports whether the reference carries a fragment.
func (r Reference) HasJSONPointer() bool {
	return strings.Contains(string(r), "#")
}

// GetJSONPointer returns the percent-decoded fragment of the reference.
func (r Reference) GetJSONPointer() string {
	_, pointer, found := strings.Cut(string(r), "#")
	if !found {
		return ""
	}

	pointer = strings.TrimSpace(pointer)

	if decoded, err := url.PathUnescape(pointer); err == nil {
		pointer = decoded
	}

	return pointer
}

// Name returns the final path segment of the reference with JSON pointer escapes undone,
// so "#/components/schemas/Pet" names "Pet". An empty reference has no name.
func (r Reference) Name() string {
	target := string(r)
	if r.HasJSONPointer() {
		target = r.GetJSONPointer()
	}

	target = strings.TrimRight(target, "/")
	if i := strings.LastIndex(target, "/"); i >= 0 {
		target = target[i+1:]
	}

	return strings.NewReplacer("~1", "/", "~0", "~").Replace(target)
}

// Validate checks the URI and JSON pointer parts of the reference are well formed.
func (r Reference) Validate() error {
	if r == "" {
		return nil
	}

	if uri := r.GetURI(); uri != "" {
		if _, err := url.Parse(uri); err != nil {
			return fmt.Errorf("invalid reference URI: %w", err)
		}
	}

	if r.HasJSONPointer() {
		jp := r.GetJSONPointer()
		if jp != "" && !strings.HasPrefix(jp, "/") {
			return errors.New("invalid reference JSON pointer: must start with /")
		}
	}

	return nil
}

func (r Reference) String() string {
	return string(r)
}

// ExpandSchemaRef turns a bare schema name into a reference into components/schemas.
// Values that already look like references are returned unchanged.
func ExpandSchemaRef(ref string) Reference {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.ContainsAny(ref, "/#") {
		return Reference(ref)
	}

	return Reference(ComponentsSchemasPrefix + ref)
}
