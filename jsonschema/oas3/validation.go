package oas3

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"sync"

	_ "embed"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/speakeasy-api/schemareader/json"
	"github.com/speakeasy-api/schemareader/yml"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema30.json
var schema30JSON string

var oasSchemaValidator *jsValidator.Schema
var defaultPrinter = message.NewPrinter(language.English)

// Validate checks node against the OpenAPI 3.0 Schema object meta-schema.
// It returns one error per failing leaf, each located at the offending node and wrapping ErrSchemaInvalid.
// Absent and non-object nodes have nothing to validate.
func Validate(node *yaml.Node) []error {
	node = yml.Unwrap(node)
	if !yml.IsObject(node) {
		return nil
	}

	initValidation()

	buf := bytes.NewBuffer([]byte{})
	if err := json.YAMLToJSON(node, 0, buf); err != nil {
		return []error{yml.NewNodeError(node, ErrSchemaInvalid.Wrapf("schema is not valid json: %s", err.Error()))}
	}

	jsAny, err := jsValidator.UnmarshalJSON(buf)
	if err != nil {
		return []error{yml.NewNodeError(node, ErrSchemaInvalid.Wrapf("schema is not valid json: %s", err.Error()))}
	}

	err = oasSchemaValidator.Validate(jsAny)
	if err == nil {
		return nil
	}

	var validationErr *jsValidator.ValidationError
	if errors.As(err, &validationErr) {
		return getRootCauses(validationErr, node)
	}

	return []error{yml.NewNodeError(node, ErrSchemaInvalid.Wrap(err))}
}

func validateSchemaNode(node *yaml.Node) error {
	return errors.Join(Validate(node)...)
}

func getRootCauses(err *jsValidator.ValidationError, root *yaml.Node) []error {
	errs := []error{}

	for _, cause := range err.Causes {
		if len(cause.Causes) > 0 {
			errs = append(errs, getRootCauses(cause, root)...)
			continue
		}

		valueNode := nodeAt(root, cause.InstanceLocation)
		location := strings.Join(cause.InstanceLocation, ".")
		if location == "" {
			location = "(root)"
		}

		switch cause.ErrorKind.(type) {
		case *kind.Type:
			errs = append(errs, yml.NewNodeError(valueNode, ErrSchemaInvalid.Wrapf("type mismatch: schema field %s %s", location, cause.ErrorKind.LocalizedString(defaultPrinter))))
		case *kind.Required:
			errs = append(errs, yml.NewNodeError(valueNode, ErrSchemaInvalid.Wrapf("missing field: schema field %s %s", location, cause.ErrorKind.LocalizedString(defaultPrinter))))
		default:
			errs = append(errs, yml.NewNodeError(valueNode, ErrSchemaInvalid.Wrapf("schema field %s %s", location, cause.ErrorKind.LocalizedString(defaultPrinter))))
		}
	}

	if len(errs) == 0 {
		errs = append(errs, yml.NewNodeError(root, ErrSchemaInvalid.Wrapf("%s", err.ErrorKind.LocalizedString(defaultPrinter))))
	}

	return errs
}

// nodeAt walks an instance location down from root, stopping at the deepest node that exists.
func nodeAt(root *yaml.Node, location []string) *yaml.Node {
	node := root
	for _, part := range location {
		var next *yaml.Node
		switch {
		case yml.IsObject(node):
			next = yml.Get(node, part)
		case yml.IsArray(node):
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node.Content) {
				return node
			}
			next = yml.Unwrap(node.Content[i])
		}
		if next == nil {
			return node
		}
		node = next
	}
	return node
}

var validationInitialized bool
var initMutex sync.Mutex

func initValidation() {
	initMutex.Lock()
	defer initMutex.Unlock()
	if validationInitialized {
		return
	}

	oasSchema, err := jsValidator.UnmarshalJSON(strings.NewReader(schema30JSON))
	if err != nil {
		panic(err)
	}

	c := jsValidator.NewCompiler()
	if err := c.AddResource("schema30.json", oasSchema); err != nil {
		panic(err)
	}
	oasSchemaValidator = c.MustCompile("schema30.json")
	validationInitialized = true
}
