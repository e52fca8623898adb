package document

import (
	"go.yaml.in/yaml/v4"
)

// SourceFormat represents the format of the source OpenAPI document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
)

// Document is the normalized OpenAPI document model.
//
// After Load returns, OAS 2.0 input has been upgraded in place: Definitions
// are available as Components.Schemas, body parameters as RequestBody, and
// OAS 2.0 response schemas as response content entries. Consumers only ever
// see the 3.x shape.
//
// Callers should treat a loaded Document as read-only; it is shared across
// every plugin in a build.
type Document struct {
	OpenAPI string `yaml:"openapi,omitempty"`
	Swagger string `yaml:"swagger,omitempty"`

	Info *Info `yaml:"info,omitempty"`
	Tags []Tag `yaml:"tags,omitempty"`

	Paths map[string]*PathItem `yaml:"paths,omitempty"`
	// PathOrder preserves the source-document order of path templates.
	PathOrder []string `yaml:"-"`

	Components *Components `yaml:"components,omitempty"`

	// OAS 2.0 fields, consumed by the dialect upgrade.
	Definitions map[string]*Schema `yaml:"definitions,omitempty"`
	// DefinitionOrder preserves the source-document order of definitions.
	DefinitionOrder []string `yaml:"-"`
	Consumes        []string `yaml:"consumes,omitempty"`
	Produces        []string `yaml:"produces,omitempty"`

	// SourcePath is the input source identifier the document was read from.
	SourcePath string `yaml:"-"`
	// Format is the detected source format.
	Format SourceFormat `yaml:"-"`
}

// UnmarshalYAML decodes the document and captures source ordering for paths
// and definitions, which plain Go maps would otherwise lose.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	type rawDocument Document
	if err := node.Decode((*rawDocument)(d)); err != nil {
		return err
	}
	d.PathOrder = mappingKeys(node, "paths")
	d.DefinitionOrder = mappingKeys(node, "definitions")
	return nil
}

// Info holds document metadata.
type Info struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
}

// Tag describes one operation tag.
type Tag struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Components holds the reusable objects of an OAS 3.x document.
type Components struct {
	Schemas map[string]*Schema `yaml:"schemas,omitempty"`
	// SchemaOrder preserves the source-document order of schema definitions.
	SchemaOrder []string `yaml:"-"`
}

// UnmarshalYAML decodes components and captures schema definition order.
func (c *Components) UnmarshalYAML(node *yaml.Node) error {
	type rawComponents Components
	if err := node.Decode((*rawComponents)(c)); err != nil {
		return err
	}
	c.SchemaOrder = mappingKeys(node, "schemas")
	return nil
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Ref         string `yaml:"$ref,omitempty"`
	Summary     string `yaml:"summary,omitempty"`
	Description string `yaml:"description,omitempty"`

	Get     *Operation `yaml:"get,omitempty"`
	Put     *Operation `yaml:"put,omitempty"`
	Post    *Operation `yaml:"post,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty"`
	Options *Operation `yaml:"options,omitempty"`
	Head    *Operation `yaml:"head,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty"`
	Trace   *Operation `yaml:"trace,omitempty"`

	// Parameters apply to every operation on this path unless shadowed.
	Parameters []*Parameter `yaml:"parameters,omitempty"`
}

// methodOrder is the canonical method enumeration order, independent of the
// source document's key order.
var methodOrder = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// operationFor returns the operation for an HTTP method, or nil.
func (p *PathItem) operationFor(method string) *Operation {
	switch method {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	}
	return nil
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string   `yaml:"operationId,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Summary     string   `yaml:"summary,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Deprecated  bool     `yaml:"deprecated,omitempty"`

	Parameters  []*Parameter         `yaml:"parameters,omitempty"`
	RequestBody *RequestBody         `yaml:"requestBody,omitempty"`
	Responses   map[string]*Response `yaml:"responses,omitempty"`
	// ResponseOrder preserves the source-document order of response statuses.
	ResponseOrder []string `yaml:"-"`

	// OAS 2.0 fields, consumed by the dialect upgrade.
	Consumes []string `yaml:"consumes,omitempty"`
	Produces []string `yaml:"produces,omitempty"`
}

// UnmarshalYAML decodes the operation and captures response status order.
func (o *Operation) UnmarshalYAML(node *yaml.Node) error {
	type rawOperation Operation
	if err := node.Decode((*rawOperation)(o)); err != nil {
		return err
	}
	o.ResponseOrder = mappingKeys(node, "responses")
	return nil
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string  `yaml:"name,omitempty"`
	In          string  `yaml:"in,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty"`

	// OAS 2.0 inline parameter fields, consumed by the dialect upgrade.
	Type             string  `yaml:"type,omitempty"`
	Format           string  `yaml:"format,omitempty"`
	Items            *Schema `yaml:"items,omitempty"`
	Enum             []any   `yaml:"enum,omitempty"`
	CollectionFormat string  `yaml:"collectionFormat,omitempty"`
}

// RequestBody describes a request payload keyed by media type.
type RequestBody struct {
	Description string                `yaml:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`
	// ContentOrder preserves the source-document order of media types.
	ContentOrder []string `yaml:"-"`
}

// UnmarshalYAML decodes the request body and captures media type order.
func (r *RequestBody) UnmarshalYAML(node *yaml.Node) error {
	type rawRequestBody RequestBody
	if err := node.Decode((*rawRequestBody)(r)); err != nil {
		return err
	}
	r.ContentOrder = mappingKeys(node, "content")
	return nil
}

// Response describes a single response keyed by media type.
type Response struct {
	Description string                `yaml:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`
	// ContentOrder preserves the source-document order of media types.
	ContentOrder []string `yaml:"-"`

	// Schema is the OAS 2.0 response schema, consumed by the dialect upgrade.
	Schema *Schema `yaml:"schema,omitempty"`
}

// UnmarshalYAML decodes the response and captures media type order.
func (r *Response) UnmarshalYAML(node *yaml.Node) error {
	type rawResponse Response
	if err := node.Decode((*rawResponse)(r)); err != nil {
		return err
	}
	r.ContentOrder = mappingKeys(node, "content")
	return nil
}

// MediaType describes the schema of one media type entry.
type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty"`
}

// Discriminator supports polymorphic union disambiguation (OAS 3.0+).
type Discriminator struct {
	PropertyName string            `yaml:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty"`
}

// Schema represents a JSON Schema as it appears in the source document.
// Supports OAS 2.0, OAS 3.0, and OAS 3.1 keyword spellings; dialect
// differences (nullable flag vs. type arrays) are normalized by the resolver.
type Schema struct {
	// JSON Schema core
	Ref string `yaml:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	Example     any    `yaml:"example,omitempty"`

	// Type validation
	Type   any    `yaml:"type,omitempty"` // string or []string (OAS 3.1+)
	Enum   []any  `yaml:"enum,omitempty"`
	Const  any    `yaml:"const,omitempty"`
	Format string `yaml:"format,omitempty"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty"` // bool in OAS 2.0/3.0, number in 3.1+
	Minimum          *float64 `yaml:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty"` // bool in OAS 2.0/3.0, number in 3.1+

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty"`

	// Array validation
	Items       any       `yaml:"-"` // *Schema or bool (OAS 3.1+), decoded manually
	PrefixItems []*Schema `yaml:"prefixItems,omitempty"`
	MaxItems    *int      `yaml:"maxItems,omitempty"`
	MinItems    *int      `yaml:"minItems,omitempty"`
	UniqueItems bool      `yaml:"uniqueItems,omitempty"`

	// Object validation
	Properties map[string]*Schema `yaml:"properties,omitempty"`
	// PropertyOrder preserves the source-document order of properties.
	PropertyOrder        []string `yaml:"-"`
	AdditionalProperties any      `yaml:"-"` // *Schema or bool, decoded manually
	Required             []string `yaml:"required,omitempty"`
	MaxProperties        *int     `yaml:"maxProperties,omitempty"`
	MinProperties        *int     `yaml:"minProperties,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty"`

	// OAS specific extensions
	Nullable      bool           `yaml:"nullable,omitempty"` // OAS 3.0 (type arrays in 3.1+)
	Discriminator *Discriminator `yaml:"discriminator,omitempty"`
	ReadOnly      bool           `yaml:"readOnly,omitempty"`
	WriteOnly     bool           `yaml:"writeOnly,omitempty"`
	Deprecated    bool           `yaml:"deprecated,omitempty"`
}

// UnmarshalYAML decodes the schema, capturing property order and manually
// decoding the two fields whose value may be either a schema or a boolean.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	type rawSchema Schema
	if err := node.Decode((*rawSchema)(s)); err != nil {
		return err
	}
	s.PropertyOrder = mappingKeys(node, "properties")

	for i := 0; i+1 < len(node.Content); i += 2 {
		val := node.Content[i+1]
		switch node.Content[i].Value {
		case "items":
			decoded, err := schemaOrBool(val)
			if err != nil {
				return err
			}
			s.Items = decoded
		case "additionalProperties":
			decoded, err := schemaOrBool(val)
			if err != nil {
				return err
			}
			s.AdditionalProperties = decoded
		}
	}
	return nil
}

// ItemSchema returns the array item schema, or nil when items is absent or
// a boolean.
func (s *Schema) ItemSchema() *Schema {
	if sub, ok := s.Items.(*Schema); ok {
		return sub
	}
	return nil
}

// AdditionalSchema returns the additionalProperties schema along with whether
// additional properties are allowed at all.
func (s *Schema) AdditionalSchema() (*Schema, bool) {
	switch v := s.AdditionalProperties.(type) {
	case *Schema:
		return v, true
	case bool:
		return nil, v
	}
	return nil, true
}

// IsRequired reports whether a property name is in the schema's required list.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// schemaOrBool decodes a node that is either a nested schema or a boolean.
func schemaOrBool(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		sub := new(Schema)
		if err := node.Decode(sub); err != nil {
			return nil, err
		}
		return sub, nil
	case yaml.ScalarNode:
		var b bool
		if err := node.Decode(&b); err == nil {
			return b, nil
		}
	case yaml.AliasNode:
		if node.Alias != nil {
			return schemaOrBool(node.Alias)
		}
	}
	return nil, nil
}

// mappingKeys returns the key order of the mapping stored under field, or nil
// when the field is absent or not a mapping.
func mappingKeys(node *yaml.Node, field string) []string {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != field {
			continue
		}
		m := node.Content[i+1]
		if m.Kind == yaml.AliasNode && m.Alias != nil {
			m = m.Alias
		}
		if m.Kind != yaml.MappingNode {
			return nil
		}
		keys := make([]string, 0, len(m.Content)/2)
		for j := 0; j+1 < len(m.Content); j += 2 {
			keys = append(keys, m.Content[j].Value)
		}
		return keys
	}
	return nil
}
