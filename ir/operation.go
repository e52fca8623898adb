package ir

// ParameterDescriptor is one resolved path, query, or header parameter.
type ParameterDescriptor struct {
	// Name is the wire parameter name.
	Name string
	// Required reports whether the parameter must be supplied.
	Required bool
	// Tree is the parameter's resolved shape.
	Tree *SchemaTree
}

// BodyVariant is one resolved body shape keyed by content type.
type BodyVariant struct {
	// ContentType is the media type (e.g. "application/json").
	ContentType string
	// Tree is the resolved payload shape. May be nil for a bodyless variant.
	Tree *SchemaTree
}

// ResponseDescriptor holds the resolved body variants for one status code.
type ResponseDescriptor struct {
	// Status is the response status key ("200", "404", "default").
	Status string
	// Description is the response description from the source document.
	Description string
	// Variants are the per-content-type shapes, in source order.
	Variants []BodyVariant
}

// OperationDescriptor is the fully resolved shape set for one API operation.
// Descriptors are built once per build and shared read-only across plugins;
// the trees they reference are the same instances held by the schema
// registry, never copies.
type OperationDescriptor struct {
	// ID is the operation id (declared or synthesized).
	ID string
	// Path is the path template.
	Path string
	// Method is the lowercase HTTP method.
	Method string
	// Tags are the operation's tags.
	Tags []string
	// Summary and Description carry source metadata.
	Summary     string
	Description string
	// Deprecated reports whether the source marks the operation deprecated.
	Deprecated bool

	// PathParams, QueryParams, and HeaderParams are the resolved parameters
	// by location, in source order.
	PathParams   []ParameterDescriptor
	QueryParams  []ParameterDescriptor
	HeaderParams []ParameterDescriptor

	// Request holds the request body variants by content type. Empty when
	// the operation has no body: the operation is still produced, never
	// dropped.
	Request []BodyVariant

	// Responses holds the response descriptors in source status order.
	Responses []ResponseDescriptor
}

// RequestBody returns the preferred request variant: the first
// JSON-compatible one, falling back to the first declared. Returns a zero
// variant when the operation has no body.
func (d *OperationDescriptor) RequestBody() BodyVariant {
	return preferJSON(d.Request)
}

// Response returns the descriptor for a status key, or nil.
func (d *OperationDescriptor) Response(status string) *ResponseDescriptor {
	for i := range d.Responses {
		if d.Responses[i].Status == status {
			return &d.Responses[i]
		}
	}
	return nil
}

// SuccessResponse returns the preferred success variant: the first 2xx
// status in source order, preferring its JSON-compatible content. Returns a
// zero variant when the operation declares no success response.
func (d *OperationDescriptor) SuccessResponse() BodyVariant {
	for i := range d.Responses {
		status := d.Responses[i].Status
		if len(status) == 3 && status[0] == '2' {
			return preferJSON(d.Responses[i].Variants)
		}
	}
	return BodyVariant{}
}

// preferJSON selects the first JSON-compatible variant, else the first.
func preferJSON(variants []BodyVariant) BodyVariant {
	for _, v := range variants {
		if IsJSONCompatible(v.ContentType) {
			return v
		}
	}
	if len(variants) > 0 {
		return variants[0]
	}
	return BodyVariant{}
}

// IsJSONCompatible reports whether a media type carries JSON payloads,
// including structured suffixes like "application/problem+json".
func IsJSONCompatible(contentType string) bool {
	if contentType == "application/json" {
		return true
	}
	for i := len(contentType) - 1; i >= 0; i-- {
		if contentType[i] == '+' {
			return contentType[i+1:] == "json"
		}
	}
	return false
}
