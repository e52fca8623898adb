package document

import (
	"sort"
	"strings"
)

// OperationRef identifies one operation within the document, pairing the
// path template and HTTP method with the operation itself.
type OperationRef struct {
	// Path is the path template (e.g. "/pets/{id}").
	Path string
	// Method is the lowercase HTTP method.
	Method string
	// Operation is the operation object.
	Operation *Operation
	// PathItem is the containing path item, for path-level parameters.
	PathItem *PathItem
}

// ID returns the declared operation id, or a deterministic synthetic id
// derived from the method and path when none is declared.
func (r OperationRef) ID() string {
	if r.Operation != nil && r.Operation.OperationID != "" {
		return r.Operation.OperationID
	}
	return r.Method + " " + r.Path
}

// EffectiveParameters merges path-item parameters with operation parameters.
// An operation parameter shadows a path-item parameter with the same name
// and location.
func (r OperationRef) EffectiveParameters() []*Parameter {
	if r.PathItem == nil || len(r.PathItem.Parameters) == 0 {
		return r.Operation.Parameters
	}

	merged := make([]*Parameter, 0, len(r.PathItem.Parameters)+len(r.Operation.Parameters))
	for _, shared := range r.PathItem.Parameters {
		shadowed := false
		for _, own := range r.Operation.Parameters {
			if own.Name == shared.Name && own.In == shared.In {
				shadowed = true
				break
			}
		}
		if !shadowed {
			merged = append(merged, shared)
		}
	}
	return append(merged, r.Operation.Parameters...)
}

// Operations enumerates every operation in the document: paths in source
// order, methods in canonical order. The result is stable for a given
// document, independent of map iteration.
func (d *Document) Operations() []OperationRef {
	order := d.PathOrder
	if order == nil && len(d.Paths) > 0 {
		order = make([]string, 0, len(d.Paths))
		for path := range d.Paths {
			order = append(order, path)
		}
		sort.Strings(order)
	}

	var refs []OperationRef
	for _, path := range order {
		item := d.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			if op := item.operationFor(method); op != nil {
				refs = append(refs, OperationRef{
					Path:      path,
					Method:    method,
					Operation: op,
					PathItem:  item,
				})
			}
		}
	}
	return refs
}

// SchemaNames returns the named schema definitions in source-document order.
// A programmatically built document without captured order falls back to
// sorted names so enumeration stays deterministic.
func (d *Document) SchemaNames() []string {
	if d.Components == nil {
		return nil
	}
	if d.Components.SchemaOrder != nil || len(d.Components.Schemas) == 0 {
		return d.Components.SchemaOrder
	}
	names := make([]string, 0, len(d.Components.Schemas))
	for name := range d.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupSchema returns the named schema definition, if present.
func (d *Document) LookupSchema(name string) (*Schema, bool) {
	if d.Components == nil || d.Components.Schemas == nil {
		return nil, false
	}
	s, ok := d.Components.Schemas[name]
	return s, ok
}

// RefName extracts the symbolic definition name from a local schema $ref.
// Both "#/components/schemas/X" and "#/definitions/X" yield "X". Any other
// reference shape yields "".
func RefName(ref string) string {
	for _, prefix := range []string{"#/components/schemas/", "#/definitions/"} {
		if strings.HasPrefix(ref, prefix) {
			name := strings.TrimPrefix(ref, prefix)
			if name != "" && !strings.Contains(name, "/") {
				return name
			}
		}
	}
	return ""
}
