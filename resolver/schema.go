package resolver

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/internal/severity"
	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/oaserrors"
)

// resolveNodes maps one document schema onto its keyword nodes. root is true
// only when expanding a named definition's own body, where the pointer-name
// shortcut must not fire.
func (r *Resolver) resolveNodes(s *document.Schema, root bool) ([]ir.SchemaNode, error) {
	if s == nil {
		return r.fallbackAny("", "missing schema"), nil
	}

	if s.Ref != "" {
		// Never inline-expand a resolvable reference, whether or not its
		// target is mid-expansion: lookup is always deferred to the use site.
		if name := document.RefName(s.Ref); name != "" && r.registry.Has(name) {
			nodes := []ir.SchemaNode{{Keyword: ir.KeywordRef, RefName: name}}
			return append(nodes, r.modifierNodes(s)...), nil
		}
		// Non-local or unknown reference: degrade at the node level.
		return r.fallbackAny("", fmt.Sprintf("unresolvable reference %q", s.Ref)), nil
	}

	if !root {
		if name, ok := r.ptrNames[s]; ok {
			nodes := []ir.SchemaNode{{Keyword: ir.KeywordRef, RefName: name}}
			return append(nodes, r.modifierNodes(s)...), nil
		}
	}

	if r.inProgress[s] {
		return r.fallbackAny("", "pointer cycle through anonymous schema"), nil
	}
	r.inProgress[s] = true
	defer delete(r.inProgress, s)

	var nodes []ir.SchemaNode
	var err error
	switch {
	case s.AllOf != nil:
		nodes, err = r.resolveAllOf(s)
	case s.OneOf != nil:
		nodes, err = r.resolveUnion(s, s.OneOf)
	case s.AnyOf != nil:
		nodes, err = r.resolveUnion(s, s.AnyOf)
	case len(s.Enum) > 0:
		nodes = r.resolveEnum(s)
	case s.Const != nil:
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordConst, Literal: serializeLiteral(s.Const)}}
	default:
		nodes, err = r.resolveTyped(s)
	}
	if err != nil {
		return nil, err
	}

	return append(nodes, r.modifierNodes(s)...), nil
}

// modifierNodes builds the sibling modifiers shared by every schema shape.
func (r *Resolver) modifierNodes(s *document.Schema) []ir.SchemaNode {
	var nodes []ir.SchemaNode
	if s.Nullable {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordNullable})
	}
	if s.Default != nil {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordDefault, Literal: serializeLiteral(s.Default)})
	}
	if s.Description != "" {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordDescribe, Description: s.Description})
	}
	return nodes
}

// resolveAllOf flattens an "all of" combinator to an intersection over the
// resolved members. A single member unwraps to avoid spurious wrapping.
// Sibling properties alongside allOf contribute one extra object member.
func (r *Resolver) resolveAllOf(s *document.Schema) ([]ir.SchemaNode, error) {
	list := s.AllOf
	hasOwnProps := len(s.Properties) > 0

	if len(list) == 0 && !hasOwnProps {
		return nil, nil
	}
	if len(list) == 1 && !hasOwnProps {
		return r.resolveNodes(list[0], false)
	}
	if len(list) == 0 && hasOwnProps {
		return r.resolveObject(s)
	}

	members := make([]*ir.SchemaTree, 0, len(list)+1)
	for _, member := range list {
		tree, err := r.resolveTree(member)
		if err != nil {
			return nil, err
		}
		members = append(members, tree)
	}
	if hasOwnProps {
		nodes, err := r.resolveObject(s)
		if err != nil {
			return nil, err
		}
		members = append(members, &ir.SchemaTree{Nodes: finishNodes(nodes)})
	}
	return []ir.SchemaNode{{Keyword: ir.KeywordIntersect, Members: members}}, nil
}

// resolveUnion maps "one of"/"any of" to a union node. A union with exactly
// one member collapses to that member; a union with zero members resolves to
// an empty/omitted node.
func (r *Resolver) resolveUnion(s *document.Schema, list []*document.Schema) ([]ir.SchemaNode, error) {
	if s.Discriminator != nil {
		if err := r.checkDiscriminator(s, list); err != nil {
			return nil, err
		}
	}

	switch len(list) {
	case 0:
		return nil, nil
	case 1:
		return r.resolveNodes(list[0], false)
	}

	members := make([]*ir.SchemaTree, 0, len(list))
	for _, member := range list {
		tree, err := r.resolveTree(member)
		if err != nil {
			return nil, err
		}
		members = append(members, tree)
	}
	return []ir.SchemaNode{{Keyword: ir.KeywordUnion, Members: members}}, nil
}

// checkDiscriminator verifies every union member is a resolvable named
// reference. A missing name here cannot degrade to "any": the discriminator
// would have nothing to dispatch on, so it is fatal for the containing
// operation.
func (r *Resolver) checkDiscriminator(s *document.Schema, list []*document.Schema) error {
	for _, member := range list {
		if member == nil {
			continue
		}
		name := r.useSiteName(member)
		if name == "" {
			ref := member.Ref
			if ref == "" {
				ref = "<inline schema>"
			}
			return &oaserrors.ResolveError{
				Name:    ref,
				Message: fmt.Sprintf("required to disambiguate discriminator %q", s.Discriminator.PropertyName),
			}
		}
	}
	return nil
}

// resolveEnum canonicalizes an enumeration. Members sharing one literal type
// produce an order-preserving enum node; under enum-as-const mode a single
// member degrades to a constant; mixed-type members produce a union of
// constants. A null member lifts into a nullable sibling.
func (r *Resolver) resolveEnum(s *document.Schema) []ir.SchemaNode {
	values := make([]string, 0, len(s.Enum))
	kinds := make(map[string]bool)
	hadNull := false
	for _, member := range s.Enum {
		if member == nil {
			hadNull = true
			continue
		}
		values = append(values, serializeLiteral(member))
		kinds[literalKind(member)] = true
	}

	var nodes []ir.SchemaNode
	switch {
	case len(values) == 0:
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordNull}}
		hadNull = false
	case r.enumAsConst && len(values) == 1:
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordConst, Literal: values[0]}}
	case len(kinds) == 1:
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordEnum, Values: values}}
	default:
		members := make([]*ir.SchemaTree, 0, len(values))
		for _, v := range values {
			members = append(members, ir.NewTree(ir.SchemaNode{Keyword: ir.KeywordConst, Literal: v}))
		}
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordUnion, Members: members}}
	}

	if hadNull {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordNullable})
	}
	return nodes
}

// resolveTyped maps the type keyword (and its constraint siblings) onto
// nodes.
func (r *Resolver) resolveTyped(s *document.Schema) ([]ir.SchemaNode, error) {
	primary, rest, nullable := splitType(s.Type)

	if len(rest) > 0 {
		nodes, err := r.resolveMultiType(s, append([]string{primary}, rest...))
		if err != nil {
			return nil, err
		}
		if nullable {
			nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordNullable})
		}
		return nodes, nil
	}

	var nodes []ir.SchemaNode
	var err error
	switch primary {
	case "string":
		nodes = r.resolveString(s)
	case "number":
		nodes = append([]ir.SchemaNode{{Keyword: ir.KeywordNumber}}, numericBounds(s)...)
	case "integer":
		nodes = append([]ir.SchemaNode{{Keyword: ir.KeywordInteger}}, numericBounds(s)...)
	case "boolean":
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordBoolean}}
	case "null":
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordNull}}
	case "array":
		nodes, err = r.resolveArray(s)
	case "object":
		nodes, err = r.resolveObject(s)
	case "":
		switch {
		case len(s.Properties) > 0 || s.AdditionalProperties != nil:
			nodes, err = r.resolveObject(s)
		case s.ItemSchema() != nil || len(s.PrefixItems) > 0:
			nodes, err = r.resolveArray(s)
		default:
			nodes = []ir.SchemaNode{{Keyword: ir.KeywordAny}}
		}
	default:
		// Unrecognized type keyword: skip silently, fall back to any.
		nodes = r.fallbackAny("", fmt.Sprintf("unrecognized type %q", primary))
	}
	if err != nil {
		return nil, err
	}

	if nullable {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordNullable})
	}
	return nodes, nil
}

// resolveMultiType expands an OAS 3.1 type array into a union of the
// single-type resolutions.
func (r *Resolver) resolveMultiType(s *document.Schema, types []string) ([]ir.SchemaNode, error) {
	members := make([]*ir.SchemaTree, 0, len(types))
	for _, typ := range types {
		narrowed := *s
		narrowed.Type = typ
		nodes, err := r.resolveTyped(&narrowed)
		if err != nil {
			return nil, err
		}
		members = append(members, &ir.SchemaTree{Nodes: finishNodes(nodes)})
	}
	if len(members) == 1 {
		return members[0].Nodes, nil
	}
	return []ir.SchemaNode{{Keyword: ir.KeywordUnion, Members: members}}, nil
}

// resolveString maps the string primary with its format marker and bounds.
func (r *Resolver) resolveString(s *document.Schema) []ir.SchemaNode {
	nodes := []ir.SchemaNode{{Keyword: ir.KeywordString}}

	switch s.Format {
	case "date-time", "date":
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordDateTime})
	case "uuid":
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordUUID})
	case "uri", "url":
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordURL})
	case "email":
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordEmail})
	}

	if s.MinLength != nil {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordMin, Bound: float64(*s.MinLength)})
	}
	if s.MaxLength != nil {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordMax, Bound: float64(*s.MaxLength)})
	}
	if s.Pattern != "" {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordPattern, Pattern: s.Pattern})
	}
	return nodes
}

// resolveArray maps array/tuple primaries. An array without an item schema
// is structurally invalid and falls back to any rather than aborting.
func (r *Resolver) resolveArray(s *document.Schema) ([]ir.SchemaNode, error) {
	var nodes []ir.SchemaNode

	switch {
	case len(s.PrefixItems) > 0:
		elems := make([]*ir.SchemaTree, 0, len(s.PrefixItems))
		for _, elem := range s.PrefixItems {
			tree, err := r.resolveTree(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, tree)
		}
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordTuple, Elems: elems}}

	case s.ItemSchema() != nil:
		items, err := r.resolveTree(s.ItemSchema())
		if err != nil {
			return nil, err
		}
		nodes = []ir.SchemaNode{{Keyword: ir.KeywordArray, Items: items}}

	default:
		return r.fallbackAny("", "array without an item schema"), nil
	}

	if s.MinItems != nil {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordMin, Bound: float64(*s.MinItems)})
	}
	if s.MaxItems != nil {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordMax, Bound: float64(*s.MaxItems)})
	}
	return nodes, nil
}

// resolveObject maps object properties (source order) and the
// additional-properties catch-all. An object with no declared properties and
// a typed catch-all becomes a record node.
func (r *Resolver) resolveObject(s *document.Schema) ([]ir.SchemaNode, error) {
	order := s.PropertyOrder
	if order == nil && len(s.Properties) > 0 {
		// Programmatically built schemas carry no source order; sort for
		// reproducibility.
		order = make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	catchall, allowed := s.AdditionalSchema()
	var catchallTree *ir.SchemaTree
	if catchall != nil {
		tree, err := r.resolveTree(catchall)
		if err != nil {
			return nil, err
		}
		catchallTree = tree
	} else if allowed && len(order) == 0 && s.AdditionalProperties == true {
		// additionalProperties: true with no properties is an untyped map.
		catchallTree = ir.NewTree(ir.SchemaNode{Keyword: ir.KeywordAny})
	}

	if len(order) == 0 && catchallTree != nil {
		return []ir.SchemaNode{{Keyword: ir.KeywordRecord, Catchall: catchallTree}}, nil
	}

	props := make([]ir.Property, 0, len(order))
	for _, name := range order {
		child, ok := s.Properties[name]
		if !ok {
			continue
		}
		var extra []ir.SchemaNode
		if !s.IsRequired(name) {
			extra = append(extra, ir.SchemaNode{Keyword: ir.KeywordOptional})
		}
		tree, err := r.resolveTree(child, extra...)
		if err != nil {
			return nil, err
		}
		props = append(props, ir.Property{Name: name, Tree: tree})
	}

	return []ir.SchemaNode{{Keyword: ir.KeywordObject, Props: props, Catchall: catchallTree}}, nil
}

// fallbackAny records a degradation and yields the "any" node.
func (r *Resolver) fallbackAny(schema, reason string) []ir.SchemaNode {
	r.report(severity.SeverityWarning, "", schema, reason+"; falling back to any")
	return []ir.SchemaNode{{Keyword: ir.KeywordAny}}
}

// numericBounds maps minimum/maximum and their exclusivity spellings
// (boolean in OAS 2.0/3.0, numeric in 3.1).
func numericBounds(s *document.Schema) []ir.SchemaNode {
	var nodes []ir.SchemaNode

	if s.Minimum != nil {
		nodes = append(nodes, ir.SchemaNode{
			Keyword:   ir.KeywordMin,
			Bound:     *s.Minimum,
			Exclusive: boolFlag(s.ExclusiveMinimum),
		})
	} else if v, ok := numericFlag(s.ExclusiveMinimum); ok {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordMin, Bound: v, Exclusive: true})
	}

	if s.Maximum != nil {
		nodes = append(nodes, ir.SchemaNode{
			Keyword:   ir.KeywordMax,
			Bound:     *s.Maximum,
			Exclusive: boolFlag(s.ExclusiveMaximum),
		})
	} else if v, ok := numericFlag(s.ExclusiveMaximum); ok {
		nodes = append(nodes, ir.SchemaNode{Keyword: ir.KeywordMax, Bound: v, Exclusive: true})
	}

	return nodes
}

// boolFlag reads the OAS 2.0/3.0 boolean exclusivity spelling.
func boolFlag(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// numericFlag reads the OAS 3.1 numeric exclusivity spelling.
func numericFlag(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// splitType normalizes the type keyword: a single name, extra names for 3.1
// type arrays, and whether "null" was among them.
func splitType(t any) (primary string, rest []string, nullable bool) {
	switch v := t.(type) {
	case string:
		if v == "null" {
			return "null", nil, false
		}
		return v, nil, false
	case []any:
		var names []string
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				continue
			}
			if name == "null" {
				nullable = true
				continue
			}
			names = append(names, name)
		}
		if len(names) == 0 {
			if nullable {
				return "null", nil, false
			}
			return "", nil, false
		}
		return names[0], names[1:], nullable
	}
	return "", nil, false
}

// literalKind buckets a literal for enum homogeneity checks.
func literalKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float32, float64:
		return "number"
	default:
		return "other"
	}
}

// serializeLiteral renders a literal value in its canonical JSON spelling.
func serializeLiteral(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
