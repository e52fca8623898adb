package resolver

import (
	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/internal/severity"
	"github.com/erraggy/oasgen/ir"
)

// Resolver builds the intermediate representation for one document. It is
// not goroutine-safe; create one per build. All resolution is pure and
// CPU-bound; the only I/O in a build happens in document loading and file
// materialization.
type Resolver struct {
	doc         *document.Document
	registry    *Registry
	enumAsConst bool
	logger      document.Logger
	issues      []issues.Issue

	// ptrNames maps pointer-inlined named schemas back to their definition
	// name, so pre-dereferenced documents still resolve to references.
	ptrNames map[*document.Schema]string
	// inProgress guards against pointer cycles through anonymous schemas.
	inProgress map[*document.Schema]bool
}

// New creates a Resolver for a loaded document.
func New(doc *document.Document, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		doc:        doc,
		logger:     document.NopLogger{},
		ptrNames:   make(map[*document.Schema]string),
		inProgress: make(map[*document.Schema]bool),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Registry resolves every reachable named schema definition (once) and
// returns the shared registry. Subsequent calls return the same instance.
func (r *Resolver) Registry() *Registry {
	if r.registry != nil {
		return r.registry
	}

	names := r.doc.SchemaNames()
	r.registry = newRegistry(names)
	for _, name := range names {
		if schema, ok := r.doc.LookupSchema(name); ok {
			r.ptrNames[schema] = name
		}
	}

	for _, name := range names {
		schema, _ := r.doc.LookupSchema(name)
		nodes, err := r.resolveNodes(schema, true)
		if err != nil {
			// Definition-level failures degrade the definition; operations
			// that need it fail individually during operation generation.
			r.report(severity.SeverityCritical, "", name, err.Error())
			nodes = []ir.SchemaNode{{Keyword: ir.KeywordAny}}
		}
		tree, _ := r.registry.Definition(name)
		tree.Nodes = finishNodes(nodes)

		r.logger.Debug("resolved definition", "name", name, "siblings", len(tree.Nodes))
	}
	return r.registry
}

// Issues returns everything reported during resolution so far.
func (r *Resolver) Issues() []issues.Issue {
	return r.issues
}

// report records one resolution issue.
func (r *Resolver) report(sev severity.Severity, operation, schema, msg string) {
	r.issues = append(r.issues, issues.Issue{
		Severity:  sev,
		Operation: operation,
		Schema:    schema,
		Message:   msg,
	})
}

// resolveTree resolves one schema into a tree, appending any extra modifier
// nodes supplied by the caller (e.g. KeywordOptional for a non-required
// property).
//
// A pure reference with no modifiers resolves to the registry's memoized
// reference tree, so every use site of a name shares one instance.
func (r *Resolver) resolveTree(s *document.Schema, extra ...ir.SchemaNode) (*ir.SchemaTree, error) {
	if s != nil {
		if name := r.useSiteName(s); name != "" && len(extra) == 0 && !refHasModifiers(s) {
			return r.registry.Ref(name), nil
		}
	}

	nodes, err := r.resolveNodes(s, false)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, extra...)
	return &ir.SchemaTree{Nodes: finishNodes(nodes)}, nil
}

// useSiteName returns the symbolic definition name a schema stands for at a
// use site: either a local $ref or a pointer-inlined named schema. Empty
// when the schema is anonymous or the reference is not a local definition.
func (r *Resolver) useSiteName(s *document.Schema) string {
	if s.Ref != "" {
		if name := document.RefName(s.Ref); name != "" && r.registry.Has(name) {
			return name
		}
		return ""
	}
	if name, ok := r.ptrNames[s]; ok {
		return name
	}
	return ""
}

// refHasModifiers reports whether a reference schema carries sibling
// modifiers that prevent sharing the memoized reference tree.
func refHasModifiers(s *document.Schema) bool {
	return s.Nullable || s.Description != "" || s.Default != nil
}

// finishNodes collapses optional+nullable into nullish and establishes the
// canonical sibling order.
func finishNodes(nodes []ir.SchemaNode) []ir.SchemaNode {
	nodes = dedupeModifiers(nodes)
	nodes = collapseNullish(nodes)
	ir.SortSiblings(nodes)
	return nodes
}

// dedupeModifiers drops repeated optionality and nullability siblings. The
// 3.0 nullable flag, an enum null member, and a 3.1 type array containing
// "null" each contribute their own nullable node when they coincide on one
// schema; only the first survives.
func dedupeModifiers(nodes []ir.SchemaNode) []ir.SchemaNode {
	var hasOptional, hasNullable, hasNullish bool
	kept := nodes[:0]
	for _, n := range nodes {
		switch n.Keyword {
		case ir.KeywordOptional:
			if hasOptional {
				continue
			}
			hasOptional = true
		case ir.KeywordNullable:
			if hasNullable {
				continue
			}
			hasNullable = true
		case ir.KeywordNullish:
			if hasNullish {
				continue
			}
			hasNullish = true
		}
		kept = append(kept, n)
	}
	return kept
}

// collapseNullish replaces an optional+nullable pair with a single nullish
// sibling.
func collapseNullish(nodes []ir.SchemaNode) []ir.SchemaNode {
	hasOptional, hasNullable := false, false
	for _, n := range nodes {
		switch n.Keyword {
		case ir.KeywordOptional:
			hasOptional = true
		case ir.KeywordNullable:
			hasNullable = true
		}
	}
	if !hasOptional || !hasNullable {
		return nodes
	}

	kept := nodes[:0]
	for _, n := range nodes {
		if n.Keyword != ir.KeywordOptional && n.Keyword != ir.KeywordNullable {
			kept = append(kept, n)
		}
	}
	return append(kept, ir.SchemaNode{Keyword: ir.KeywordNullish})
}
