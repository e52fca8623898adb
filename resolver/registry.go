package resolver

import "github.com/erraggy/oasgen/ir"

// Registry is the arena of named schema trees for one build. Definition
// trees are allocated up front and filled during resolution, so a reference
// can hand out the shared instance before its expansion is complete and
// cyclic definitions simply point at each other.
//
// The registry is built once per build and is read-only afterwards.
type Registry struct {
	names []string
	defs  map[string]*ir.SchemaTree
	refs  map[string]*ir.SchemaTree
}

// newRegistry allocates definition shells for every name, in order.
func newRegistry(names []string) *Registry {
	reg := &Registry{
		names: names,
		defs:  make(map[string]*ir.SchemaTree, len(names)),
		refs:  make(map[string]*ir.SchemaTree, len(names)),
	}
	for _, name := range names {
		reg.defs[name] = &ir.SchemaTree{Name: name}
	}
	return reg
}

// Names returns the definition names in source-document order.
func (reg *Registry) Names() []string {
	return reg.names
}

// Definition returns the expanded tree for a named definition.
func (reg *Registry) Definition(name string) (*ir.SchemaTree, bool) {
	tree, ok := reg.defs[name]
	return tree, ok
}

// Has reports whether the registry holds a definition for name.
func (reg *Registry) Has(name string) bool {
	_, ok := reg.defs[name]
	return ok
}

// Ref returns the canonical reference tree for a name. The instance is
// memoized: every use site of the same name receives the same tree, never a
// copy. The name need not have a definition; emitters degrade missing
// definitions to "any" at the use site.
func (reg *Registry) Ref(name string) *ir.SchemaTree {
	if tree, ok := reg.refs[name]; ok {
		return tree
	}
	tree := &ir.SchemaTree{
		Name:  name,
		Nodes: []ir.SchemaNode{{Keyword: ir.KeywordRef, RefName: name}},
	}
	reg.refs[name] = tree
	return tree
}
