// Package ir defines the intermediate representation shared by every output
// plugin: keyword-tagged schema nodes, schema trees, operation descriptors,
// and output units.
//
// A SchemaTree is an ordered set of sibling SchemaNodes describing one data
// shape. Siblings are modifiers layered onto a primary type node, not nested
// arguments, so every consumer can apply modifiers independently. The sibling
// order is canonical and fixed system-wide (see SortSiblings): primary and
// format nodes first, then bound constraints, then default and description,
// then optional/nullable/nullish last. Backends emitting a chained expression
// over these nodes must apply them in this order to be reproducible.
//
// References are symbolic: a KeywordRef node carries only a definition name,
// never inline structure. This is what makes cyclic definitions resolvable
// without unbounded recursion.
//
// Trees and operation descriptors are built once per build by the resolver
// package and are thereafter immutable and shared read-only across plugins.
package ir
