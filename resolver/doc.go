// Package resolver turns normalized document schemas and operations into the
// shared intermediate representation consumed by output plugins.
//
// # Schema resolution
//
// Each named schema definition resolves to one ir.SchemaTree held in a
// Registry. Resolution never inline-expands a reference: a $ref (or a
// pointer-inlined named schema in a pre-dereferenced document) becomes a
// single reference node carrying the symbolic name, and lookup is deferred
// to the use site. A recursion guard detects names already being expanded
// and short-circuits to a reference node, so mutually recursive definitions
// resolve without unbounded recursion and both directions of a cycle remain
// independently resolvable.
//
// A pure reference resolves to one memoized tree instance per name, so the
// same referenced schema is the same tree instance everywhere it is used.
//
// # Operation generation
//
// Operations() walks every operation that passes the configured
// include/exclude/override filters (applied in order: tag, path, method,
// operation id) and produces one ir.OperationDescriptor per operation,
// resolving parameters and request/response bodies per content type. An
// operation with no body still yields a descriptor.
//
// # Edge policy
//
// Unrecognized keywords yield no node; structurally invalid schemas (an
// array without an item schema) resolve to a fallback "any" node. An
// unresolvable reference degrades to "any" at the node level unless the
// missing name is needed to disambiguate a discriminated union, which is
// fatal for the containing operation only.
package resolver
