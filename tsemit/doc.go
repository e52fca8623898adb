// Package tsemit provides the TypeScript output plugins.
//
// Every plugin here is a thin template layer over the shared intermediate
// representation: all shape logic lives in the schema trees, and emission is
// an exhaustive per-keyword rendering with no schema interpretation of its
// own.
//
// Plugins:
//
//   - types: type declarations, one per named schema
//   - zod: runtime validator schemas, honoring coercion and strictness
//   - client: a typed fetch client, one method per operation
//   - query: data-fetching hooks over the client (depends on client)
//   - faker: synthetic-data factories (depends on types)
//   - msw: request mock handlers (depends on types and faker)
package tsemit
