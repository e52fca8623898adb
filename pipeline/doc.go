// Package pipeline orchestrates output plugins over the shared intermediate
// representation.
//
// A Pipeline runs a declared plugin list in dependency order. The order is
// computed up front from each plugin's declared pre-dependencies; a
// dependency naming a plugin absent from the active set, or a dependency
// cycle, is a fatal configuration error reported before any build step runs.
//
// Lifecycle per plugin: Setup (validate and normalize its own options), then
// Build (produce output units), then Complete (emit aggregates once the
// plugin's own units are fully known). Each phase runs exactly once.
//
// Plugins with no dependency relation to one another execute concurrently
// against the read-only IR. All emission is append-only into per-plugin
// collections, merged in declared registration order after each plugin
// finishes, so output is reproducible regardless of scheduling.
//
// A failure in any phase aborts the run; no partial output set is considered
// valid. Units already produced by plugins that finished before the failure
// remain available on the returned Result for diagnostics.
package pipeline
