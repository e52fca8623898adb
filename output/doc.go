// Package output materializes plugin-produced units into an output file
// tree.
//
// The Manager resolves one destination path per unit from the output root,
// the producing plugin's layout (sub-path, path mode, naming transform), and
// the unit itself. Resolution is a pure function of those inputs: identical
// inputs always resolve to the identical path, so rebuilds are stable.
//
// Units landing on the same path concatenate in arrival order. A block that
// is byte-identical to one already on the path is dropped, which guards
// against a schema emitted once as a request type and again as a response
// type. Units declaring the same export name with differing content are a
// fatal conflict.
//
// After all units are added, Finalize emits one index file per directory
// re-exporting every exported symbol in insertion order, skipping units
// marked non-exported. Flush writes the accumulated tree to disk; in clean
// mode the previous output root is removed first, and only after every
// plugin has completed successfully, so a failed build never leaves the
// consumer with neither old nor new output. Post-build hooks run strictly
// after every file is materialized; a failing hook is reported but never
// unwrites files.
package output
