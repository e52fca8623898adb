package ir

// TargetKind classifies what semantic target an output unit was produced for.
type TargetKind int

const (
	// TargetSchema is a unit produced for one named schema definition.
	TargetSchema TargetKind = iota
	// TargetOperation is a unit produced for one operation.
	TargetOperation
	// TargetAggregate is a unit spanning multiple targets (e.g. a shared
	// client or an index emitted during plugin completion).
	TargetAggregate
)

// String returns a string representation of the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetSchema:
		return "schema"
	case TargetOperation:
		return "operation"
	case TargetAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// Unit is one plugin-produced piece of content destined for one resolved
// output path. Units are append-only: a plugin emits them during build and
// completion, and the file manager resolves, deduplicates, and materializes
// them after the plugin set finishes.
type Unit struct {
	// Plugin is the name of the producing plugin.
	Plugin string
	// Kind classifies the semantic target.
	Kind TargetKind
	// Target is the semantic target id: a schema definition name, an
	// operation id, or an aggregate label.
	Target string
	// Group is the grouping key consulted by directory-grouped path mode
	// (e.g. the operation's first tag).
	Group string
	// FileName overrides the name transform for this unit, when set.
	// Used by aggregates that must land on a fixed file.
	FileName string
	// Content is the emitted source text.
	Content string
	// Exports are the symbols this unit declares, in declaration order.
	Exports []string
	// NoExport excludes the unit's symbols from directory index files.
	NoExport bool
}
