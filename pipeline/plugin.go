package pipeline

import (
	"context"

	"github.com/erraggy/oasgen/resolver"
)

// Plugin is one output producer in a build.
//
// Name must be unique within a pipeline and stable across runs; it keys the
// dependency graph and the result registry. Dependencies names the plugins
// whose finalized results this plugin may query during its own build; every
// name must belong to a registered plugin.
type Plugin interface {
	// Name returns the unique plugin name.
	Name() string
	// Dependencies returns the names of the plugins this plugin depends on.
	Dependencies() []string
	// Setup validates and normalizes the plugin's own options. Called once,
	// in dependency order, before any plugin builds.
	Setup() error
	// Build produces output units for the filtered operation set.
	Build(ctx context.Context, bc *BuildContext) error
	// Complete runs after Build, once the plugin's own units are fully
	// known. Aggregates (shared clients, barrel content) are emitted here.
	Complete(ctx context.Context, bc *BuildContext) error
}

// Config is the per-registration configuration applied around a plugin:
// which operations it sees. Plugin-specific options live on the plugin value
// itself and are validated in Setup.
type Config struct {
	// Filters selects the operations visible to the plugin. The zero value
	// selects everything.
	Filters resolver.Filters
}
