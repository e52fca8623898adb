package pipeline

import (
	"fmt"

	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/resolver"
)

// BuildContext is one plugin's window into a running build. It exposes the
// shared read-only IR, the plugin's filtered operation view, an append-only
// unit sink, and the finalized results of declared dependencies.
//
// A BuildContext is owned by exactly one plugin and is not shared, so Emit
// needs no locking even when independent plugins run concurrently.
type BuildContext struct {
	plugin     string
	deps       map[string]bool
	operations []ir.OperationDescriptor
	registry   *resolver.Registry
	logger     document.Logger

	units  []ir.Unit
	result any

	// results is the pipeline's registry of finalized dependency results.
	// Populated strictly in dependency order before this plugin runs.
	results map[string]any
}

// Operations returns the operations visible to the plugin, filtered and in
// source-document order.
func (bc *BuildContext) Operations() []ir.OperationDescriptor {
	return bc.operations
}

// Registry returns the shared schema registry.
func (bc *BuildContext) Registry() *resolver.Registry {
	return bc.registry
}

// Logger returns the build's logger, scoped to the plugin.
func (bc *BuildContext) Logger() document.Logger {
	return bc.logger
}

// Emit appends one output unit to the plugin's collection. The unit's Plugin
// field is stamped with the owning plugin's name.
func (bc *BuildContext) Emit(unit ir.Unit) {
	unit.Plugin = bc.plugin
	bc.units = append(bc.units, unit)
}

// Units returns the units emitted so far, in emission order. Complete uses
// this to aggregate over the plugin's own output.
func (bc *BuildContext) Units() []ir.Unit {
	return bc.units
}

// SetResult publishes the plugin's finalized result value, readable by
// declared dependents after the plugin completes.
func (bc *BuildContext) SetResult(v any) {
	bc.result = v
}

// DependencyResult returns the finalized result of a declared dependency.
// Querying an undeclared plugin is a configuration error regardless of
// whether that plugin ran.
func (bc *BuildContext) DependencyResult(name string) (any, error) {
	if !bc.deps[name] {
		return nil, &oaserrors.ConfigError{
			Plugin:     bc.plugin,
			Dependency: name,
			Message:    "result queried without a declared dependency",
		}
	}
	v, ok := bc.results[name]
	if !ok {
		return nil, &oaserrors.ConfigError{
			Plugin:     bc.plugin,
			Dependency: name,
			Message:    "dependency has not published a result",
		}
	}
	return v, nil
}

// ResultAs returns a declared dependency's result, asserted to T.
func ResultAs[T any](bc *BuildContext, name string) (T, error) {
	var zero T
	v, err := bc.DependencyResult(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("plugin %q result is %T, not %T", name, v, zero)
	}
	return typed, nil
}
