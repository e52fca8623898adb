package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/resolver"
)

// Input is the shared, read-only material every plugin builds from.
type Input struct {
	// Operations is the full resolved operation set, in source order.
	// Per-plugin filters narrow it per registration.
	Operations []ir.OperationDescriptor
	// Registry is the shared schema registry.
	Registry *resolver.Registry
}

// Result is the merged outcome of a run. On failure it still carries the
// units of every plugin that finished before the failure, for diagnostics;
// a partial result must never be materialized.
type Result struct {
	// Units are the emitted output units, merged in declared registration
	// order and, within one plugin, in emission order.
	Units []ir.Unit
}

// Pipeline runs a registered plugin set in dependency order.
type Pipeline struct {
	entries []*entry
	byName  map[string]*entry
	logger  document.Logger
}

type entry struct {
	plugin Plugin
	cfg    Config
	level  int
	bc     *BuildContext
	done   bool
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets the structured logger used during orchestration.
func WithLogger(l document.Logger) Option {
	return func(p *Pipeline) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		p.logger = l
		return nil
	}
}

// New creates an empty pipeline.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		byName: make(map[string]*entry),
		logger: document.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register adds a plugin to the active set. Registration order is the merge
// order of the final unit list.
func (p *Pipeline) Register(plugin Plugin, cfg Config) error {
	name := plugin.Name()
	if name == "" {
		return &oaserrors.ConfigError{Message: "plugin has an empty name"}
	}
	if _, exists := p.byName[name]; exists {
		return &oaserrors.ConfigError{
			Plugin:  name,
			Message: "plugin registered twice",
		}
	}
	e := &entry{plugin: plugin, cfg: cfg}
	p.entries = append(p.entries, e)
	p.byName[name] = e
	return nil
}

// Run executes the full lifecycle: dependency validation, setup in
// dependency order, then build and completion with independent plugins
// running concurrently. The first error aborts the run.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	order, err := p.sortDependencies()
	if err != nil {
		return &Result{}, err
	}

	for _, e := range order {
		if err := e.plugin.Setup(); err != nil {
			return &Result{}, &oaserrors.PluginError{
				Plugin: e.plugin.Name(),
				Phase:  "setup",
				Cause:  err,
			}
		}
	}

	levels := p.assignLevels(order)
	results := make(map[string]any, len(order))

	for _, level := range levels {
		g, gctx := errgroup.WithContext(ctx)
		for _, e := range level {
			e.bc = &BuildContext{
				plugin:     e.plugin.Name(),
				deps:       dependencySet(e.plugin),
				operations: filterOperations(in.Operations, e.cfg.Filters),
				registry:   in.Registry,
				logger:     p.logger.With("plugin", e.plugin.Name()),
				results:    results,
			}
			e := e
			g.Go(func() error {
				return p.runPlugin(gctx, e)
			})
		}
		if err := g.Wait(); err != nil {
			return &Result{Units: p.mergeUnits()}, err
		}
		// Publish this level's results before any dependent runs.
		for _, e := range level {
			results[e.plugin.Name()] = e.bc.result
		}
	}

	return &Result{Units: p.mergeUnits()}, nil
}

// runPlugin drives one plugin's build and completion phases.
func (p *Pipeline) runPlugin(ctx context.Context, e *entry) error {
	name := e.plugin.Name()
	p.logger.Debug("plugin build starting", "plugin", name, "operations", len(e.bc.operations))

	if err := e.plugin.Build(ctx, e.bc); err != nil {
		return &oaserrors.PluginError{Plugin: name, Phase: "build", Cause: err}
	}
	if err := e.plugin.Complete(ctx, e.bc); err != nil {
		return &oaserrors.PluginError{Plugin: name, Phase: "complete", Cause: err}
	}

	e.done = true
	p.logger.Debug("plugin finished", "plugin", name, "units", len(e.bc.units))
	return nil
}

// mergeUnits collects finished plugins' units in registration order.
func (p *Pipeline) mergeUnits() []ir.Unit {
	var units []ir.Unit
	for _, e := range p.entries {
		if e.done {
			units = append(units, e.bc.units...)
		}
	}
	return units
}

// sortDependencies validates the dependency graph and returns a topological
// order. Unknown dependencies and cycles are fatal configuration errors,
// reported before any plugin runs.
func (p *Pipeline) sortDependencies() ([]*entry, error) {
	const (
		unvisited = iota
		visiting
		finished
	)
	state := make(map[string]int, len(p.entries))
	order := make([]*entry, 0, len(p.entries))

	var visit func(e *entry) error
	visit = func(e *entry) error {
		name := e.plugin.Name()
		switch state[name] {
		case finished:
			return nil
		case visiting:
			return &oaserrors.ConfigError{
				Plugin:  name,
				IsCycle: true,
				Message: "dependency cycle",
			}
		}
		state[name] = visiting
		for _, dep := range e.plugin.Dependencies() {
			target, ok := p.byName[dep]
			if !ok {
				return &oaserrors.ConfigError{
					Plugin:     name,
					Dependency: dep,
					Message:    "dependency is not in the active plugin set",
				}
			}
			if err := visit(target); err != nil {
				return err
			}
		}
		state[name] = finished
		order = append(order, e)
		return nil
	}

	for _, e := range p.entries {
		if err := visit(e); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// assignLevels buckets the topological order into dependency levels: a
// plugin's level is one past its deepest dependency. Plugins sharing a level
// have no dependency relation and may run concurrently.
func (p *Pipeline) assignLevels(order []*entry) [][]*entry {
	maxLevel := 0
	for _, e := range order {
		level := 0
		for _, dep := range e.plugin.Dependencies() {
			if d := p.byName[dep]; d.level+1 > level {
				level = d.level + 1
			}
		}
		e.level = level
		if level > maxLevel {
			maxLevel = level
		}
	}

	levels := make([][]*entry, maxLevel+1)
	// Bucket in registration order so intra-level scheduling is stable.
	for _, e := range p.entries {
		levels[e.level] = append(levels[e.level], e)
	}
	return levels
}

// dependencySet indexes a plugin's declared dependencies.
func dependencySet(plugin Plugin) map[string]bool {
	deps := make(map[string]bool)
	for _, dep := range plugin.Dependencies() {
		deps[dep] = true
	}
	return deps
}

// filterOperations applies one registration's filters, preserving source
// order.
func filterOperations(ops []ir.OperationDescriptor, filters resolver.Filters) []ir.OperationDescriptor {
	var kept []ir.OperationDescriptor
	for _, op := range ops {
		if filters.Allows(op.Tags, op.Path, op.Method, op.ID) {
			kept = append(kept, op)
		}
	}
	return kept
}
