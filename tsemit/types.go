package tsemit

import (
	"context"
	"fmt"

	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// TypesPlugin emits one TypeScript type alias per named schema definition.
// Its published result is the map from definition name to exported type
// name, consumed by dependents that reference the declarations.
type TypesPlugin struct {
	header string
}

// TypesOption configures the types plugin.
type TypesOption func(*TypesPlugin)

// WithTypesHeader prepends a fixed preamble (imports, lint pragmas) to every
// generated file.
func WithTypesHeader(header string) TypesOption {
	return func(p *TypesPlugin) {
		p.header = header
	}
}

// NewTypes creates the types plugin.
func NewTypes(opts ...TypesOption) *TypesPlugin {
	p := &TypesPlugin{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements pipeline.Plugin.
func (p *TypesPlugin) Name() string { return "types" }

// Dependencies implements pipeline.Plugin.
func (p *TypesPlugin) Dependencies() []string { return nil }

// Setup implements pipeline.Plugin.
func (p *TypesPlugin) Setup() error { return nil }

// Build emits one declaration unit per named schema, in definition order.
func (p *TypesPlugin) Build(_ context.Context, bc *pipeline.BuildContext) error {
	registry := bc.Registry()
	names := registry.Names()
	typeNames := make(map[string]string, len(names))

	for _, name := range names {
		tree, ok := registry.Definition(name)
		if !ok {
			continue
		}
		typeName := TypeName(name)
		typeNames[name] = typeName

		unit := ir.Unit{
			Kind:    ir.TargetSchema,
			Target:  name,
			Exports: []string{typeName},
		}
		emitHeader(bc, unit, p.header)
		unit.Content = fmt.Sprintf("%sexport type %s = %s;",
			docComment(describeText(tree)), typeName, TypeExpr(tree))
		bc.Emit(unit)
	}

	bc.SetResult(typeNames)
	return nil
}

// Complete implements pipeline.Plugin.
func (p *TypesPlugin) Complete(context.Context, *pipeline.BuildContext) error {
	return nil
}

// describeText returns a tree's top-level description, if any.
func describeText(tree *ir.SchemaTree) string {
	if node := tree.Find(ir.KeywordDescribe); node != nil {
		return node.Description
	}
	return ""
}
