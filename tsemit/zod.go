package tsemit

import (
	"context"
	"fmt"

	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// zodHeader is the fixed preamble of every validator file.
const zodHeader = `import { z } from "zod";`

// ZodPlugin emits one zod validator constant per named schema definition.
type ZodPlugin struct {
	opts ZodOptions
}

// ZodOption configures the zod plugin.
type ZodOption func(*ZodPlugin)

// WithCoercion enables z.coerce for primitives, accepting compatible raw
// input such as query strings.
func WithCoercion(coerce bool) ZodOption {
	return func(p *ZodPlugin) {
		p.opts.Coerce = coerce
	}
}

// WithStrictObjects rejects unknown object keys instead of stripping them.
func WithStrictObjects(strict bool) ZodOption {
	return func(p *ZodPlugin) {
		p.opts.Strict = strict
	}
}

// NewZod creates the zod plugin.
func NewZod(opts ...ZodOption) *ZodPlugin {
	p := &ZodPlugin{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements pipeline.Plugin.
func (p *ZodPlugin) Name() string { return "zod" }

// Dependencies implements pipeline.Plugin.
func (p *ZodPlugin) Dependencies() []string { return nil }

// Setup implements pipeline.Plugin.
func (p *ZodPlugin) Setup() error { return nil }

// Build emits one validator unit per named schema, in definition order.
func (p *ZodPlugin) Build(_ context.Context, bc *pipeline.BuildContext) error {
	registry := bc.Registry()
	names := registry.Names()
	constNames := make(map[string]string, len(names))

	for _, name := range names {
		tree, ok := registry.Definition(name)
		if !ok {
			continue
		}
		constName := SchemaConstName(name)
		constNames[name] = constName

		unit := ir.Unit{
			Kind:    ir.TargetSchema,
			Target:  name,
			Exports: []string{constName},
		}
		emitHeader(bc, unit, zodHeader)
		unit.Content = fmt.Sprintf("export const %s = %s;",
			constName, ZodExpr(tree, p.opts))
		bc.Emit(unit)
	}

	bc.SetResult(constNames)
	return nil
}

// Complete implements pipeline.Plugin.
func (p *ZodPlugin) Complete(context.Context, *pipeline.BuildContext) error {
	return nil
}
