package tsemit

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// FakerPlugin emits synthetic-data factories: one mock function per named
// schema definition, returning the generated type. Its published result is
// the map from definition name to factory function name.
type FakerPlugin struct {
	typesImport string
}

// FakerOption configures the faker plugin.
type FakerOption func(*FakerPlugin)

// WithFakerTypesImport sets the module specifier the factories import the
// generated type declarations from.
func WithFakerTypesImport(path string) FakerOption {
	return func(p *FakerPlugin) {
		p.typesImport = path
	}
}

// NewFaker creates the faker plugin.
func NewFaker(opts ...FakerOption) *FakerPlugin {
	p := &FakerPlugin{typesImport: "../types"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements pipeline.Plugin.
func (p *FakerPlugin) Name() string { return "faker" }

// Dependencies implements pipeline.Plugin.
func (p *FakerPlugin) Dependencies() []string { return []string{"types"} }

// Setup implements pipeline.Plugin.
func (p *FakerPlugin) Setup() error {
	if p.typesImport == "" {
		return fmt.Errorf("faker: types import path cannot be empty")
	}
	return nil
}

// Build emits one factory unit per named schema, in definition order.
func (p *FakerPlugin) Build(_ context.Context, bc *pipeline.BuildContext) error {
	registry := bc.Registry()
	names := registry.Names()
	mockNames := make(map[string]string, len(names))

	header := fmt.Sprintf(`import { faker } from "@faker-js/faker";
import type * as types from %q;`, p.typesImport)

	for _, name := range names {
		tree, ok := registry.Definition(name)
		if !ok {
			continue
		}
		mockName := MockName(name)
		mockNames[name] = mockName

		unit := ir.Unit{
			Kind:    ir.TargetSchema,
			Target:  name,
			Exports: []string{mockName},
		}
		emitHeader(bc, unit, header)
		unit.Content = fmt.Sprintf("export function %s(): types.%s {\n  return %s;\n}",
			mockName, TypeName(name), FakerExpr(tree, ""))
		bc.Emit(unit)
	}

	bc.SetResult(mockNames)
	return nil
}

// Complete implements pipeline.Plugin.
func (p *FakerPlugin) Complete(context.Context, *pipeline.BuildContext) error {
	return nil
}

// FakerExpr renders a faker value expression for a schema tree. qualifier
// prefixes calls to sibling factories (e.g. "mocks." when imported as a
// namespace).
func FakerExpr(tree *ir.SchemaTree, qualifier string) string {
	if tree.IsEmpty() {
		return "undefined as never"
	}

	expr := "null"
	var minBound, maxBound *float64
	for _, node := range tree.Nodes {
		switch node.Keyword {
		case ir.KeywordMin:
			v := node.Bound
			minBound = &v
		case ir.KeywordMax:
			v := node.Bound
			maxBound = &v
		}
	}

	for _, node := range tree.Nodes {
		switch node.Keyword {
		case ir.KeywordAny:
			expr = "null"
		case ir.KeywordString:
			expr = "faker.lorem.word()"
		case ir.KeywordDateTime:
			expr = "faker.date.recent().toISOString()"
		case ir.KeywordUUID:
			expr = "faker.string.uuid()"
		case ir.KeywordURL:
			expr = "faker.internet.url()"
		case ir.KeywordEmail:
			expr = "faker.internet.email()"
		case ir.KeywordNumber:
			expr = "faker.number.float(" + numberRange(minBound, maxBound) + ")"
		case ir.KeywordInteger:
			expr = "faker.number.int(" + numberRange(minBound, maxBound) + ")"
		case ir.KeywordBoolean:
			expr = "faker.datatype.boolean()"
		case ir.KeywordNull:
			expr = "null"
		case ir.KeywordObject:
			expr = objectFakerExpr(&node, qualifier)
		case ir.KeywordRecord:
			expr = "{}"
		case ir.KeywordArray:
			expr = fmt.Sprintf("[%s]", FakerExpr(node.Items, qualifier))
		case ir.KeywordTuple:
			parts := make([]string, 0, len(node.Elems))
			for _, elem := range node.Elems {
				parts = append(parts, FakerExpr(elem, qualifier))
			}
			expr = "[" + strings.Join(parts, ", ") + "]"
		case ir.KeywordEnum:
			expr = fmt.Sprintf("faker.helpers.arrayElement([%s])", strings.Join(node.Values, ", "))
		case ir.KeywordUnion:
			// Mock the first member; any member satisfies the union.
			if len(node.Members) > 0 {
				expr = FakerExpr(node.Members[0], qualifier)
			}
		case ir.KeywordIntersect:
			parts := make([]string, 0, len(node.Members))
			for _, member := range node.Members {
				parts = append(parts, "..."+FakerExpr(member, qualifier))
			}
			expr = "{ " + strings.Join(parts, ", ") + " }"
		case ir.KeywordRef:
			expr = qualifier + MockName(node.RefName) + "()"
		case ir.KeywordConst:
			expr = node.Literal
		}
	}
	return expr
}

func objectFakerExpr(node *ir.SchemaNode, qualifier string) string {
	if len(node.Props) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, prop := range node.Props {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(propertyKey(prop.Name))
		b.WriteString(": ")
		b.WriteString(FakerExpr(prop.Tree, qualifier))
	}
	b.WriteString(" }")
	return b.String()
}

// numberRange renders the min/max option bag for faker number calls.
func numberRange(minBound, maxBound *float64) string {
	switch {
	case minBound != nil && maxBound != nil:
		return fmt.Sprintf("{ min: %s, max: %s }", formatBound(*minBound), formatBound(*maxBound))
	case minBound != nil:
		return fmt.Sprintf("{ min: %s }", formatBound(*minBound))
	case maxBound != nil:
		return fmt.Sprintf("{ max: %s }", formatBound(*maxBound))
	default:
		return ""
	}
}
