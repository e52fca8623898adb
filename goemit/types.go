package goemit

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// TypesPlugin emits Go type declarations, one per named schema definition,
// collected into a single formatted source file.
type TypesPlugin struct {
	pkg      string
	fileName string
}

// Option configures the Go types plugin.
type Option func(*TypesPlugin)

// WithPackage sets the package name of the generated file.
func WithPackage(pkg string) Option {
	return func(p *TypesPlugin) {
		p.pkg = pkg
	}
}

// WithFileName sets the generated file name.
func WithFileName(name string) Option {
	return func(p *TypesPlugin) {
		p.fileName = name
	}
}

// NewTypes creates the Go types plugin.
func NewTypes(opts ...Option) *TypesPlugin {
	p := &TypesPlugin{pkg: "api", fileName: "types.go"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements pipeline.Plugin.
func (p *TypesPlugin) Name() string { return "gotypes" }

// Dependencies implements pipeline.Plugin.
func (p *TypesPlugin) Dependencies() []string { return nil }

// Setup implements pipeline.Plugin.
func (p *TypesPlugin) Setup() error {
	if p.pkg == "" {
		return fmt.Errorf("gotypes: package name cannot be empty")
	}
	if !strings.HasSuffix(p.fileName, ".go") {
		return fmt.Errorf("gotypes: file name %q must end in .go", p.fileName)
	}
	return nil
}

// Build assembles and formats the declaration file as one aggregate unit.
// Declarations follow definition order; formatting failures fall back to the
// unformatted source rather than failing the build.
func (p *TypesPlugin) Build(_ context.Context, bc *pipeline.BuildContext) error {
	registry := bc.Registry()
	names := registry.Names()
	if len(names) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by oasgen. DO NOT EDIT.\n\npackage %s\n\n", p.pkg)
	exports := make([]string, 0, len(names))
	for _, name := range names {
		tree, ok := registry.Definition(name)
		if !ok {
			continue
		}
		typeName := ExportedName(name)
		exports = append(exports, typeName)
		b.WriteString(renderDecl(typeName, tree))
		b.WriteString("\n")
	}

	src := b.String()
	formatted, err := imports.Process(p.fileName, []byte(src), nil)
	if err != nil {
		bc.Logger().Warn("generated Go did not format cleanly", "file", p.fileName, "error", err)
		formatted = []byte(src)
	}

	bc.Emit(ir.Unit{
		Kind:     ir.TargetAggregate,
		Target:   "types",
		FileName: p.fileName,
		Content:  string(formatted),
		Exports:  exports,
		// Go has no index files to feed; the package clause is the export
		// surface.
		NoExport: true,
	})
	return nil
}

// Complete implements pipeline.Plugin.
func (p *TypesPlugin) Complete(context.Context, *pipeline.BuildContext) error {
	return nil
}

// ExportedName derives the exported Go identifier for a definition name.
func ExportedName(name string) string {
	return naming.ToPascalCase(naming.SanitizeIdentifier(name))
}

// renderDecl renders one definition: a struct declaration for objects, a
// type alias otherwise.
func renderDecl(typeName string, tree *ir.SchemaTree) string {
	var doc string
	if node := tree.Find(ir.KeywordDescribe); node != nil {
		doc = "// " + typeName + " " + node.Description + "\n"
	}

	if obj := tree.Find(ir.KeywordObject); obj != nil {
		return doc + renderStruct(typeName, obj)
	}
	return doc + fmt.Sprintf("type %s = %s\n", typeName, GoTypeExpr(tree))
}

func renderStruct(typeName string, obj *ir.SchemaNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n", typeName)
	for _, prop := range obj.Props {
		fieldType := GoTypeExpr(prop.Tree)
		tag := prop.Name
		if prop.Tree.IsOptional() {
			tag += ",omitempty"
		}
		if needsPointer(prop.Tree, fieldType) {
			fieldType = "*" + fieldType
		}
		fmt.Fprintf(&b, "\t%s %s `json:%q`\n", ExportedName(prop.Name), fieldType, tag)
	}
	if obj.Catchall != nil {
		fmt.Fprintf(&b, "\tAdditional map[string]%s `json:\"-\"`\n", GoTypeExpr(obj.Catchall))
	}
	b.WriteString("}\n")
	return b.String()
}

// needsPointer reports whether an optional or nullable field should be a
// pointer so absence is distinguishable from the zero value. Slices and
// maps already have a usable nil state.
func needsPointer(tree *ir.SchemaTree, fieldType string) bool {
	if !tree.IsOptional() && !tree.IsNullable() {
		return false
	}
	return !strings.HasPrefix(fieldType, "[]") &&
		!strings.HasPrefix(fieldType, "map[") &&
		fieldType != "any"
}

// GoTypeExpr renders a schema tree as a Go type expression. Go has no
// union or literal types, so unions, enums, and constants map to their
// broadest representable type.
func GoTypeExpr(tree *ir.SchemaTree) string {
	if tree.IsEmpty() {
		return "struct{}"
	}

	expr := "any"
	for _, node := range tree.Nodes {
		switch node.Keyword {
		case ir.KeywordAny:
			expr = "any"
		case ir.KeywordString, ir.KeywordUUID, ir.KeywordURL, ir.KeywordEmail, ir.KeywordPattern:
			if expr != "time.Time" {
				expr = "string"
			}
		case ir.KeywordDateTime:
			expr = "time.Time"
		case ir.KeywordNumber:
			expr = "float64"
		case ir.KeywordInteger:
			expr = "int64"
		case ir.KeywordBoolean:
			expr = "bool"
		case ir.KeywordNull:
			expr = "any"
		case ir.KeywordObject:
			expr = inlineStruct(&node)
		case ir.KeywordRecord:
			expr = "map[string]" + GoTypeExpr(node.Catchall)
		case ir.KeywordArray:
			expr = "[]" + GoTypeExpr(node.Items)
		case ir.KeywordTuple:
			expr = "[]any"
		case ir.KeywordEnum:
			expr = enumBaseType(node.Values)
		case ir.KeywordUnion, ir.KeywordIntersect:
			expr = "any"
		case ir.KeywordRef:
			expr = ExportedName(node.RefName)
		case ir.KeywordConst:
			expr = literalBaseType(node.Literal)
		}
	}
	return expr
}

func inlineStruct(node *ir.SchemaNode) string {
	if len(node.Props) == 0 {
		if node.Catchall != nil {
			return "map[string]" + GoTypeExpr(node.Catchall)
		}
		return "map[string]any"
	}
	var b strings.Builder
	b.WriteString("struct {\n")
	for _, prop := range node.Props {
		tag := prop.Name
		if prop.Tree.IsOptional() {
			tag += ",omitempty"
		}
		fmt.Fprintf(&b, "\t%s %s `json:%q`\n", ExportedName(prop.Name), GoTypeExpr(prop.Tree), tag)
	}
	b.WriteString("}")
	return b.String()
}

// enumBaseType infers the Go base type of an enum from its serialized
// members.
func enumBaseType(values []string) string {
	base := ""
	for _, v := range values {
		t := literalBaseType(v)
		if base == "" {
			base = t
		} else if base != t {
			return "any"
		}
	}
	if base == "" {
		return "any"
	}
	return base
}

// literalBaseType infers the Go type of one serialized JSON literal.
func literalBaseType(literal string) string {
	switch {
	case literal == "":
		return "any"
	case literal[0] == '"':
		return "string"
	case literal == "true" || literal == "false":
		return "bool"
	case literal == "null":
		return "any"
	case strings.ContainsAny(literal, ".eE"):
		return "float64"
	default:
		return "int64"
	}
}
