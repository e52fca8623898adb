package tsemit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/ir"
)

// TypeName derives the exported TypeScript type name for a definition name.
func TypeName(name string) string {
	return naming.ToPascalCase(naming.SanitizeIdentifier(name))
}

// SchemaConstName derives the exported zod schema constant for a definition
// name.
func SchemaConstName(name string) string {
	return TypeName(name) + "Schema"
}

// TypeExpr renders a schema tree as a TypeScript type expression. Constraint
// siblings (bounds, patterns) have no type-level rendering; optionality is
// rendered at the property site, so only nullability appears here.
func TypeExpr(tree *ir.SchemaTree) string {
	return QualifiedTypeExpr(tree, "")
}

// QualifiedTypeExpr renders a type expression with named references prefixed
// by qualifier (e.g. "types." for a namespace import).
func QualifiedTypeExpr(tree *ir.SchemaTree, qualifier string) string {
	if tree.IsEmpty() {
		return "never"
	}

	expr := "unknown"
	for _, node := range tree.Nodes {
		switch node.Keyword {
		case ir.KeywordAny:
			expr = "unknown"
		case ir.KeywordString, ir.KeywordDateTime, ir.KeywordUUID, ir.KeywordURL, ir.KeywordEmail:
			expr = "string"
		case ir.KeywordNumber, ir.KeywordInteger:
			expr = "number"
		case ir.KeywordBoolean:
			expr = "boolean"
		case ir.KeywordNull:
			expr = "null"
		case ir.KeywordObject:
			expr = objectTypeExpr(&node, qualifier)
		case ir.KeywordRecord:
			expr = fmt.Sprintf("Record<string, %s>", QualifiedTypeExpr(node.Catchall, qualifier))
		case ir.KeywordArray:
			expr = arrayTypeExpr(node.Items, qualifier)
		case ir.KeywordTuple:
			expr = tupleTypeExpr(node.Elems, qualifier)
		case ir.KeywordEnum:
			expr = strings.Join(node.Values, " | ")
		case ir.KeywordUnion:
			expr = memberTypeExpr(node.Members, " | ", qualifier)
		case ir.KeywordIntersect:
			expr = memberTypeExpr(node.Members, " & ", qualifier)
		case ir.KeywordRef:
			expr = qualifier + TypeName(node.RefName)
		case ir.KeywordConst:
			expr = node.Literal
		case ir.KeywordNullable, ir.KeywordNullish:
			expr += " | null"
		}
	}
	return expr
}

func objectTypeExpr(node *ir.SchemaNode, qualifier string) string {
	if len(node.Props) == 0 && node.Catchall == nil {
		return "Record<string, never>"
	}

	var b strings.Builder
	b.WriteString("{")
	for i, prop := range node.Props {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(" ")
		b.WriteString(propertyKey(prop.Name))
		if prop.Tree.IsOptional() {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(QualifiedTypeExpr(prop.Tree, qualifier))
	}
	b.WriteString(" }")

	if node.Catchall != nil {
		return b.String() + fmt.Sprintf(" & Record<string, %s>", QualifiedTypeExpr(node.Catchall, qualifier))
	}
	return b.String()
}

func arrayTypeExpr(items *ir.SchemaTree, qualifier string) string {
	inner := QualifiedTypeExpr(items, qualifier)
	// Union and intersection element types need grouping.
	if strings.Contains(inner, " | ") || strings.Contains(inner, " & ") {
		return "(" + inner + ")[]"
	}
	return inner + "[]"
}

func tupleTypeExpr(elems []*ir.SchemaTree, qualifier string) string {
	parts := make([]string, 0, len(elems))
	for _, elem := range elems {
		parts = append(parts, QualifiedTypeExpr(elem, qualifier))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func memberTypeExpr(members []*ir.SchemaTree, sep, qualifier string) string {
	parts := make([]string, 0, len(members))
	for _, member := range members {
		parts = append(parts, QualifiedTypeExpr(member, qualifier))
	}
	return strings.Join(parts, sep)
}

// propertyKey quotes a property name when it is not a valid identifier.
func propertyKey(name string) string {
	for i, r := range name {
		valid := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && r >= '0' && r <= '9')
		if !valid {
			return strconv.Quote(name)
		}
	}
	if name == "" {
		return `""`
	}
	return name
}

// ZodOptions configure validator emission.
type ZodOptions struct {
	// Coerce uses z.coerce for primitive types, accepting compatible raw
	// input (query strings, form fields).
	Coerce bool
	// Strict rejects unknown object keys instead of stripping them.
	Strict bool
}

// ZodExpr renders a schema tree as a zod validator expression. The canonical
// sibling order maps directly onto the zod method chain: primary and format
// first, then bounds, then default/describe, then
// optional/nullable/nullish.
func ZodExpr(tree *ir.SchemaTree, opts ZodOptions) string {
	if tree.IsEmpty() {
		return "z.never()"
	}

	expr := "z.unknown()"
	numeric := false
	for _, node := range tree.Nodes {
		switch node.Keyword {
		case ir.KeywordAny:
			expr = "z.unknown()"
		case ir.KeywordString:
			expr = primitive("z.string()", opts.Coerce)
		case ir.KeywordNumber:
			expr = primitive("z.number()", opts.Coerce)
			numeric = true
		case ir.KeywordInteger:
			expr = primitive("z.number()", opts.Coerce) + ".int()"
			numeric = true
		case ir.KeywordBoolean:
			expr = primitive("z.boolean()", opts.Coerce)
		case ir.KeywordNull:
			expr = "z.null()"
		case ir.KeywordDateTime:
			expr += ".datetime()"
		case ir.KeywordUUID:
			expr += ".uuid()"
		case ir.KeywordURL:
			expr += ".url()"
		case ir.KeywordEmail:
			expr += ".email()"
		case ir.KeywordObject:
			expr = objectZodExpr(&node, opts)
		case ir.KeywordRecord:
			expr = fmt.Sprintf("z.record(z.string(), %s)", ZodExpr(node.Catchall, opts))
		case ir.KeywordArray:
			expr = fmt.Sprintf("z.array(%s)", ZodExpr(node.Items, opts))
		case ir.KeywordTuple:
			expr = fmt.Sprintf("z.tuple([%s])", memberZodExpr(node.Elems, opts))
		case ir.KeywordEnum:
			expr = fmt.Sprintf("z.enum([%s])", strings.Join(node.Values, ", "))
		case ir.KeywordUnion:
			expr = fmt.Sprintf("z.union([%s])", memberZodExpr(node.Members, opts))
		case ir.KeywordIntersect:
			expr = intersectZodExpr(node.Members, opts)
		case ir.KeywordRef:
			// Lazy indirection keeps cyclic definitions valid at module load.
			expr = fmt.Sprintf("z.lazy(() => %s)", SchemaConstName(node.RefName))
		case ir.KeywordConst:
			expr = fmt.Sprintf("z.literal(%s)", node.Literal)
		case ir.KeywordMin:
			expr += boundZod(node, numeric, true)
		case ir.KeywordMax:
			expr += boundZod(node, numeric, false)
		case ir.KeywordPattern:
			expr += fmt.Sprintf(".regex(new RegExp(%s))", strconv.Quote(node.Pattern))
		case ir.KeywordDefault:
			expr += fmt.Sprintf(".default(%s)", node.Literal)
		case ir.KeywordDescribe:
			expr += fmt.Sprintf(".describe(%s)", strconv.Quote(node.Description))
		case ir.KeywordOptional:
			expr += ".optional()"
		case ir.KeywordNullable:
			expr += ".nullable()"
		case ir.KeywordNullish:
			expr += ".nullish()"
		}
	}
	return expr
}

func primitive(base string, coerce bool) string {
	if coerce {
		return "z.coerce." + strings.TrimPrefix(base, "z.")
	}
	return base
}

func objectZodExpr(node *ir.SchemaNode, opts ZodOptions) string {
	var b strings.Builder
	b.WriteString("z.object({")
	for i, prop := range node.Props {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(propertyKey(prop.Name))
		b.WriteString(": ")
		b.WriteString(ZodExpr(prop.Tree, opts))
	}
	if len(node.Props) > 0 {
		b.WriteString(" ")
	}
	b.WriteString("})")

	switch {
	case node.Catchall != nil:
		b.WriteString(fmt.Sprintf(".catchall(%s)", ZodExpr(node.Catchall, opts)))
	case opts.Strict:
		b.WriteString(".strict()")
	}
	return b.String()
}

func intersectZodExpr(members []*ir.SchemaTree, opts ZodOptions) string {
	if len(members) == 0 {
		return "z.unknown()"
	}
	expr := ZodExpr(members[0], opts)
	for _, member := range members[1:] {
		expr += fmt.Sprintf(".and(%s)", ZodExpr(member, opts))
	}
	return expr
}

func memberZodExpr(members []*ir.SchemaTree, opts ZodOptions) string {
	parts := make([]string, 0, len(members))
	for _, member := range members {
		parts = append(parts, ZodExpr(member, opts))
	}
	return strings.Join(parts, ", ")
}

// boundZod renders a min/max sibling: gt/lt for exclusive numeric bounds,
// min/max otherwise (length and item-count bounds are never exclusive).
func boundZod(node ir.SchemaNode, numeric, lower bool) string {
	method := "min"
	if !lower {
		method = "max"
	}
	if numeric && node.Exclusive {
		method = "gt"
		if !lower {
			method = "lt"
		}
	}
	return fmt.Sprintf(".%s(%s)", method, formatBound(node.Bound))
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
