package tsemit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// ClientPlugin emits a typed fetch client: one async function per operation.
// Its published result is the map from operation id to generated function
// name.
type ClientPlugin struct {
	typesImport string
}

// ClientOption configures the client plugin.
type ClientOption func(*ClientPlugin)

// WithClientTypesImport sets the module specifier the client imports the
// generated type declarations from.
func WithClientTypesImport(path string) ClientOption {
	return func(p *ClientPlugin) {
		p.typesImport = path
	}
}

// NewClient creates the client plugin.
func NewClient(opts ...ClientOption) *ClientPlugin {
	p := &ClientPlugin{typesImport: "../types"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements pipeline.Plugin.
func (p *ClientPlugin) Name() string { return "client" }

// Dependencies implements pipeline.Plugin.
func (p *ClientPlugin) Dependencies() []string { return []string{"types"} }

// Setup implements pipeline.Plugin.
func (p *ClientPlugin) Setup() error {
	if p.typesImport == "" {
		return fmt.Errorf("client: types import path cannot be empty")
	}
	return nil
}

// Build emits one function unit per operation, in source order.
func (p *ClientPlugin) Build(_ context.Context, bc *pipeline.BuildContext) error {
	ops := bc.Operations()
	funcNames := make(map[string]string, len(ops))

	header := fmt.Sprintf(`import type * as types from %q;

let baseUrl = "";

/** Sets the base URL every generated call is resolved against. */
export function setBaseUrl(url: string): void {
  baseUrl = url;
}`, p.typesImport)

	for _, op := range ops {
		fn := FuncName(op.ID)
		funcNames[op.ID] = fn

		unit := ir.Unit{
			Kind:    ir.TargetOperation,
			Target:  op.ID,
			Group:   groupKey(op),
			Exports: []string{fn},
		}
		emitHeader(bc, unit, header)
		unit.Content = renderClientFunction(op, fn)
		bc.Emit(unit)
	}

	bc.SetResult(funcNames)
	return nil
}

// Complete implements pipeline.Plugin.
func (p *ClientPlugin) Complete(context.Context, *pipeline.BuildContext) error {
	return nil
}

// renderClientFunction renders one operation's fetch wrapper.
func renderClientFunction(op ir.OperationDescriptor, fn string) string {
	body := op.RequestBody()
	success := op.SuccessResponse()

	var params []string
	for _, pd := range op.PathParams {
		params = append(params, fmt.Sprintf("%s: %s",
			FuncName(pd.Name), QualifiedTypeExpr(pd.Tree, "types.")))
	}
	if body.Tree != nil {
		params = append(params, "body: "+QualifiedTypeExpr(body.Tree, "types."))
	}
	if len(op.QueryParams) > 0 {
		params = append(params, "query"+optionalMarker(op.QueryParams)+": "+paramObjectType(op.QueryParams))
	}
	if len(op.HeaderParams) > 0 {
		params = append(params, "headers"+optionalMarker(op.HeaderParams)+": "+paramObjectType(op.HeaderParams))
	}

	returnType := "void"
	if success.Tree != nil {
		returnType = QualifiedTypeExpr(success.Tree, "types.")
	}

	var b strings.Builder
	if op.Summary != "" {
		b.WriteString(docComment(op.Summary))
	}
	if op.Deprecated {
		b.WriteString("/** @deprecated */\n")
	}
	fmt.Fprintf(&b, "export async function %s(%s): Promise<%s> {\n",
		fn, strings.Join(params, ", "), returnType)
	fmt.Fprintf(&b, "  const url = new URL(`${baseUrl}%s`);\n", templatePath(op.Path))

	for _, pd := range op.QueryParams {
		access := paramAccess("query", optionalMarker(op.QueryParams) != "", pd.Name)
		fmt.Fprintf(&b, "  if (%s !== undefined) url.searchParams.set(%s, String(%s));\n",
			access, strconv.Quote(pd.Name), access)
	}

	b.WriteString("  const requestHeaders: Record<string, string> = {};\n")
	if body.Tree != nil {
		fmt.Fprintf(&b, "  requestHeaders[\"Content-Type\"] = %q;\n", body.ContentType)
	}
	for _, pd := range op.HeaderParams {
		access := paramAccess("headers", optionalMarker(op.HeaderParams) != "", pd.Name)
		fmt.Fprintf(&b, "  if (%s !== undefined) requestHeaders[%s] = String(%s);\n",
			access, strconv.Quote(pd.Name), access)
	}

	fmt.Fprintf(&b, "  const res = await fetch(url.toString(), {\n    method: %q,\n    headers: requestHeaders,\n",
		strings.ToUpper(op.Method))
	if body.Tree != nil {
		b.WriteString("    body: JSON.stringify(body),\n")
	}
	b.WriteString("  });\n")
	fmt.Fprintf(&b, "  if (!res.ok) {\n    throw new Error(`%s failed with status ${res.status}`);\n  }\n", fn)
	if success.Tree != nil {
		fmt.Fprintf(&b, "  return (await res.json()) as %s;\n", returnType)
	}
	b.WriteString("}")
	return b.String()
}

// optionalMarker returns "?" when no parameter in the set is required, so
// the whole argument object can be omitted.
func optionalMarker(params []ir.ParameterDescriptor) string {
	for _, pd := range params {
		if pd.Required {
			return ""
		}
	}
	return "?"
}

// paramObjectType renders an inline object type over a parameter set.
func paramObjectType(params []ir.ParameterDescriptor) string {
	parts := make([]string, 0, len(params))
	for _, pd := range params {
		opt := "?"
		if pd.Required {
			opt = ""
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s",
			propertyKey(pd.Name), opt, QualifiedTypeExpr(pd.Tree, "types.")))
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// paramAccess renders the access expression for one member of an argument
// object, quoting names that are not valid identifiers.
func paramAccess(base string, optional bool, name string) string {
	if propertyKey(name) != name {
		if optional {
			return base + "?.[" + strconv.Quote(name) + "]"
		}
		return base + "[" + strconv.Quote(name) + "]"
	}
	if optional {
		return base + "?." + name
	}
	return base + "." + name
}
