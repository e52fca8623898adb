package tsemit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// QueryPlugin emits data-fetching hooks over the generated client: one
// useQuery wrapper per GET operation. It depends on the client plugin and
// resolves function names from its published result.
type QueryPlugin struct {
	clientImport string
}

// QueryOption configures the query plugin.
type QueryOption func(*QueryPlugin)

// WithQueryClientImport sets the module specifier the hooks import the
// generated client from.
func WithQueryClientImport(path string) QueryOption {
	return func(p *QueryPlugin) {
		p.clientImport = path
	}
}

// NewQuery creates the query plugin.
func NewQuery(opts ...QueryOption) *QueryPlugin {
	p := &QueryPlugin{clientImport: "../client"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements pipeline.Plugin.
func (p *QueryPlugin) Name() string { return "query" }

// Dependencies implements pipeline.Plugin.
func (p *QueryPlugin) Dependencies() []string { return []string{"client"} }

// Setup implements pipeline.Plugin.
func (p *QueryPlugin) Setup() error {
	if p.clientImport == "" {
		return fmt.Errorf("query: client import path cannot be empty")
	}
	return nil
}

// Build emits one hook unit per GET operation, in source order.
func (p *QueryPlugin) Build(_ context.Context, bc *pipeline.BuildContext) error {
	clientFuncs, err := pipeline.ResultAs[map[string]string](bc, "client")
	if err != nil {
		return err
	}

	header := fmt.Sprintf(`import { useQuery } from "@tanstack/react-query";
import * as client from %q;
import type * as types from "../types";`, p.clientImport)

	for _, op := range bc.Operations() {
		if op.Method != "get" {
			continue
		}
		clientFn, ok := clientFuncs[op.ID]
		if !ok {
			// The client's filters excluded this operation; nothing to wrap.
			continue
		}

		hook := "use" + naming.ToPascalCase(clientFn)
		unit := ir.Unit{
			Kind:    ir.TargetOperation,
			Target:  op.ID,
			Group:   groupKey(op),
			Exports: []string{hook},
		}
		emitHeader(bc, unit, header)
		unit.Content = renderQueryHook(op, hook, clientFn)
		bc.Emit(unit)
	}
	return nil
}

// Complete implements pipeline.Plugin.
func (p *QueryPlugin) Complete(context.Context, *pipeline.BuildContext) error {
	return nil
}

// renderQueryHook renders one operation's useQuery wrapper.
func renderQueryHook(op ir.OperationDescriptor, hook, clientFn string) string {
	var params, keyParts, args []string
	keyParts = append(keyParts, strconv.Quote(clientFn))

	for _, pd := range op.PathParams {
		name := FuncName(pd.Name)
		params = append(params, fmt.Sprintf("%s: %s",
			name, QualifiedTypeExpr(pd.Tree, "types.")))
		keyParts = append(keyParts, name)
		args = append(args, name)
	}
	if len(op.QueryParams) > 0 {
		params = append(params, "query"+optionalMarker(op.QueryParams)+": "+paramObjectType(op.QueryParams))
		keyParts = append(keyParts, "query")
		args = append(args, "query")
	}

	var b strings.Builder
	if op.Summary != "" {
		b.WriteString(docComment(op.Summary))
	}
	fmt.Fprintf(&b, "export function %s(%s) {\n", hook, strings.Join(params, ", "))
	fmt.Fprintf(&b, "  return useQuery({\n    queryKey: [%s],\n    queryFn: () => client.%s(%s),\n  });\n}",
		strings.Join(keyParts, ", "), clientFn, strings.Join(args, ", "))
	return b.String()
}
