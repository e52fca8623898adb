package tsemit

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// MSWPlugin emits request mock handlers: one msw handler per operation,
// responding with synthetic data from the faker factories, plus an
// aggregated handler list. It depends on the types and faker plugins.
type MSWPlugin struct {
	mocksImport string
}

// MSWOption configures the msw plugin.
type MSWOption func(*MSWPlugin)

// WithMSWMocksImport sets the module specifier the handlers import the
// faker factories from.
func WithMSWMocksImport(path string) MSWOption {
	return func(p *MSWPlugin) {
		p.mocksImport = path
	}
}

// NewMSW creates the msw plugin.
func NewMSW(opts ...MSWOption) *MSWPlugin {
	p := &MSWPlugin{mocksImport: "../faker"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements pipeline.Plugin.
func (p *MSWPlugin) Name() string { return "msw" }

// Dependencies implements pipeline.Plugin.
func (p *MSWPlugin) Dependencies() []string { return []string{"types", "faker"} }

// Setup implements pipeline.Plugin.
func (p *MSWPlugin) Setup() error {
	if p.mocksImport == "" {
		return fmt.Errorf("msw: mocks import path cannot be empty")
	}
	return nil
}

// Build emits one handler unit per operation, in source order.
func (p *MSWPlugin) Build(_ context.Context, bc *pipeline.BuildContext) error {
	if _, err := pipeline.ResultAs[map[string]string](bc, "faker"); err != nil {
		return err
	}

	header := fmt.Sprintf(`import { http, HttpResponse } from "msw";
import * as mocks from %q;`, p.mocksImport)

	for _, op := range bc.Operations() {
		handler := FuncName(op.ID) + "Handler"
		unit := ir.Unit{
			Kind:    ir.TargetOperation,
			Target:  op.ID,
			Group:   groupKey(op),
			Exports: []string{handler},
		}
		emitHeader(bc, unit, header)
		unit.Content = renderHandler(op, handler)
		bc.Emit(unit)
	}
	return nil
}

// Complete emits the aggregated handler list once every handler is known.
func (p *MSWPlugin) Complete(_ context.Context, bc *pipeline.BuildContext) error {
	var names []string
	for _, unit := range bc.Units() {
		if unit.Kind == ir.TargetOperation {
			names = append(names, unit.Exports...)
		}
	}
	if len(names) == 0 {
		return nil
	}

	bc.Emit(ir.Unit{
		Kind:     ir.TargetAggregate,
		Target:   "handlers",
		FileName: "handlers.ts",
		Content: fmt.Sprintf("export const handlers = [\n  %s,\n];",
			strings.Join(names, ",\n  ")),
		Exports: []string{"handlers"},
	})
	return nil
}

// renderHandler renders one operation's msw handler.
func renderHandler(op ir.OperationDescriptor, handler string) string {
	success := op.SuccessResponse()
	response := "new HttpResponse(null, { status: 204 })"
	if success.Tree != nil {
		response = fmt.Sprintf("HttpResponse.json(%s)", FakerExpr(success.Tree, "mocks."))
	}
	return fmt.Sprintf("export const %s = http.%s(%q, () => %s);",
		handler, op.Method, mswPath(op.Path), response)
}
