package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/resolver"
	"github.com/erraggy/oasgen/tsemit"
)

type resolveSchemaInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document containing the schema"`
	Name string    `json:"name" jsonschema:"The named schema definition to resolve"`
}

type resolveSchemaOutput struct {
	Name       string `json:"name"`
	TypeName   string `json:"type_name"`
	TypeScript string `json:"typescript"`
	Zod        string `json:"zod"`
}

func handleResolveSchema(_ context.Context, _ *mcp.CallToolRequest, input resolveSchemaInput) (*mcp.CallToolResult, resolveSchemaOutput, error) {
	if input.Name == "" {
		return errResult(fmt.Errorf("name is required")), resolveSchemaOutput{}, nil
	}

	doc, err := input.Spec.load()
	if err != nil {
		return errResult(err), resolveSchemaOutput{}, nil
	}
	res, err := resolver.New(doc, resolver.WithEnumAsConst(cfg.EnumAsConst))
	if err != nil {
		return errResult(err), resolveSchemaOutput{}, nil
	}

	tree, ok := res.Registry().Definition(input.Name)
	if !ok {
		return errResult(fmt.Errorf("no schema definition named %q", input.Name)), resolveSchemaOutput{}, nil
	}

	output := resolveSchemaOutput{
		Name:       input.Name,
		TypeName:   tsemit.TypeName(input.Name),
		TypeScript: tsemit.TypeExpr(tree),
		Zod:        tsemit.ZodExpr(tree, tsemit.ZodOptions{}),
	}
	return nil, output, nil
}
