package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/resolver"
)

type inspectInput struct {
	Spec  specInput `json:"spec"            jsonschema:"The OAS document to inspect"`
	Limit int       `json:"limit,omitempty" jsonschema:"Maximum number of schema names to return (default: OASGEN_SCHEMA_LIMIT)"`
}

type inspectOutput struct {
	Title          string   `json:"title"`
	Version        string   `json:"version"`
	OASVersion     string   `json:"oas_version"`
	OperationCount int      `json:"operation_count"`
	SchemaCount    int      `json:"schema_count"`
	Schemas        []string `json:"schemas,omitempty"`
	Truncated      bool     `json:"truncated,omitempty"`
	WarningCount   int      `json:"warning_count"`
	ErrorCount     int      `json:"error_count"`
	CriticalCount  int      `json:"critical_count"`
	Issues         []string `json:"issues,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	doc, err := input.Spec.load()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	res, err := resolver.New(doc, resolver.WithEnumAsConst(cfg.EnumAsConst))
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	registry := res.Registry()
	operations := res.Operations(resolver.Filters{})

	names := registry.Names()
	limit := input.Limit
	if limit <= 0 {
		limit = cfg.SchemaLimit
	}
	truncated := len(names) > limit
	listed := names
	if truncated {
		listed = names[:limit]
	}

	output := inspectOutput{
		Title:          doc.Title(),
		Version:        doc.Version(),
		OASVersion:     oasVersion(doc.OpenAPI, doc.Swagger),
		OperationCount: len(operations),
		SchemaCount:    len(names),
		Schemas:        listed,
		Truncated:      truncated,
	}

	list := res.Issues()
	output.Issues = makeSlice[string](len(list))
	for _, issue := range list {
		output.Issues = append(output.Issues, issue.String())
	}
	_, output.WarningCount, output.ErrorCount, output.CriticalCount = issues.CountBySeverity(list)
	return nil, output, nil
}

// oasVersion returns the literal version declaration, whichever dialect
// declared it.
func oasVersion(openapi, swagger string) string {
	if openapi != "" {
		return openapi
	}
	return swagger
}
