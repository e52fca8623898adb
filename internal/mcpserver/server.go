// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasgen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasgen"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasgen MCP server — inspects OpenAPI specs and generates TypeScript or Go artifacts from them.

Configuration: All defaults are configurable via OASGEN_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASGEN_MAX_INLINE_SIZE (default: 4194304) — inline spec content cap in bytes
- OASGEN_SCHEMA_LIMIT (default: 100) — default schema listing limit for inspect
- OASGEN_ENUM_AS_CONST (default: false) — resolve single-member enums as constants

Workflow: use inspect to get a structural summary of a spec, resolve_schema to preview the TypeScript shape of one named schema, and generate to produce the full output tree.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgen", Version: oasgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect an OpenAPI Specification document. Returns a structural summary: title, version, OAS version, operation and schema counts, and the named schema definitions with any resolution issues. Use limit to cap the schema listing (default configurable via OASGEN_SCHEMA_LIMIT).",
	}, handleInspect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_schema",
		Description: "Resolve one named schema definition and return its generated TypeScript type and zod validator expressions. Useful for previewing how a schema will come out before running a full generation.",
	}, handleResolveSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate code from an OpenAPI Specification document using the default TypeScript plugin suite (types, zod, client, query, faker, msw) or a named subset via plugins. Requires output_dir unless dry_run is set. Returns a manifest of generated files and any resolution issues.",
	}, handleGenerate)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
