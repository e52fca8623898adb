// Package oasgen is a schema-driven, multi-target code generation engine for
// OpenAPI documents.
//
// Given an OpenAPI/Swagger description, oasgen derives a keyword-tagged
// intermediate representation (IR) of every data shape and operation, then
// drives an ordered set of output plugins that each emit source artifacts for
// a different consumption pattern: type declarations, runtime validators,
// HTTP clients, data-fetching hooks, mock handlers, and synthetic-data
// factories.
//
// # Packages
//
//   - document: loads and normalizes an OpenAPI document (YAML or JSON,
//     OAS 2.0 through 3.x) into a uniform query surface
//   - ir: the intermediate representation types (SchemaNode, SchemaTree,
//     OperationDescriptor, and the output Unit)
//   - resolver: walks schema definitions and operations and produces the IR,
//     with cycle-safe symbolic reference resolution
//   - pipeline: orchestrates output plugins in dependency order over the
//     shared, read-only IR
//   - output: resolves destination paths, accumulates and deduplicates file
//     content, emits index files, and materializes the file set
//   - tsemit: the built-in TypeScript output plugins
//   - goemit: the built-in Go type-declaration plugin
//   - generator: the high-level facade tying everything together
//
// # Quick Start
//
//	import "github.com/erraggy/oasgen/generator"
//
//	result, err := generator.Generate(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithOutputRoot("./generated"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
// # Command-Line Interface
//
//	# Generate all default targets
//	oasgen generate -o ./generated openapi.yaml
//
//	# Run as an MCP server over stdio
//	oasgen mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/oasgen/cmd/oasgen@latest
package oasgen
