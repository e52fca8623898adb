// Package generator is the high-level facade over the full generation
// engine: it loads an OpenAPI document, resolves it into the keyword
// intermediate representation, runs the registered output plugins through
// the pipeline, and materializes the result through the output manager.
//
// Basic usage with the default TypeScript plugin suite:
//
//	result, err := generator.Generate(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithOutputRoot("generated"),
//	)
//
// Custom plugin sets, per-plugin layouts and filters, post-build hooks, and
// dry runs (accumulate files in memory without touching disk) are all
// configured through functional options.
package generator
