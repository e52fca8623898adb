// Package document loads and normalizes OpenAPI descriptions into a uniform
// query surface for the rest of the engine.
//
// The normalizer accepts YAML or JSON input covering OAS 2.0 (Swagger)
// through OAS 3.x. Older dialects are upgraded in place to the 3.x shape
// (body parameters become request bodies, definitions become component
// schemas, x-nullable becomes nullable) so downstream consumers see a single
// document model.
//
// References are kept symbolic: a $ref to a component schema is never
// inline-expanded here. The resolver package resolves names lazily, which is
// what makes cyclic and self-referential schemas safe to process.
//
// # Usage
//
//	doc, err := document.Load(document.WithFilePath("openapi.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, op := range doc.Operations() {
//	    fmt.Println(op.Method, op.Path)
//	}
package document
