package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      tags: [pets]
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
        name:
          type: string
`

func TestSpecInputValidation(t *testing.T) {
	err := specInput{}.validate()
	require.Error(t, err, "an input is required")

	err = specInput{File: "a.yaml", Content: "{}"}.validate()
	require.Error(t, err, "two inputs are rejected")

	err = specInput{Content: "{}"}.validate()
	require.NoError(t, err)
}

func TestSpecInputSizeLimit(t *testing.T) {
	prev := cfg.MaxInlineSize
	cfg.MaxInlineSize = 8
	defer func() { cfg.MaxInlineSize = prev }()

	err := specInput{Content: "0123456789"}.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OASGEN_MAX_INLINE_SIZE")
}

func TestSanitizeError(t *testing.T) {
	err := errors.New("open /home/user/secret/openapi.yaml: no such file")
	assert.Equal(t, "open <path>: no such file", sanitizeError(err))
	assert.Equal(t, "", sanitizeError(nil))
}

func TestHandleInspect(t *testing.T) {
	res, out, err := handleInspect(context.Background(), nil, inspectInput{
		Spec: specInput{Content: petstoreYAML},
	})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "Petstore", out.Title)
	assert.Equal(t, "1.0.0", out.Version)
	assert.Equal(t, "3.0.3", out.OASVersion)
	assert.Equal(t, 1, out.OperationCount)
	assert.Equal(t, 1, out.SchemaCount)
	assert.Equal(t, []string{"Pet"}, out.Schemas)
	assert.False(t, out.Truncated)
}

func TestHandleInspectSchemaLimit(t *testing.T) {
	yaml := `
openapi: 3.0.3
info: {title: Many, version: 1.0.0}
paths: {}
components:
  schemas:
`
	for i := 0; i < 5; i++ {
		yaml += fmt.Sprintf("    Schema%d: {type: string}\n", i)
	}

	_, out, err := handleInspect(context.Background(), nil, inspectInput{
		Spec:  specInput{Content: yaml},
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, out.SchemaCount)
	assert.Len(t, out.Schemas, 2)
	assert.True(t, out.Truncated)
}

func TestHandleResolveSchema(t *testing.T) {
	res, out, err := handleResolveSchema(context.Background(), nil, resolveSchemaInput{
		Spec: specInput{Content: petstoreYAML},
		Name: "Pet",
	})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "Pet", out.TypeName)
	assert.Equal(t, "{ id: number; name: string }", out.TypeScript)
	assert.Equal(t, "z.object({ id: z.number().int(), name: z.string() })", out.Zod)
}

func TestHandleResolveSchemaUnknownName(t *testing.T) {
	res, _, err := handleResolveSchema(context.Background(), nil, resolveSchemaInput{
		Spec: specInput{Content: petstoreYAML},
		Name: "Missing",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestHandleGenerateDryRun(t *testing.T) {
	res, out, err := handleGenerate(context.Background(), nil, generateInput{
		Spec:   specInput{Content: petstoreYAML},
		DryRun: true,
	})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.True(t, out.Success)
	assert.False(t, out.Written)
	assert.Equal(t, 1, out.Schemas)
	assert.Equal(t, 1, out.Operations)
	require.NotEmpty(t, out.Files)

	paths := make([]string, 0, len(out.Files))
	for _, f := range out.Files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "types/index.ts")
	assert.Contains(t, paths, "msw/index.ts")
}

func TestHandleGenerateRequiresOutputDir(t *testing.T) {
	res, _, err := handleGenerate(context.Background(), nil, generateInput{
		Spec: specInput{Content: petstoreYAML},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestHandleGenerateWritesFiles(t *testing.T) {
	dir := t.TempDir()
	_, out, err := handleGenerate(context.Background(), nil, generateInput{
		Spec:      specInput{Content: petstoreYAML},
		OutputDir: dir,
		Plugins:   []string{"types"},
	})
	require.NoError(t, err)
	assert.True(t, out.Written)
	require.Len(t, out.Files, 1)
	assert.Equal(t, "types/index.ts", out.Files[0].Path)
}

func TestSelectPlugins(t *testing.T) {
	plugins, err := selectPlugins(nil)
	require.NoError(t, err)
	assert.Nil(t, plugins, "empty request defers to the default suite")

	plugins, err = selectPlugins([]string{"msw"})
	require.NoError(t, err)
	names := make([]string, 0, len(plugins))
	for _, p := range plugins {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"types", "faker", "msw"}, names, "dependencies come along implicitly")

	_, err = selectPlugins([]string{"bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown plugin")
}
