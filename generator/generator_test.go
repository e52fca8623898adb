package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/goemit"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/output"
	"github.com/erraggy/oasgen/resolver"
	"github.com/erraggy/oasgen/tsemit"
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
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
    post:
      operationId: createPet
      tags: [pets]
      requestBody:
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/NewPet"
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
  /pets/{id}:
    get:
      operationId: getPetById
      tags: [admin]
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: integer
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
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
    NewPet:
      type: object
      required: [name]
      properties:
        name:
          type: string
`

func fileByPath(t *testing.T, files []output.File, path string) output.File {
	t.Helper()
	for _, f := range files {
		if f.Path == path {
			return f
		}
	}
	t.Fatalf("no file at %s", path)
	return output.File{}
}

func TestGenerateDefaultSuiteDryRun(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
	)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.Written)
	assert.Equal(t, "3.0.3", result.SourceVersion)
	assert.Equal(t, 2, result.ResolvedSchemas)
	assert.Equal(t, 3, result.ResolvedOperations)
	require.Len(t, result.Files, 6)

	types := fileByPath(t, result.Files, "types/index.ts")
	assert.Contains(t, types.Content, "export type Pet = { id: number; name: string };")
	assert.Equal(t, []string{"Pet", "NewPet"}, types.Exports)

	zod := fileByPath(t, result.Files, "zod/index.ts")
	assert.Contains(t, zod.Content, `import { z } from "zod";`)
	assert.Contains(t, zod.Content, "export const PetSchema = z.object(")

	client := fileByPath(t, result.Files, "client/index.ts")
	assert.Contains(t, client.Content, `import type * as types from "../types";`)
	assert.Contains(t, client.Content, "export async function listPets(")

	query := fileByPath(t, result.Files, "query/index.ts")
	assert.Contains(t, query.Content, "export function useListPets(")
	assert.NotContains(t, query.Content, "useCreatePet", "only GET operations get hooks")

	msw := fileByPath(t, result.Files, "msw/index.ts")
	assert.Contains(t, msw.Content, "export const handlers = [")

	require.Len(t, result.Manifest, 6)
	assert.Equal(t, "types/index.ts", result.Manifest[0].Path)
	assert.Equal(t, types.Size(), result.Manifest[0].Size)
}

func TestGenerateOutputIsDeterministic(t *testing.T) {
	run := func() []output.File {
		result, err := Generate(
			WithBytes([]byte(petstoreYAML)),
			WithDryRun(true),
		)
		require.NoError(t, err)
		require.True(t, result.Success)
		return result.Files
	}

	// Plugins at the same dependency level build concurrently, so repeated
	// runs over the same document must still land on identical file sets.
	first := run()
	require.Len(t, first, 6)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, run())
	}
}

func TestGenerateWritesFiles(t *testing.T) {
	root := t.TempDir()
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithOutputRoot(root),
	)
	require.NoError(t, err)
	assert.True(t, result.Written)

	data, err := os.ReadFile(filepath.Join(root, "types", "index.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export type Pet")
}

func TestGenerateCustomPlugin(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
		WithPlugin(goemit.NewTypes(goemit.WithPackage("petstore"))),
	)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	assert.Equal(t, "types.go", result.Files[0].Path)
	assert.Contains(t, result.Files[0].Content, "package petstore")
}

func TestGenerateLayoutOverride(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
		WithPlugin(goemit.NewTypes()),
		WithLayout("gotypes", output.Layout{SubPath: "go", Ext: ".go"}),
	)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "go/types.go", result.Files[0].Path)
}

func TestGenerateGlobalFilters(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
		WithFilters(resolver.Filters{
			Include: resolver.FilterSet{Tags: []string{"pets"}},
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ResolvedOperations, "the admin-tagged operation is filtered out")

	client := fileByPath(t, result.Files, "client/index.ts")
	assert.NotContains(t, client.Content, "getPetById")
}

func TestGeneratePerPluginFilters(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
		WithPluginFilters("client", resolver.Filters{
			Exclude: resolver.FilterSet{Methods: []string{"post"}},
		}),
	)
	require.NoError(t, err)

	client := fileByPath(t, result.Files, "client/index.ts")
	assert.NotContains(t, client.Content, "createPet")
	msw := fileByPath(t, result.Files, "msw/index.ts")
	assert.Contains(t, msw.Content, "createPetHandler", "other plugins keep the full set")
}

func TestGenerateInputValidation(t *testing.T) {
	_, err := Generate(WithDryRun(true))
	require.Error(t, err, "an input source is required")

	_, err = Generate(
		WithBytes([]byte(petstoreYAML)),
		WithFilePath("openapi.yaml"),
	)
	require.Error(t, err, "two input sources are rejected")
}

func TestGeneratePartialResultOnPluginFailure(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
		WithPlugin(tsemit.NewQuery()),
	)
	require.Error(t, err, "query declares a dependency on an unregistered client")

	var cfgErr *oaserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Empty(t, result.Files, "partial output is never accumulated as files")
}

func TestWriteManifest(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, result.WriteManifest(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []output.ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 6)
	assert.Equal(t, "types/index.ts", entries[0].Path)
	assert.Equal(t, []string{"Pet", "NewPet"}, entries[0].Exports)
}

func TestGenerateSummary(t *testing.T) {
	result, err := Generate(
		WithBytes([]byte(petstoreYAML)),
		WithDryRun(true),
	)
	require.NoError(t, err)

	summary := result.Summary()
	assert.True(t, strings.HasPrefix(summary, "generation succeeded:"), summary)
	assert.Contains(t, summary, "6 files")
}
