package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swaggerYAML = `
swagger: "2.0"
info:
  title: Legacy
  version: 1.0.0
consumes: [application/json]
produces: [application/json]
paths:
  /pets:
    post:
      operationId: createPet
      parameters:
        - name: pet
          in: body
          required: true
          schema:
            $ref: "#/definitions/Pet"
      responses:
        "201":
          description: Created
          schema:
            $ref: "#/definitions/Pet"
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          type: integer
          format: int32
      responses:
        "200":
          description: OK
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
definitions:
  Pet:
    type: object
    required: [name]
    properties:
      name:
        type: string
`

func TestUpgradeOAS2_Definitions(t *testing.T) {
	doc, err := Load(WithBytes([]byte(swaggerYAML)))
	require.NoError(t, err)

	assert.True(t, doc.IsOAS2())
	assert.Equal(t, []string{"Pet"}, doc.SchemaNames())
	pet, ok := doc.LookupSchema("Pet")
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, pet.PropertyOrder)
}

func TestUpgradeOAS2_BodyParameter(t *testing.T) {
	doc, err := Load(WithBytes([]byte(swaggerYAML)))
	require.NoError(t, err)

	ops := doc.Operations()
	require.Len(t, ops, 2)

	// Canonical method order puts GET before POST on the same path.
	create := ops[1]
	require.Equal(t, "createPet", create.ID())

	body := create.Operation.RequestBody
	require.NotNil(t, body)
	assert.True(t, body.Required)
	require.Contains(t, body.Content, "application/json")
	assert.Equal(t, "#/definitions/Pet", body.Content["application/json"].Schema.Ref)

	// The body parameter itself must be gone from the parameter list.
	assert.Empty(t, create.Operation.Parameters)
}

func TestUpgradeOAS2_ResponseSchema(t *testing.T) {
	doc, err := Load(WithBytes([]byte(swaggerYAML)))
	require.NoError(t, err)

	list := doc.Operations()[0]
	require.Equal(t, "listPets", list.ID())

	resp := list.Operation.Responses["200"]
	require.NotNil(t, resp)
	assert.Nil(t, resp.Schema, "OAS2 schema should be moved into content")
	require.Contains(t, resp.Content, "application/json")
	assert.Equal(t, "array", resp.Content["application/json"].Schema.Type)
}

func TestUpgradeOAS2_InlineParameterType(t *testing.T) {
	doc, err := Load(WithBytes([]byte(swaggerYAML)))
	require.NoError(t, err)

	list := doc.Operations()[0]
	params := list.EffectiveParameters()
	require.Len(t, params, 1)
	require.NotNil(t, params[0].Schema)
	assert.Equal(t, "integer", params[0].Schema.Type)
	assert.Equal(t, "int32", params[0].Schema.Format)
}

func TestUpgradeOAS2_Disabled(t *testing.T) {
	doc, err := Load(WithBytes([]byte(swaggerYAML)), WithUpgrade(false))
	require.NoError(t, err)

	assert.Empty(t, doc.SchemaNames())
	create := doc.Paths["/pets"].Post
	assert.Nil(t, create.RequestBody)
	require.Len(t, create.Parameters, 1)
	assert.Equal(t, "body", create.Parameters[0].In)
}
