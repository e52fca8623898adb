package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/internal/severity"
	"github.com/erraggy/oasgen/ir"
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
  /pets/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: integer
    get:
      operationId: getPetById
      tags: [pets]
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
        tag:
          type: string
`

func loadDoc(t *testing.T, source string) *document.Document {
	t.Helper()
	doc, err := document.Load(document.WithBytes([]byte(source)))
	require.NoError(t, err)
	return doc
}

func newResolver(t *testing.T, source string, opts ...Option) *Resolver {
	t.Helper()
	r, err := New(loadDoc(t, source), opts...)
	require.NoError(t, err)
	return r
}

func TestRegistryPetDefinition(t *testing.T) {
	r := newResolver(t, petstoreYAML)
	reg := r.Registry()

	require.Equal(t, []string{"Pet"}, reg.Names())
	pet, ok := reg.Definition("Pet")
	require.True(t, ok)
	require.Equal(t, "Pet", pet.Name)

	obj := pet.Primary()
	require.NotNil(t, obj)
	require.Equal(t, ir.KeywordObject, obj.Keyword)
	require.Len(t, obj.Props, 3)

	assert.Equal(t, "id", obj.Props[0].Name)
	assert.Equal(t, ir.KeywordInteger, obj.Props[0].Tree.Primary().Keyword)
	assert.False(t, obj.Props[0].Tree.IsOptional())

	assert.Equal(t, "name", obj.Props[1].Name)
	assert.Equal(t, ir.KeywordString, obj.Props[1].Tree.Primary().Keyword)
	assert.False(t, obj.Props[1].Tree.IsOptional())

	assert.Equal(t, "tag", obj.Props[2].Name)
	assert.Equal(t, ir.KeywordString, obj.Props[2].Tree.Primary().Keyword)
	assert.True(t, obj.Props[2].Tree.IsOptional())
}

func TestOperationsShareReferenceInstances(t *testing.T) {
	r := newResolver(t, petstoreYAML)
	ops := r.Operations(Filters{})
	require.Len(t, ops, 2)

	listPets, getPet := ops[0], ops[1]
	require.Equal(t, "listPets", listPets.ID)
	require.Equal(t, "getPetById", getPet.ID)

	// Every use site of Pet resolves to the same tree instance.
	listBody := listPets.SuccessResponse()
	require.NotNil(t, listBody.Tree)
	arr := listBody.Tree.Primary()
	require.Equal(t, ir.KeywordArray, arr.Keyword)
	require.Equal(t, ir.KeywordRef, arr.Items.Nodes[0].Keyword)
	require.Equal(t, "Pet", arr.Items.Nodes[0].RefName)

	getBody := getPet.SuccessResponse()
	require.NotNil(t, getBody.Tree)
	assert.Same(t, arr.Items, getBody.Tree)
	assert.Same(t, r.Registry().Ref("Pet"), getBody.Tree)
}

func TestOperationParameters(t *testing.T) {
	r := newResolver(t, petstoreYAML)
	ops := r.Operations(Filters{})
	require.Len(t, ops, 2)

	listPets := ops[0]
	require.Len(t, listPets.QueryParams, 1)
	assert.Equal(t, "limit", listPets.QueryParams[0].Name)
	assert.False(t, listPets.QueryParams[0].Required)
	assert.Equal(t, ir.KeywordInteger, listPets.QueryParams[0].Tree.Primary().Keyword)

	getPet := ops[1]
	require.Len(t, getPet.PathParams, 1)
	assert.Equal(t, "id", getPet.PathParams[0].Name)
	assert.True(t, getPet.PathParams[0].Required)
	assert.Empty(t, getPet.Request, "bodyless operation still yields a descriptor")
}

func TestCycleSafety(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Cyclic, version: 1.0.0}
paths: {}
components:
  schemas:
    A:
      type: object
      properties:
        b:
          $ref: "#/components/schemas/B"
    B:
      type: object
      properties:
        a:
          $ref: "#/components/schemas/A"
    Node:
      type: object
      properties:
        children:
          type: array
          items:
            $ref: "#/components/schemas/Node"
`
	r := newResolver(t, source)
	reg := r.Registry()

	a, ok := reg.Definition("A")
	require.True(t, ok)
	b, ok := reg.Definition("B")
	require.True(t, ok)

	aProp := a.Primary().Props[0].Tree
	require.Equal(t, ir.KeywordRef, aProp.Nodes[0].Keyword)
	assert.Equal(t, "B", aProp.Nodes[0].RefName)

	bProp := b.Primary().Props[0].Tree
	require.Equal(t, ir.KeywordRef, bProp.Nodes[0].Keyword)
	assert.Equal(t, "A", bProp.Nodes[0].RefName)

	node, ok := reg.Definition("Node")
	require.True(t, ok)
	children := node.Primary().Props[0].Tree.Primary()
	require.Equal(t, ir.KeywordArray, children.Keyword)
	assert.Equal(t, "Node", children.Items.Nodes[0].RefName)
	assert.Same(t, reg.Ref("Node"), children.Items)
}

func TestUnionCollapse(t *testing.T) {
	const source = `
openapi: 3.1.0
info: {title: Unions, version: 1.0.0}
paths: {}
components:
  schemas:
    Single:
      oneOf:
        - type: string
    Empty:
      oneOf: []
    Pair:
      oneOf:
        - type: string
        - type: integer
`
	r := newResolver(t, source)
	reg := r.Registry()

	single, _ := reg.Definition("Single")
	require.NotNil(t, single.Primary())
	assert.Equal(t, ir.KeywordString, single.Primary().Keyword)

	empty, _ := reg.Definition("Empty")
	assert.True(t, empty.IsEmpty())

	pair, _ := reg.Definition("Pair")
	union := pair.Primary()
	require.Equal(t, ir.KeywordUnion, union.Keyword)
	require.Len(t, union.Members, 2)
	assert.Equal(t, ir.KeywordString, union.Members[0].Primary().Keyword)
	assert.Equal(t, ir.KeywordInteger, union.Members[1].Primary().Keyword)
}

func TestEnumResolution(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Enums, version: 1.0.0}
paths: {}
components:
  schemas:
    Status:
      type: string
      enum: [available, pending, sold]
    Mixed:
      enum: [ok, 1, true]
    WithNull:
      type: string
      enum: [a, b, null]
    Only:
      type: string
      enum: [fixed]
`
	r := newResolver(t, source)
	reg := r.Registry()

	status, _ := reg.Definition("Status")
	enum := status.Find(ir.KeywordEnum)
	require.NotNil(t, enum)
	assert.Equal(t, []string{`"available"`, `"pending"`, `"sold"`}, enum.Values)

	mixed, _ := reg.Definition("Mixed")
	union := mixed.Find(ir.KeywordUnion)
	require.NotNil(t, union)
	require.Len(t, union.Members, 3)
	assert.Equal(t, `"ok"`, union.Members[0].Nodes[0].Literal)
	assert.Equal(t, `1`, union.Members[1].Nodes[0].Literal)
	assert.Equal(t, `true`, union.Members[2].Nodes[0].Literal)

	withNull, _ := reg.Definition("WithNull")
	require.NotNil(t, withNull.Find(ir.KeywordEnum))
	assert.True(t, withNull.IsNullable())

	only, _ := reg.Definition("Only")
	assert.NotNil(t, only.Find(ir.KeywordEnum), "single member stays an enum by default")
}

func TestEnumAsConst(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Enums, version: 1.0.0}
paths: {}
components:
  schemas:
    Only:
      type: string
      enum: [fixed]
`
	r := newResolver(t, source, WithEnumAsConst(true))
	only, _ := r.Registry().Definition("Only")
	c := only.Find(ir.KeywordConst)
	require.NotNil(t, c)
	assert.Equal(t, `"fixed"`, c.Literal)
}

func TestFallbackToAny(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Fallbacks, version: 1.0.0}
paths: {}
components:
  schemas:
    BareArray:
      type: array
    Dangling:
      $ref: "#/components/schemas/Missing"
    External:
      $ref: "https://example.com/schemas.yaml#/Pet"
`
	r := newResolver(t, source)
	reg := r.Registry()

	for _, name := range []string{"BareArray", "Dangling", "External"} {
		tree, ok := reg.Definition(name)
		require.True(t, ok, name)
		assert.Equal(t, ir.KeywordAny, tree.Primary().Keyword, name)
	}

	require.NotEmpty(t, r.Issues())
	for _, issue := range r.Issues() {
		assert.Equal(t, severity.SeverityWarning, issue.Severity)
	}
}

func TestDiscriminatorRequiresNamedMembers(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Polymorphic, version: 1.0.0}
paths:
  /choose:
    post:
      operationId: choose
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                discriminator:
                  propertyName: kind
                oneOf:
                  - $ref: "#/components/schemas/Cat"
                  - type: object
                    properties:
                      kind:
                        type: string
  /cats:
    get:
      operationId: listCats
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Cat"
components:
  schemas:
    Cat:
      type: object
      properties:
        kind:
          type: string
`
	r := newResolver(t, source)
	ops := r.Operations(Filters{})

	// The failing operation is skipped; the rest of the document resolves.
	require.Len(t, ops, 1)
	assert.Equal(t, "listCats", ops[0].ID)

	var reported bool
	for _, issue := range r.Issues() {
		if issue.Operation == "choose" && issue.Severity == severity.SeverityError {
			reported = true
		}
	}
	assert.True(t, reported, "expected an error issue for the skipped operation")
}

func TestValidDiscriminatedUnion(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Polymorphic, version: 1.0.0}
paths: {}
components:
  schemas:
    Cat:
      type: object
      properties:
        kind: {type: string}
    Dog:
      type: object
      properties:
        kind: {type: string}
    Animal:
      discriminator:
        propertyName: kind
      oneOf:
        - $ref: "#/components/schemas/Cat"
        - $ref: "#/components/schemas/Dog"
`
	r := newResolver(t, source)
	animal, _ := r.Registry().Definition("Animal")
	union := animal.Find(ir.KeywordUnion)
	require.NotNil(t, union)
	require.Len(t, union.Members, 2)
	assert.Equal(t, "Cat", union.Members[0].Nodes[0].RefName)
	assert.Equal(t, "Dog", union.Members[1].Nodes[0].RefName)
}

func TestNullishCollapse(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Nullish, version: 1.0.0}
paths: {}
components:
  schemas:
    Form:
      type: object
      properties:
        note:
          type: string
          nullable: true
`
	r := newResolver(t, source)
	form, _ := r.Registry().Definition("Form")
	note := form.Primary().Props[0].Tree

	assert.True(t, note.Has(ir.KeywordNullish))
	assert.False(t, note.Has(ir.KeywordOptional))
	assert.False(t, note.Has(ir.KeywordNullable))
	assert.True(t, note.IsOptional())
	assert.True(t, note.IsNullable())
}

func TestRedundantNullabilityCollapsed(t *testing.T) {
	const source = `
openapi: 3.1.0
info: {title: Nullable, version: 1.0.0}
paths: {}
components:
  schemas:
    Status:
      type: string
      nullable: true
      enum: [available, sold, null]
    Label:
      type: ["string", "null"]
      nullable: true
`
	r := newResolver(t, source)

	for _, name := range []string{"Status", "Label"} {
		tree, ok := r.Registry().Definition(name)
		require.True(t, ok, name)
		count := 0
		for _, n := range tree.Nodes {
			if n.Keyword == ir.KeywordNullable {
				count++
			}
		}
		assert.Equal(t, 1, count, "%s carries exactly one nullable sibling", name)
	}
}

func TestReferenceWithSiblingModifiers(t *testing.T) {
	const source = `
openapi: 3.1.0
info: {title: RefMods, version: 1.0.0}
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        name: {type: string}
    Wrapped:
      type: object
      required: [pet]
      properties:
        pet:
          $ref: "#/components/schemas/Pet"
          description: the wrapped pet
`
	r := newResolver(t, source)
	reg := r.Registry()

	wrapped, _ := reg.Definition("Wrapped")
	pet := wrapped.Primary().Props[0].Tree

	require.Equal(t, ir.KeywordRef, pet.Nodes[0].Keyword)
	assert.Equal(t, "Pet", pet.Nodes[0].RefName)
	require.NotNil(t, pet.Find(ir.KeywordDescribe))
	assert.NotSame(t, reg.Ref("Pet"), pet, "modified references never share the memoized instance")
}

func TestNumericBounds(t *testing.T) {
	const source = `
openapi: 3.1.0
info: {title: Bounds, version: 1.0.0}
paths: {}
components:
  schemas:
    Legacy:
      type: integer
      minimum: 1
      maximum: 10
      exclusiveMaximum: true
    Modern:
      type: number
      exclusiveMinimum: 0.5
    Sized:
      type: string
      minLength: 2
      maxLength: 8
      pattern: "^[a-z]+$"
`
	r := newResolver(t, source)
	reg := r.Registry()

	legacy, _ := reg.Definition("Legacy")
	minNode := legacy.Find(ir.KeywordMin)
	require.NotNil(t, minNode)
	assert.Equal(t, 1.0, minNode.Bound)
	assert.False(t, minNode.Exclusive)
	maxNode := legacy.Find(ir.KeywordMax)
	require.NotNil(t, maxNode)
	assert.Equal(t, 10.0, maxNode.Bound)
	assert.True(t, maxNode.Exclusive)

	modern, _ := reg.Definition("Modern")
	minNode = modern.Find(ir.KeywordMin)
	require.NotNil(t, minNode)
	assert.Equal(t, 0.5, minNode.Bound)
	assert.True(t, minNode.Exclusive)

	sized, _ := reg.Definition("Sized")
	assert.Equal(t, 2.0, sized.Find(ir.KeywordMin).Bound)
	assert.Equal(t, 8.0, sized.Find(ir.KeywordMax).Bound)
	assert.Equal(t, "^[a-z]+$", sized.Find(ir.KeywordPattern).Pattern)
}

func TestTypeArraysAndTuples(t *testing.T) {
	const source = `
openapi: 3.1.0
info: {title: Modern, version: 1.0.0}
paths: {}
components:
  schemas:
    MaybeName:
      type: [string, "null"]
    Point:
      type: array
      prefixItems:
        - type: number
        - type: number
    Lookup:
      type: object
      additionalProperties:
        type: string
`
	r := newResolver(t, source)
	reg := r.Registry()

	maybe, _ := reg.Definition("MaybeName")
	assert.Equal(t, ir.KeywordString, maybe.Primary().Keyword)
	assert.True(t, maybe.IsNullable())

	point, _ := reg.Definition("Point")
	tuple := point.Primary()
	require.Equal(t, ir.KeywordTuple, tuple.Keyword)
	require.Len(t, tuple.Elems, 2)
	assert.Equal(t, ir.KeywordNumber, tuple.Elems[0].Primary().Keyword)

	lookup, _ := reg.Definition("Lookup")
	record := lookup.Primary()
	require.Equal(t, ir.KeywordRecord, record.Keyword)
	require.NotNil(t, record.Catchall)
	assert.Equal(t, ir.KeywordString, record.Catchall.Primary().Keyword)
}

func TestIntersection(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Composition, version: 1.0.0}
paths: {}
components:
  schemas:
    Base:
      type: object
      properties:
        id: {type: integer}
    Extended:
      allOf:
        - $ref: "#/components/schemas/Base"
        - type: object
          properties:
            extra: {type: string}
    Unwrapped:
      allOf:
        - $ref: "#/components/schemas/Base"
`
	r := newResolver(t, source)
	reg := r.Registry()

	extended, _ := reg.Definition("Extended")
	intersect := extended.Primary()
	require.Equal(t, ir.KeywordIntersect, intersect.Keyword)
	require.Len(t, intersect.Members, 2)
	assert.Equal(t, "Base", intersect.Members[0].Nodes[0].RefName)
	assert.Equal(t, ir.KeywordObject, intersect.Members[1].Primary().Keyword)

	unwrapped, _ := reg.Definition("Unwrapped")
	require.Equal(t, ir.KeywordRef, unwrapped.Nodes[0].Keyword)
	assert.Equal(t, "Base", unwrapped.Nodes[0].RefName)
}

func TestPointerInlinedNamedSchemas(t *testing.T) {
	// A programmatically built, pre-dereferenced document: the response
	// schema is the same *Schema pointer held under components.
	pet := &document.Schema{
		Type:          "object",
		Required:      []string{"id"},
		Properties:    map[string]*document.Schema{"id": {Type: "integer"}},
		PropertyOrder: []string{"id"},
	}
	doc := &document.Document{
		OpenAPI: "3.0.3",
		Components: &document.Components{
			Schemas: map[string]*document.Schema{"Pet": pet},
		},
		Paths: map[string]*document.PathItem{
			"/pets/{id}": {
				Get: &document.Operation{
					OperationID: "getPetById",
					Responses: map[string]*document.Response{
						"200": {
							Description: "OK",
							Content: map[string]*document.MediaType{
								"application/json": {Schema: pet},
							},
							ContentOrder: []string{"application/json"},
						},
					},
					ResponseOrder: []string{"200"},
				},
			},
		},
	}

	r, err := New(doc)
	require.NoError(t, err)
	ops := r.Operations(Filters{})
	require.Len(t, ops, 1)

	body := ops[0].SuccessResponse()
	require.NotNil(t, body.Tree)
	require.Equal(t, ir.KeywordRef, body.Tree.Nodes[0].Keyword)
	assert.Equal(t, "Pet", body.Tree.Nodes[0].RefName)
	assert.Same(t, r.Registry().Ref("Pet"), body.Tree)
}

func TestSiblingOrderIsCanonical(t *testing.T) {
	const source = `
openapi: 3.0.3
info: {title: Ordering, version: 1.0.0}
paths: {}
components:
  schemas:
    Field:
      description: a constrained field
      default: abc
      minLength: 1
      type: string
      nullable: true
`
	r := newResolver(t, source)
	field, _ := r.Registry().Definition("Field")

	var keywords []ir.Keyword
	for _, n := range field.Nodes {
		keywords = append(keywords, n.Keyword)
	}
	assert.Equal(t, []ir.Keyword{
		ir.KeywordString,
		ir.KeywordMin,
		ir.KeywordDefault,
		ir.KeywordDescribe,
		ir.KeywordNullable,
	}, keywords)
}
