package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordString(t *testing.T) {
	assert.Equal(t, "string", KeywordString.String())
	assert.Equal(t, "nullish", KeywordNullish.String())
	assert.Equal(t, "Keyword(99)", Keyword(99).String())
}

func TestKeywordIsValid(t *testing.T) {
	assert.True(t, KeywordAny.IsValid())
	assert.True(t, KeywordNullish.IsValid())
	assert.False(t, Keyword(-1).IsValid())
	assert.False(t, Keyword(999).IsValid())
}

func TestKeywordClassification(t *testing.T) {
	assert.True(t, KeywordString.IsPrimary())
	assert.True(t, KeywordRef.IsPrimary())
	assert.False(t, KeywordDateTime.IsPrimary(), "format markers are not primaries")
	assert.True(t, KeywordDateTime.IsFormat())
	assert.False(t, KeywordOptional.IsPrimary())
	assert.False(t, KeywordMin.IsPrimary())
}

func TestSortSiblings_CanonicalOrder(t *testing.T) {
	// Deliberately shuffled: optional, default, bound, primary, format.
	nodes := []SchemaNode{
		{Keyword: KeywordOptional},
		{Keyword: KeywordDefault, Literal: `"x"`},
		{Keyword: KeywordMin, Bound: 1},
		{Keyword: KeywordString},
		{Keyword: KeywordDateTime},
	}
	SortSiblings(nodes)

	keywords := make([]Keyword, len(nodes))
	for i, n := range nodes {
		keywords[i] = n.Keyword
	}
	assert.Equal(t, []Keyword{KeywordString, KeywordDateTime, KeywordMin, KeywordDefault, KeywordOptional}, keywords)
}

func TestSortSiblings_StableWithinGroup(t *testing.T) {
	nodes := []SchemaNode{
		{Keyword: KeywordMin, Bound: 1},
		{Keyword: KeywordMax, Bound: 9},
	}
	SortSiblings(nodes)
	assert.Equal(t, KeywordMin, nodes[0].Keyword)
	assert.Equal(t, KeywordMax, nodes[1].Keyword)
}

func TestTreeAccessors(t *testing.T) {
	tree := NewTree(
		SchemaNode{Keyword: KeywordOptional},
		SchemaNode{Keyword: KeywordString},
	)

	require.NotNil(t, tree.Primary())
	assert.Equal(t, KeywordString, tree.Primary().Keyword)
	assert.True(t, tree.IsOptional())
	assert.False(t, tree.IsNullable())
	assert.False(t, tree.IsEmpty())
}

func TestTreeNullish(t *testing.T) {
	tree := NewTree(
		SchemaNode{Keyword: KeywordString},
		SchemaNode{Keyword: KeywordNullish},
	)
	assert.True(t, tree.IsOptional())
	assert.True(t, tree.IsNullable())
}

func TestEmptyTree(t *testing.T) {
	var nilTree *SchemaTree
	assert.True(t, nilTree.IsEmpty())
	assert.Nil(t, nilTree.Primary())
	assert.False(t, nilTree.Has(KeywordString))

	empty := &SchemaTree{}
	assert.True(t, empty.IsEmpty())
}

func TestIsJSONCompatible(t *testing.T) {
	assert.True(t, IsJSONCompatible("application/json"))
	assert.True(t, IsJSONCompatible("application/problem+json"))
	assert.False(t, IsJSONCompatible("text/plain"))
	assert.False(t, IsJSONCompatible("application/xml"))
}

func TestOperationDescriptor_Selection(t *testing.T) {
	pet := &SchemaTree{Name: "Pet", Nodes: []SchemaNode{{Keyword: KeywordRef, RefName: "Pet"}}}
	d := &OperationDescriptor{
		ID: "createPet",
		Request: []BodyVariant{
			{ContentType: "application/xml", Tree: NewTree(SchemaNode{Keyword: KeywordAny})},
			{ContentType: "application/json", Tree: pet},
		},
		Responses: []ResponseDescriptor{
			{Status: "404"},
			{Status: "201", Variants: []BodyVariant{{ContentType: "application/json", Tree: pet}}},
		},
	}

	assert.Equal(t, "application/json", d.RequestBody().ContentType)
	assert.Same(t, pet, d.RequestBody().Tree)

	success := d.SuccessResponse()
	assert.Equal(t, "application/json", success.ContentType)
	assert.Same(t, pet, success.Tree)

	require.NotNil(t, d.Response("404"))
	assert.Nil(t, d.Response("500"))
}

func TestOperationDescriptor_NoBody(t *testing.T) {
	d := &OperationDescriptor{ID: "deletePet"}
	assert.Empty(t, d.RequestBody().ContentType)
	assert.Nil(t, d.RequestBody().Tree)
	assert.Nil(t, d.SuccessResponse().Tree)
}
