package ir

import "sort"

// SchemaTree is an ordered set of sibling SchemaNodes describing one data
// shape. The first rank-0 node is the primary type; remaining siblings are
// modifiers applied in canonical order.
type SchemaTree struct {
	// Name is the definition name for named trees, empty for anonymous shapes.
	Name string
	// Nodes are the ordered siblings. An empty slice is the empty/omitted
	// tree (e.g. a union of zero members).
	Nodes []SchemaNode
}

// NewTree builds an anonymous tree over the given siblings in canonical order.
func NewTree(nodes ...SchemaNode) *SchemaTree {
	t := &SchemaTree{Nodes: nodes}
	SortSiblings(t.Nodes)
	return t
}

// IsEmpty reports whether the tree carries no nodes at all.
func (t *SchemaTree) IsEmpty() bool {
	return t == nil || len(t.Nodes) == 0
}

// Primary returns the primary type node, or nil for an empty tree.
func (t *SchemaTree) Primary() *SchemaNode {
	if t == nil {
		return nil
	}
	for i := range t.Nodes {
		if t.Nodes[i].Keyword.IsPrimary() {
			return &t.Nodes[i]
		}
	}
	return nil
}

// Find returns the first sibling with the given keyword, or nil.
func (t *SchemaTree) Find(k Keyword) *SchemaNode {
	if t == nil {
		return nil
	}
	for i := range t.Nodes {
		if t.Nodes[i].Keyword == k {
			return &t.Nodes[i]
		}
	}
	return nil
}

// Has reports whether any sibling carries the given keyword.
func (t *SchemaTree) Has(k Keyword) bool {
	return t.Find(k) != nil
}

// IsOptional reports whether the shape may be omitted entirely.
func (t *SchemaTree) IsOptional() bool {
	return t.Has(KeywordOptional) || t.Has(KeywordNullish)
}

// IsNullable reports whether the shape accepts null.
func (t *SchemaTree) IsNullable() bool {
	return t.Has(KeywordNullable) || t.Has(KeywordNullish)
}

// SortSiblings orders sibling nodes into the canonical system-wide order:
// primary/format nodes, then bounds, then default/describe, then
// optional/nullable/nullish. The sort is stable, so nodes within one group
// keep their emission order.
func SortSiblings(nodes []SchemaNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Keyword.orderRank() < nodes[j].Keyword.orderRank()
	})
}
