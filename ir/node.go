package ir

import "fmt"

// Keyword tags a SchemaNode with its variant. The set is closed: consumers
// switch exhaustively over it, so adding a keyword is a single, localized,
// compile-time-checked change.
type Keyword int

const (
	// KeywordAny is the fallback for unresolvable or structurally invalid
	// schemas. It is always a valid primary.
	KeywordAny Keyword = iota

	// KeywordString is the string primitive.
	KeywordString
	// KeywordNumber is the floating-point number primitive.
	KeywordNumber
	// KeywordInteger is the integer primitive.
	KeywordInteger
	// KeywordBoolean is the boolean primitive.
	KeywordBoolean
	// KeywordNull is the null literal type.
	KeywordNull

	// KeywordObject is an object with named properties.
	KeywordObject
	// KeywordArray is a homogeneous array.
	KeywordArray
	// KeywordTuple is a fixed-length positional array.
	KeywordTuple
	// KeywordRecord is an additional-properties catch-all map.
	KeywordRecord
	// KeywordEnum is a closed set of same-typed literal values.
	KeywordEnum
	// KeywordUnion is a "one of"/"any of" composition.
	KeywordUnion
	// KeywordIntersect is an "all of" composition.
	KeywordIntersect
	// KeywordRef is a symbolic reference to a named definition.
	KeywordRef
	// KeywordConst is a single literal constant.
	KeywordConst

	// KeywordDateTime marks a string as an RFC 3339 date-time.
	KeywordDateTime
	// KeywordUUID marks a string as a UUID.
	KeywordUUID
	// KeywordURL marks a string as a URL.
	KeywordURL
	// KeywordEmail marks a string as an email address.
	KeywordEmail

	// KeywordMin is a lower bound (value, length, or item count,
	// depending on the primary).
	KeywordMin
	// KeywordMax is an upper bound.
	KeywordMax
	// KeywordPattern is a regular-expression constraint.
	KeywordPattern

	// KeywordDefault carries a serialized default value.
	KeywordDefault
	// KeywordDescribe carries a description.
	KeywordDescribe

	// KeywordOptional marks the shape as omittable.
	KeywordOptional
	// KeywordNullable marks the shape as accepting null.
	KeywordNullable
	// KeywordNullish marks the shape as both omittable and accepting null.
	KeywordNullish
)

// keywordNames indexes String() representations by Keyword value.
var keywordNames = [...]string{
	KeywordAny:       "any",
	KeywordString:    "string",
	KeywordNumber:    "number",
	KeywordInteger:   "integer",
	KeywordBoolean:   "boolean",
	KeywordNull:      "null",
	KeywordObject:    "object",
	KeywordArray:     "array",
	KeywordTuple:     "tuple",
	KeywordRecord:    "record",
	KeywordEnum:      "enum",
	KeywordUnion:     "union",
	KeywordIntersect: "intersect",
	KeywordRef:       "ref",
	KeywordConst:     "const",
	KeywordDateTime:  "datetime",
	KeywordUUID:      "uuid",
	KeywordURL:       "url",
	KeywordEmail:     "email",
	KeywordMin:       "min",
	KeywordMax:       "max",
	KeywordPattern:   "pattern",
	KeywordDefault:   "default",
	KeywordDescribe:  "describe",
	KeywordOptional:  "optional",
	KeywordNullable:  "nullable",
	KeywordNullish:   "nullish",
}

// String returns a string representation of the keyword.
func (k Keyword) String() string {
	if k >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("Keyword(%d)", int(k))
}

// IsValid returns true if the keyword is one of the defined constants.
func (k Keyword) IsValid() bool {
	return k >= KeywordAny && k <= KeywordNullish
}

// orderRank assigns each keyword its canonical sibling position group.
// The ordering is a contract plugins depend on, taken as given rather than
// derived: primary and format nodes first, then bounds, then
// default/describe, then optional/nullable/nullish last.
func (k Keyword) orderRank() int {
	switch k {
	case KeywordMin, KeywordMax, KeywordPattern:
		return 1
	case KeywordDefault, KeywordDescribe:
		return 2
	case KeywordOptional, KeywordNullable, KeywordNullish:
		return 3
	default:
		return 0
	}
}

// IsPrimary reports whether the keyword can stand alone as a type expression.
func (k Keyword) IsPrimary() bool {
	return k.orderRank() == 0 && !k.IsFormat()
}

// IsFormat reports whether the keyword is a format marker attached to a
// string primary.
func (k Keyword) IsFormat() bool {
	switch k {
	case KeywordDateTime, KeywordUUID, KeywordURL, KeywordEmail:
		return true
	}
	return false
}

// Property is one named member of an object node. Optionality is expressed
// on the property's tree (a KeywordOptional sibling), not here.
type Property struct {
	// Name is the wire property name.
	Name string
	// Tree is the property's shape.
	Tree *SchemaTree
}

// SchemaNode is one keyword-tagged node in a schema tree. Only the fields
// relevant to its Keyword are populated.
type SchemaNode struct {
	// Keyword selects the variant.
	Keyword Keyword

	// Description is optional human-readable metadata, also the argument of
	// KeywordDescribe.
	Description string

	// Props holds the ordered members of a KeywordObject node.
	Props []Property
	// Catchall is the additional-properties shape of a KeywordObject or the
	// value shape of a KeywordRecord.
	Catchall *SchemaTree
	// Items is the element shape of a KeywordArray node.
	Items *SchemaTree
	// Elems holds the positional member shapes of a KeywordTuple node.
	Elems []*SchemaTree
	// Members holds the member shapes of a KeywordUnion or KeywordIntersect.
	Members []*SchemaTree
	// Values holds the serialized literal values of a KeywordEnum node,
	// order-preserving.
	Values []string
	// Literal is the serialized value of a KeywordConst or KeywordDefault node.
	Literal string
	// RefName is the symbolic definition name of a KeywordRef node.
	RefName string
	// Bound is the numeric argument of a KeywordMin or KeywordMax node.
	Bound float64
	// Exclusive marks a KeywordMin/KeywordMax bound as exclusive.
	Exclusive bool
	// Pattern is the regular expression of a KeywordPattern node.
	Pattern string
}
