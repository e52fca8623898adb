package resolver

import "strings"

// FilterSet selects operations along four axes. An empty axis matches
// everything; a populated axis matches when any of its entries matches.
// Entries on the path axis may end in "*" to match a path prefix.
type FilterSet struct {
	Tags         []string
	Paths        []string
	Methods      []string
	OperationIDs []string
}

// IsEmpty reports whether no axis is populated.
func (fs FilterSet) IsEmpty() bool {
	return len(fs.Tags) == 0 && len(fs.Paths) == 0 && len(fs.Methods) == 0 && len(fs.OperationIDs) == 0
}

// matchesTags reports whether the operation carries any of the set's tags.
// An operation without tags never matches a populated tag axis.
func (fs FilterSet) matchesTags(tags []string) bool {
	if len(fs.Tags) == 0 {
		return true
	}
	for _, want := range fs.Tags {
		for _, have := range tags {
			if want == have {
				return true
			}
		}
	}
	return false
}

func (fs FilterSet) matchesPath(path string) bool {
	if len(fs.Paths) == 0 {
		return true
	}
	for _, want := range fs.Paths {
		if prefix, ok := strings.CutSuffix(want, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if want == path {
			return true
		}
	}
	return false
}

func (fs FilterSet) matchesMethod(method string) bool {
	if len(fs.Methods) == 0 {
		return true
	}
	for _, want := range fs.Methods {
		if strings.EqualFold(want, method) {
			return true
		}
	}
	return false
}

func (fs FilterSet) matchesOperationID(id string) bool {
	if len(fs.OperationIDs) == 0 {
		return true
	}
	for _, want := range fs.OperationIDs {
		if want == id {
			return true
		}
	}
	return false
}

// matches applies the axes in order: tag, path, method, operation id. All
// populated axes must match.
func (fs FilterSet) matches(tags []string, path, method, id string) bool {
	return fs.matchesTags(tags) &&
		fs.matchesPath(path) &&
		fs.matchesMethod(method) &&
		fs.matchesOperationID(id)
}

// Filters combines an include set, an exclude set, and an override set.
//
// An operation is selected when it matches Include (an empty include set
// matches everything) and does not match Exclude. Override layers on top of
// both: an operation matching a populated Override set is always selected,
// even when Exclude would drop it.
type Filters struct {
	Include  FilterSet
	Exclude  FilterSet
	Override FilterSet
}

// Allows reports whether the operation passes the filter composition.
func (f Filters) Allows(tags []string, path, method, id string) bool {
	if !f.Override.IsEmpty() && f.Override.matches(tags, path, method, id) {
		return true
	}
	if !f.Include.matches(tags, path, method, id) {
		return false
	}
	if !f.Exclude.IsEmpty() && f.Exclude.matches(tags, path, method, id) {
		return false
	}
	return true
}
