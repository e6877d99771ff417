package query

import "strings"

// BuildCriteria turns the free-text search and "field:value" filter of a
// list request into one predicate.
//
// A non-blank search becomes an OR of case-insensitive substring matches
// over searchFields. A filter that parses (see ParseFilter) is AND-ed on.
// When neither applies the result matches everything.
func BuildCriteria(search, filter string, searchFields ...string) Predicate {
	clauses := make([]Predicate, 0, 2)

	if strings.TrimSpace(search) != "" && len(searchFields) > 0 {
		ors := make([]Predicate, 0, len(searchFields))
		for _, f := range searchFields {
			ors = append(ors, Contains(f, search))
		}
		clauses = append(clauses, Or(ors...))
	}

	if eq, ok := ParseFilter(filter); ok {
		clauses = append(clauses, eq)
	}

	return And(clauses...)
}

// ParseFilter reads a single "fieldName:value" equality. Anything that does
// not split into exactly two non-empty parts is not a filter; the caller
// treats it as absent rather than as an error. The field name is not checked
// against the entity, an unknown field simply matches no document.
func ParseFilter(filter string) (Predicate, bool) {
	if strings.TrimSpace(filter) == "" {
		return Predicate{}, false
	}
	parts := strings.Split(filter, ":")
	// An empty field name names no document field, so ":DONE" is dropped
	// along with "status:" and "a:b:c".
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Predicate{}, false
	}
	return Eq(parts[0], parts[1]), true
}
