// Package query holds the store-independent pieces of the list endpoints:
// the predicate algebra, the search/filter criteria builder, in-process
// predicate evaluation and the page request/result shapes.
package query

import (
	"regexp"
	"time"
)

type Op string

const (
	OpAnd     Op = "and"
	OpOr      Op = "or"
	OpEq      Op = "eq"
	OpRegex   Op = "regex"
	OpLt      Op = "lt"
	OpLte     Op = "lte"
	OpGte     Op = "gte"
	OpMissing Op = "missing"
)

// Predicate is a boolean condition over top-level document fields.
// Leaf predicates use Field and Value; OpAnd / OpOr use Clauses.
//
// Value is a string for OpEq and OpRegex and a time.Time for the range
// operators. Regex patterns are always evaluated case-insensitively.
type Predicate struct {
	Op      Op
	Field   string
	Value   any
	Clauses []Predicate
}

// All matches every document.
func All() Predicate { return Predicate{Op: OpAnd} }

// IsAll reports whether p places no restriction on documents.
func (p Predicate) IsAll() bool {
	return p.Op == OpAnd && len(p.Clauses) == 0
}

func Eq(field, value string) Predicate {
	return Predicate{Op: OpEq, Field: field, Value: value}
}

// Regex matches field against pattern, ignoring case.
func Regex(field, pattern string) Predicate {
	return Predicate{Op: OpRegex, Field: field, Value: pattern}
}

// Contains is a case-insensitive substring match of text taken literally.
func Contains(field, text string) Predicate {
	return Regex(field, regexp.QuoteMeta(text))
}

func Lt(field string, t time.Time) Predicate {
	return Predicate{Op: OpLt, Field: field, Value: t.UTC()}
}

func Lte(field string, t time.Time) Predicate {
	return Predicate{Op: OpLte, Field: field, Value: t.UTC()}
}

func Gte(field string, t time.Time) Predicate {
	return Predicate{Op: OpGte, Field: field, Value: t.UTC()}
}

// Missing matches documents where field is absent or null.
func Missing(field string) Predicate {
	return Predicate{Op: OpMissing, Field: field}
}

// And conjoins clauses. Match-all clauses are dropped and a single
// remaining clause is returned as is.
func And(clauses ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(clauses))
	for _, c := range clauses {
		if c.IsAll() {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return Predicate{Op: OpAnd, Clauses: kept}
}

// Or disjoins clauses. An empty disjunction matches nothing.
func Or(clauses ...Predicate) Predicate {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return Predicate{Op: OpOr, Clauses: clauses}
}
