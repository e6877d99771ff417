package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Matcher evaluates a compiled predicate against a decoded JSON document.
type Matcher func(doc map[string]any) bool

// Compile prepares p for repeated in-process evaluation. Regex patterns are
// compiled once here; an invalid pattern is reported as an error.
func Compile(p Predicate) (Matcher, error) {
	switch p.Op {
	case OpAnd, OpOr:
		subs := make([]Matcher, 0, len(p.Clauses))
		for _, c := range p.Clauses {
			m, err := Compile(c)
			if err != nil {
				return nil, err
			}
			subs = append(subs, m)
		}
		if p.Op == OpAnd {
			return func(doc map[string]any) bool {
				for _, m := range subs {
					if !m(doc) {
						return false
					}
				}
				return true
			}, nil
		}
		return func(doc map[string]any) bool {
			for _, m := range subs {
				if m(doc) {
					return true
				}
			}
			return false
		}, nil

	case OpEq:
		want, _ := p.Value.(string)
		field := p.Field
		return func(doc map[string]any) bool {
			got, ok := TextValue(doc[field])
			return ok && got == want
		}, nil

	case OpRegex:
		pattern, _ := p.Value.(string)
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for %s: %w", p.Field, err)
		}
		field := p.Field
		return func(doc map[string]any) bool {
			got, ok := TextValue(doc[field])
			return ok && re.MatchString(got)
		}, nil

	case OpLt, OpLte, OpGte:
		bound, ok := p.Value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("%s on %s needs a time value", p.Op, p.Field)
		}
		field, op := p.Field, p.Op
		return func(doc map[string]any) bool {
			t, ok := TimeValue(doc[field])
			if !ok {
				return false
			}
			switch op {
			case OpLt:
				return t.Before(bound)
			case OpLte:
				return !t.After(bound)
			default:
				return !t.Before(bound)
			}
		}, nil

	case OpMissing:
		field := p.Field
		return func(doc map[string]any) bool {
			return doc[field] == nil
		}, nil
	}

	return nil, fmt.Errorf("unsupported predicate op %q", p.Op)
}

// TextValue renders a decoded JSON value the way a text extraction of the
// field would: strings as is, scalars in their JSON spelling. Absent and null
// values report false.
func TextValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// TimeValue reads an RFC 3339 timestamp field.
func TimeValue(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
