package docstore

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

// Scan evaluates a Find over documents held in insertion order, for drivers
// that cannot push predicates down to the backend.
func Scan(docs [][]byte, pred query.Predicate, opts FindOptions) ([][]byte, error) {
	matched, err := filter(docs, pred)
	if err != nil {
		return nil, err
	}

	if len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i].fields, matched[j].fields, opts.Sort)
		})
	}

	start := opts.Skip
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}

	out := make([][]byte, 0, end-start)
	for _, d := range matched[start:end] {
		out = append(out, d.raw)
	}
	return out, nil
}

// CountMatching counts the documents Scan would select before windowing.
func CountMatching(docs [][]byte, pred query.Predicate) (int64, error) {
	matched, err := filter(docs, pred)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// UniqueValues extracts the non-empty text values of fields from doc.
func UniqueValues(doc []byte, fields []string) (map[string]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if v, ok := query.TextValue(m[f]); ok && v != "" {
			out[f] = v
		}
	}
	return out, nil
}

type decoded struct {
	raw    []byte
	fields map[string]any
}

func filter(docs [][]byte, pred query.Predicate) ([]decoded, error) {
	match, err := query.Compile(pred)
	if err != nil {
		return nil, err
	}
	out := make([]decoded, 0, len(docs))
	for _, raw := range docs {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		if match(m) {
			out = append(out, decoded{raw: raw, fields: m})
		}
	}
	return out, nil
}

// less orders absent values before present ones ascending, after them
// descending.
func less(a, b map[string]any, keys []query.SortField) bool {
	for _, k := range keys {
		av, aok := query.TextValue(a[k.Field])
		bv, bok := query.TextValue(b[k.Field])
		if aok == bok && av == bv {
			continue
		}
		var lt bool
		switch {
		case !aok:
			lt = true
		case !bok:
			lt = false
		default:
			lt = av < bv
		}
		if k.Desc {
			return !lt
		}
		return lt
	}
	return false
}
