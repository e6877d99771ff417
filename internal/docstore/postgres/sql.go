package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

// builder accumulates positional arguments while a statement is rendered.
// Field names are bound as arguments too, never spliced into the SQL.
type builder struct {
	args []any
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) field(name string) string {
	return "doc->>" + b.arg(name) + "::text"
}

func (b *builder) where(p query.Predicate) (string, error) {
	switch p.Op {
	case query.OpAnd, query.OpOr:
		if len(p.Clauses) == 0 {
			if p.Op == query.OpAnd {
				return "TRUE", nil
			}
			return "FALSE", nil
		}
		parts := make([]string, 0, len(p.Clauses))
		for _, c := range p.Clauses {
			s, err := b.where(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, "("+s+")")
		}
		sep := " AND "
		if p.Op == query.OpOr {
			sep = " OR "
		}
		return strings.Join(parts, sep), nil

	case query.OpEq:
		return b.field(p.Field) + " = " + b.arg(p.Value), nil

	case query.OpRegex:
		return b.field(p.Field) + " ~* " + b.arg(p.Value), nil

	case query.OpLt, query.OpLte, query.OpGte:
		ops := map[query.Op]string{query.OpLt: "<", query.OpLte: "<=", query.OpGte: ">="}
		return fmt.Sprintf("(%s)::timestamptz %s %s::timestamptz", b.field(p.Field), ops[p.Op], b.arg(p.Value)), nil

	case query.OpMissing:
		return b.field(p.Field) + " IS NULL", nil
	}
	return "", fmt.Errorf("unsupported predicate op %q", p.Op)
}

// orderBy sorts absent values first ascending and last descending, with the
// insertion sequence as the final tie-breaker.
func (b *builder) orderBy(keys []query.SortField) string {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		dir := "ASC NULLS FIRST"
		if k.Desc {
			dir = "DESC NULLS LAST"
		}
		parts = append(parts, fmt.Sprintf(`(%s) COLLATE "C" %s`, b.field(k.Field), dir))
	}
	parts = append(parts, "seq")
	return strings.Join(parts, ", ")
}

func (b *builder) window(opts docstore.FindOptions) string {
	var sb strings.Builder
	if opts.Limit > 0 {
		sb.WriteString(" LIMIT " + b.arg(opts.Limit))
	}
	if opts.Skip > 0 {
		sb.WriteString(" OFFSET " + b.arg(opts.Skip))
	}
	return sb.String()
}
