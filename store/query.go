package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrUnknownTable    = errors.New("unknown table")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrUnknownRelation = errors.New("unknown relation")
	ErrBadSelect       = errors.New("malformed select expression")
	ErrNoFilter        = errors.New("refusing to write without a filter")
	ErrNoRows          = errors.New("no rows affected")
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Row is a raw record as returned by the store: snake_case keys, nullable values.
// Embedded relations appear as nested Row values under the relation name.
type Row map[string]interface{}

// Client is the table-oriented remote data API. Every call is independent and
// the implementations are safe for concurrent use.
type Client interface {
	Select(ctx context.Context, q *Query) ([]Row, error)
	Insert(ctx context.Context, table string, values Row) (Row, error)
	Update(ctx context.Context, table string, values Row, filters ...Filter) (int64, error)
	Delete(ctx context.Context, table string, filters ...Filter) (int64, error)
}

// Error carries a rejection from the store. Error() is the store's own message.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NoRowsError reports a get, update or delete that matched nothing.
type NoRowsError struct {
	Entity string
	Op     string
}

func (e *NoRowsError) Error() string {
	switch e.Op {
	case "delete":
		return fmt.Sprintf("No %s was deleted", e.Entity)
	case "update":
		return fmt.Sprintf("No %s was updated", e.Entity)
	}
	return fmt.Sprintf("No %s was found", e.Entity)
}

func (e *NoRowsError) Is(target error) bool {
	return target == ErrNoRows
}

type Filter struct {
	Column string
	Value  interface{}
}

// Eq builds an equality filter.
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Value: value}
}

type Order struct {
	Column    string
	Ascending bool
}

// Embed selects columns of a related table, e.g. `venues(name, city)`.
type Embed struct {
	Relation string
	Columns  []string
}

type Query struct {
	Table    string
	Columns  []string
	Embeds   []Embed
	Filters  []Filter
	Sort     *Order
	RowLimit int
	err      error
}

// From starts a query selecting every column of table.
func From(table string) *Query {
	return &Query{Table: table, Columns: []string{"*"}}
}

// Select replaces the column selection with a parsed select expression.
func (q *Query) Select(expr string) *Query {
	cols, embeds, err := ParseSelect(expr)
	if err != nil {
		q.err = err
		return q
	}
	q.Columns = cols
	q.Embeds = embeds
	return q
}

func (q *Query) Eq(column string, value interface{}) *Query {
	q.Filters = append(q.Filters, Eq(column, value))
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	q.Sort = &Order{Column: column, Ascending: ascending}
	return q
}

func (q *Query) Limit(n int) *Query {
	q.RowLimit = n
	return q
}

// Err returns the first error met while building the query.
func (q *Query) Err() error {
	return q.err
}

// Clone returns a copy that can be extended without touching q.
func (q *Query) Clone() *Query {
	c := *q
	c.Columns = append([]string(nil), q.Columns...)
	c.Filters = append([]Filter(nil), q.Filters...)
	c.Embeds = nil
	for _, e := range q.Embeds {
		c.Embeds = append(c.Embeds, Embed{Relation: e.Relation, Columns: append([]string(nil), e.Columns...)})
	}
	if q.Sort != nil {
		s := *q.Sort
		c.Sort = &s
	}
	return &c
}

// String renders the query shape for diagnostics.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteString(q.Table)
	b.WriteString("?select=")
	parts := append([]string(nil), q.Columns...)
	for _, e := range q.Embeds {
		parts = append(parts, fmt.Sprintf("%s(%s)", e.Relation, strings.Join(e.Columns, ",")))
	}
	b.WriteString(strings.Join(parts, ","))
	for _, f := range q.Filters {
		fmt.Fprintf(&b, "&%s=eq.%v", f.Column, f.Value)
	}
	if q.Sort != nil {
		dir := "desc"
		if q.Sort.Ascending {
			dir = "asc"
		}
		fmt.Fprintf(&b, "&order=%s.%s", q.Sort.Column, dir)
	}
	if q.RowLimit > 0 {
		fmt.Fprintf(&b, "&limit=%d", q.RowLimit)
	}
	return b.String()
}

// ParseSelect parses a column selection such as `id, title, venues(name, city)`.
func ParseSelect(expr string) ([]string, []Embed, error) {
	parts, err := splitTopLevel(expr)
	if err != nil {
		return nil, nil, err
	}

	var cols []string
	var embeds []Embed
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
			return nil, nil, fmt.Errorf("parseSelect: empty column in %q: %w", expr, ErrBadSelect)
		case p == "*":
			cols = append(cols, p)
		case strings.HasSuffix(p, ")"):
			open := strings.Index(p, "(")
			if open <= 0 {
				return nil, nil, fmt.Errorf("parseSelect: %q: %w", p, ErrBadSelect)
			}
			rel := strings.TrimSpace(p[:open])
			if !identifier.MatchString(rel) {
				return nil, nil, fmt.Errorf("parseSelect: bad relation %q: %w", rel, ErrBadSelect)
			}
			inner, nested, err := ParseSelect(p[open+1 : len(p)-1])
			if err != nil {
				return nil, nil, err
			}
			if len(nested) > 0 {
				return nil, nil, fmt.Errorf("parseSelect: nested relations are not supported in %q: %w", p, ErrBadSelect)
			}
			embeds = append(embeds, Embed{Relation: rel, Columns: inner})
		default:
			if !identifier.MatchString(p) {
				return nil, nil, fmt.Errorf("parseSelect: bad column %q: %w", p, ErrBadSelect)
			}
			cols = append(cols, p)
		}
	}

	if len(cols) == 0 {
		cols = []string{"*"}
	}
	return cols, embeds, nil
}

func splitTopLevel(expr string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("splitTopLevel: unbalanced parentheses in %q: %w", expr, ErrBadSelect)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, expr[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("splitTopLevel: unbalanced parentheses in %q: %w", expr, ErrBadSelect)
	}
	return append(parts, expr[start:]), nil
}
