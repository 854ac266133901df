// Package storetest provides an in-memory store.Client for tests.
package storetest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"boothbuzz-admin/store"

	"github.com/shopspring/decimal"
)

// Memory keeps rows per table in insertion order and applies the same schema
// checks as the SQL client.
type Memory struct {
	mu     sync.Mutex
	tables map[string][]store.Row
	seq    int
	calls  map[string]int
	fail   map[string]error
	now    func() time.Time

	// BeforeSelect, when set, runs before every Select with the call number
	// (starting at 1). Tests use it to hold or reorder responses.
	BeforeSelect func(n int)
}

func NewMemory() *Memory {
	return &Memory{
		tables: map[string][]store.Row{},
		calls:  map[string]int{},
		fail:   map[string]error{},
		now:    func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) },
	}
}

// FailNext makes the next call of op ("select", "insert", "update", "delete")
// return err.
func (m *Memory) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

// Calls returns how many times op was invoked.
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls returns the number of calls across every operation.
func (m *Memory) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// Seed inserts rows as-is, keeping any id they carry.
func (m *Memory) Seed(table string, rows ...store.Row) {
	for _, r := range rows {
		if _, err := m.Insert(context.Background(), table, r); err != nil {
			panic(err)
		}
	}
	m.mu.Lock()
	m.calls["insert"] -= len(rows)
	m.mu.Unlock()
}

// Rows returns a copy of every row currently stored in table.
func (m *Memory) Rows(table string) []store.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.Row
	for _, r := range m.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

func (m *Memory) begin(op string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	if err, ok := m.fail[op]; ok {
		delete(m.fail, op)
		return m.calls[op], &store.Error{Op: op, Err: err}
	}
	return m.calls[op], nil
}

func (m *Memory) Select(ctx context.Context, q *store.Query) ([]store.Row, error) {
	n, err := m.begin("select")
	if m.BeforeSelect != nil {
		m.BeforeSelect(n)
	}
	if err != nil {
		return nil, err
	}
	t, err := store.Check(q)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []store.Row
	for _, r := range m.tables[t.Name] {
		if matches(r, q.Filters) {
			matched = append(matched, r)
		}
	}
	if q.Sort != nil {
		col, asc := q.Sort.Column, q.Sort.Ascending
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(matched[i][col], matched[j][col])
			if asc {
				return c < 0
			}
			return c > 0
		})
	}
	if q.RowLimit > 0 && len(matched) > q.RowLimit {
		matched = matched[:q.RowLimit]
	}

	var out []store.Row
	for _, r := range matched {
		row := project(t, q.Columns, r)
		for _, e := range q.Embeds {
			rel := relation(t, e.Relation)
			row[e.Relation] = m.lookup(rel, r[rel.LocalKey], e.Columns)
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *Memory) lookup(rel store.Relation, key interface{}, cols []string) interface{} {
	if key == nil {
		return nil
	}
	rt := store.Tables[rel.Table]
	for _, r := range m.tables[rel.Table] {
		if r[store.ColumnID] == key {
			return project(rt, cols, r)
		}
	}
	return nil
}

func (m *Memory) Insert(ctx context.Context, table string, values store.Row) (store.Row, error) {
	if _, err := m.begin("insert"); err != nil {
		return nil, err
	}
	t, err := store.Lookup(table)
	if err != nil {
		return nil, err
	}
	row, err := normalize(t, values)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, _ := row[store.ColumnID].(string); id == "" {
		m.seq++
		row[store.ColumnID] = fmt.Sprintf("%s-%d", strings.TrimSuffix(table, "s"), m.seq)
	}
	for _, r := range m.tables[table] {
		if r[store.ColumnID] == row[store.ColumnID] {
			return nil, &store.Error{Op: "insert", Table: table, Err: fmt.Errorf("Duplicate entry '%v' for key 'PRIMARY'", row[store.ColumnID])}
		}
	}
	now := m.now()
	row[store.ColumnCreatedAt] = now
	row[store.ColumnUpdatedAt] = now
	m.tables[table] = append(m.tables[table], row)
	return copyRow(row), nil
}

func (m *Memory) Update(ctx context.Context, table string, values store.Row, filters ...store.Filter) (int64, error) {
	if _, err := m.begin("update"); err != nil {
		return 0, err
	}
	t, err := store.Lookup(table)
	if err != nil {
		return 0, err
	}
	if len(filters) == 0 {
		return 0, store.ErrNoFilter
	}
	set, err := normalize(t, values)
	if err != nil {
		return 0, err
	}
	delete(set, store.ColumnID)
	delete(set, store.ColumnCreatedAt)

	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.tables[table] {
		if !matches(r, filters) {
			continue
		}
		for k, v := range set {
			r[k] = v
		}
		r[store.ColumnUpdatedAt] = m.now()
		n++
	}
	return n, nil
}

func (m *Memory) Delete(ctx context.Context, table string, filters ...store.Filter) (int64, error) {
	if _, err := m.begin("delete"); err != nil {
		return 0, err
	}
	if _, err := store.Lookup(table); err != nil {
		return 0, err
	}
	if len(filters) == 0 {
		return 0, store.ErrNoFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []store.Row
	var n int64
	for _, r := range m.tables[table] {
		if matches(r, filters) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.tables[table] = kept
	return n, nil
}

func normalize(t store.Table, values store.Row) (store.Row, error) {
	out := store.Row{}
	for k, v := range values {
		var kind store.Kind = -1
		for _, c := range t.Columns {
			if c.Name == k {
				kind = c.Kind
			}
		}
		if kind < 0 {
			return nil, fmt.Errorf("normalize: %s.%s: %w", t.Name, k, store.ErrUnknownColumn)
		}
		if kind == store.KindJSON {
			out[k] = jsonRoundTrip(v)
			continue
		}
		nv, err := store.Normalize(kind, v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func project(t store.Table, cols []string, r store.Row) store.Row {
	out := store.Row{}
	for _, c := range cols {
		if c == "*" {
			for _, tc := range t.Columns {
				out[tc.Name] = r[tc.Name]
			}
			continue
		}
		out[c] = r[c]
	}
	return out
}

func relation(t store.Table, name string) store.Relation {
	for _, r := range t.Relations {
		if r.Name == name {
			return r
		}
	}
	return store.Relation{}
}

func matches(r store.Row, filters []store.Filter) bool {
	for _, f := range filters {
		if compare(r[f.Column], f.Value) != 0 {
			return false
		}
	}
	return true
}

func compare(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch x := a.(type) {
	case decimal.Decimal:
		if y, err := store.Normalize(store.KindDecimal, b); err == nil {
			return x.Cmp(y.(decimal.Decimal))
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			switch {
			case x.Before(y):
				return -1
			case x.After(y):
				return 1
			}
			return 0
		}
	case int64, float64:
		xf, _ := store.Normalize(store.KindFloat, x)
		if yf, err := store.Normalize(store.KindFloat, b); err == nil {
			switch {
			case xf.(float64) < yf.(float64):
				return -1
			case xf.(float64) > yf.(float64):
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func copyRow(r store.Row) store.Row {
	out := store.Row{}
	for k, v := range r {
		out[k] = v
	}
	return out
}

// jsonRoundTrip gives JSON columns the shape a SQL read would decode them to.
func jsonRoundTrip(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		nv, err := store.Normalize(store.KindJSON, s)
		if err != nil {
			return nil
		}
		return nv
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
