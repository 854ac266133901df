package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"boothbuzz-admin/monitoring"

	"github.com/google/uuid"
)

// MySQL is the Client backed by a MySQL database. It keeps no state between
// calls beyond the connection pool.
type MySQL struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

type selected struct {
	relation string
	column   Column
}

func (m *MySQL) Select(ctx context.Context, q *Query) (rows []Row, err error) {
	defer func() { monitoring.ObserveStore(q.Table, "select", err) }()

	t, err := Check(q)
	if err != nil {
		return nil, err
	}

	var fields []string
	var picks []selected
	for _, name := range t.expand(q.Columns) {
		c, _ := t.column(name)
		fields = append(fields, fmt.Sprintf("t.`%s`", name))
		picks = append(picks, selected{column: c})
	}

	var joins []string
	for i, e := range q.Embeds {
		rel, _ := t.relation(e.Relation)
		rt := Tables[rel.Table]
		alias := fmt.Sprintf("r%d", i)
		joins = append(joins, fmt.Sprintf("LEFT JOIN `%s` %s ON %s.`%s` = t.`%s`", rt.Name, alias, alias, ColumnID, rel.LocalKey))
		for _, name := range rt.expand(e.Columns) {
			c, _ := rt.column(name)
			fields = append(fields, fmt.Sprintf("%s.`%s`", alias, name))
			picks = append(picks, selected{relation: e.Relation, column: c})
		}
	}

	tsql := fmt.Sprintf("SELECT %s FROM `%s` t", strings.Join(fields, ", "), t.Name)
	if len(joins) > 0 {
		tsql += " " + strings.Join(joins, " ")
	}
	where, args, err := whereClause(t, "t.", q.Filters)
	if err != nil {
		return nil, err
	}
	tsql += where
	if q.Sort != nil {
		dir := "DESC"
		if q.Sort.Ascending {
			dir = "ASC"
		}
		tsql += fmt.Sprintf(" ORDER BY t.`%s` %s", q.Sort.Column, dir)
	}
	if q.RowLimit > 0 {
		tsql += fmt.Sprintf(" LIMIT %d", q.RowLimit)
	}

	stmt, err := m.db.PrepareContext(ctx, tsql)
	if err != nil {
		return nil, &Error{Op: "select", Table: t.Name, Err: err}
	}
	defer stmt.Close()

	res, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, &Error{Op: "select", Table: t.Name, Err: err}
	}
	defer res.Close()

	for res.Next() {
		raw := make([]interface{}, len(picks))
		dest := make([]interface{}, len(picks))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := res.Scan(dest...); err != nil {
			return nil, fmt.Errorf("select: error while scanning %s row: %w", t.Name, err)
		}
		row, err := assemble(picks, raw)
		if err != nil {
			return nil, fmt.Errorf("select: %s: %w", t.Name, err)
		}
		rows = append(rows, row)
	}
	if err := res.Err(); err != nil {
		return nil, &Error{Op: "select", Table: t.Name, Err: err}
	}

	return rows, nil
}

// assemble builds a row from scanned values, nesting embedded relations.
// A relation whose columns are all NULL (no match on the LEFT JOIN) becomes nil.
func assemble(picks []selected, raw []interface{}) (Row, error) {
	row := Row{}
	nested := map[string]Row{}
	matched := map[string]bool{}
	for i, p := range picks {
		v, err := Normalize(p.column.Kind, raw[i])
		if err != nil {
			return nil, fmt.Errorf("assemble: column %s: %w", p.column.Name, err)
		}
		if p.relation == "" {
			row[p.column.Name] = v
			continue
		}
		if nested[p.relation] == nil {
			nested[p.relation] = Row{}
		}
		nested[p.relation][p.column.Name] = v
		if v != nil {
			matched[p.relation] = true
		}
	}
	for rel, r := range nested {
		if matched[rel] {
			row[rel] = r
		} else {
			row[rel] = nil
		}
	}
	return row, nil
}

func (m *MySQL) Insert(ctx context.Context, table string, values Row) (row Row, err error) {
	defer func() { monitoring.ObserveStore(table, "insert", err) }()

	t, err := Lookup(table)
	if err != nil {
		return nil, err
	}
	if err := checkValues(t, values); err != nil {
		return nil, err
	}

	row = Row{}
	for k, v := range values {
		row[k] = v
	}
	if id, _ := row[ColumnID].(string); id == "" {
		row[ColumnID] = m.newID()
	}
	now := m.now()
	row[ColumnCreatedAt] = now
	row[ColumnUpdatedAt] = now

	cols := sortedKeys(row)
	var params []string
	var args []interface{}
	for _, k := range cols {
		c, _ := t.column(k)
		v, err := encode(c.Kind, row[k])
		if err != nil {
			return nil, fmt.Errorf("insert: %s.%s: %w", table, k, err)
		}
		params = append(params, "?")
		args = append(args, v)
	}

	tsql := fmt.Sprintf("INSERT INTO `%s` (`%s`) VALUES (%s)", t.Name, strings.Join(cols, "`, `"), strings.Join(params, ", "))
	stmt, err := m.db.PrepareContext(ctx, tsql)
	if err != nil {
		return nil, &Error{Op: "insert", Table: t.Name, Err: err}
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return nil, &Error{Op: "insert", Table: t.Name, Err: err}
	}

	for _, k := range cols {
		c, _ := t.column(k)
		v, err := Normalize(c.Kind, row[k])
		if err != nil {
			return nil, fmt.Errorf("insert: %s.%s: %w", table, k, err)
		}
		row[k] = v
	}
	return row, nil
}

func (m *MySQL) Update(ctx context.Context, table string, values Row, filters ...Filter) (n int64, err error) {
	defer func() { monitoring.ObserveStore(table, "update", err) }()

	t, err := Lookup(table)
	if err != nil {
		return 0, err
	}
	if len(filters) == 0 {
		return 0, fmt.Errorf("update: %s: %w", table, ErrNoFilter)
	}
	if err := checkValues(t, values); err != nil {
		return 0, err
	}

	set := Row{}
	for k, v := range values {
		if k == ColumnID || k == ColumnCreatedAt {
			continue
		}
		set[k] = v
	}
	set[ColumnUpdatedAt] = m.now()

	cols := sortedKeys(set)
	var assignments []string
	var args []interface{}
	for _, k := range cols {
		c, _ := t.column(k)
		v, err := encode(c.Kind, set[k])
		if err != nil {
			return 0, fmt.Errorf("update: %s.%s: %w", table, k, err)
		}
		assignments = append(assignments, fmt.Sprintf("`%s` = ?", k))
		args = append(args, v)
	}

	where, wargs, err := whereClause(t, "", filters)
	if err != nil {
		return 0, err
	}
	args = append(args, wargs...)

	tsql := fmt.Sprintf("UPDATE `%s` SET %s%s", t.Name, strings.Join(assignments, ", "), where)
	return m.exec(ctx, "update", t.Name, tsql, args)
}

func (m *MySQL) Delete(ctx context.Context, table string, filters ...Filter) (n int64, err error) {
	defer func() { monitoring.ObserveStore(table, "delete", err) }()

	t, err := Lookup(table)
	if err != nil {
		return 0, err
	}
	if len(filters) == 0 {
		return 0, fmt.Errorf("delete: %s: %w", table, ErrNoFilter)
	}
	where, args, err := whereClause(t, "", filters)
	if err != nil {
		return 0, err
	}

	tsql := fmt.Sprintf("DELETE FROM `%s`%s", t.Name, where)
	return m.exec(ctx, "delete", t.Name, tsql, args)
}

func (m *MySQL) exec(ctx context.Context, op, table, tsql string, args []interface{}) (int64, error) {
	stmt, err := m.db.PrepareContext(ctx, tsql)
	if err != nil {
		return 0, &Error{Op: op, Table: table, Err: err}
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, &Error{Op: op, Table: table, Err: err}
	}
	return result.RowsAffected()
}

func whereClause(t Table, prefix string, filters []Filter) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	if err := checkFilters(t, filters); err != nil {
		return "", nil, err
	}
	var conds []string
	var args []interface{}
	for _, f := range filters {
		c, _ := t.column(f.Column)
		v, err := encode(c.Kind, f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("whereClause: %s.%s: %w", t.Name, f.Column, err)
		}
		if v == nil {
			conds = append(conds, fmt.Sprintf("%s`%s` IS NULL", prefix, f.Column))
			continue
		}
		conds = append(conds, fmt.Sprintf("%s`%s` = ?", prefix, f.Column))
		args = append(args, v)
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func sortedKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
