package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDecimal
	KindBool
	KindTime
	KindDate
	KindJSON
)

const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"

	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

type Column struct {
	Name string
	Kind Kind
}

// Relation is a to-one link from a local foreign key to another table's id.
type Relation struct {
	Name     string
	LocalKey string
	Table    string
}

type Table struct {
	Name      string
	Columns   []Column
	Relations []Relation
}

func (t Table) column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t Table) relation(name string) (Relation, bool) {
	for _, r := range t.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// expand resolves "*" into the table's declared columns.
func (t Table) expand(cols []string) []string {
	var out []string
	for _, c := range cols {
		if c == "*" {
			for _, tc := range t.Columns {
				out = append(out, tc.Name)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

func common(cols ...Column) []Column {
	base := []Column{{ColumnID, KindString}}
	base = append(base, cols...)
	return append(base, Column{ColumnCreatedAt, KindTime}, Column{ColumnUpdatedAt, KindTime})
}

// Tables is the schema of every table the console reads or writes.
var Tables = map[string]Table{
	"users": {
		Name: "users",
		Columns: common(
			Column{"auth_id", KindString},
			Column{"name", KindString},
			Column{"email", KindString},
			Column{"phone", KindString},
			Column{"role", KindString},
			Column{"city", KindString},
			Column{"status", KindString},
		),
	},
	"venues": {
		Name: "venues",
		Columns: common(
			Column{"name", KindString},
			Column{"location", KindString},
			Column{"city", KindString},
			Column{"contact_person", KindString},
			Column{"email", KindString},
			Column{"phone", KindString},
			Column{"capacity", KindInt},
			Column{"facilities", KindJSON},
			Column{"amenities", KindJSON},
			Column{"active_events_count", KindInt},
			Column{"total_revenue", KindDecimal},
			Column{"status", KindString},
		),
	},
	"events": {
		Name: "events",
		Columns: common(
			Column{"title", KindString},
			Column{"description", KindString},
			Column{"event_date", KindDate},
			Column{"event_time", KindString},
			Column{"venue_id", KindString},
			Column{"venue_name", KindString},
			Column{"city", KindString},
			Column{"max_capacity", KindInt},
			Column{"attendee_count", KindInt},
			Column{"plan_type", KindString},
			Column{"status", KindString},
			Column{"revenue", KindDecimal},
			Column{"image_url", KindString},
			Column{"area_sq_ft", KindFloat},
			Column{"space_type", KindString},
			Column{"stall_count", KindInt},
			Column{"parking_capacity", KindInt},
		),
		Relations: []Relation{{Name: "venues", LocalKey: "venue_id", Table: "venues"}},
	},
	"vendors": {
		Name: "vendors",
		Columns: common(
			Column{"name", KindString},
			Column{"category", KindString},
			Column{"city", KindString},
			Column{"contact_person", KindString},
			Column{"email", KindString},
			Column{"phone", KindString},
			Column{"rating", KindFloat},
			Column{"completed_jobs", KindInt},
			Column{"status", KindString},
			Column{"price_range", KindString},
		),
	},
	"exhibitors": {
		Name: "exhibitors",
		Columns: common(
			Column{"event_id", KindString},
			Column{"company_name", KindString},
			Column{"company_profile", KindString},
			Column{"contact_person", KindString},
			Column{"email", KindString},
			Column{"phone", KindString},
			Column{"alternate_contact", KindString},
			Column{"alternate_phone", KindString},
			Column{"category", KindString},
			Column{"sub_category", KindString},
			Column{"address_line", KindString},
			Column{"city", KindString},
			Column{"state", KindString},
			Column{"pincode", KindString},
			Column{"booth_preference", KindString},
			Column{"booth_size", KindString},
			Column{"products", KindJSON},
			Column{"services", KindJSON},
			Column{"registration_fee", KindDecimal},
			Column{"payment_status", KindString},
			Column{"social_links", KindJSON},
			Column{"status", KindString},
		),
		Relations: []Relation{{Name: "events", LocalKey: "event_id", Table: "events"}},
	},
	"societies": {
		Name: "societies",
		Columns: common(
			Column{"name", KindString},
			Column{"location", KindString},
			Column{"city", KindString},
			Column{"contact_person", KindString},
			Column{"email", KindString},
			Column{"phone", KindString},
			Column{"member_count", KindInt},
			Column{"facilities", KindJSON},
			Column{"active_events_count", KindInt},
			Column{"revenue", KindDecimal},
			Column{"status", KindString},
		),
	},
}

// Lookup returns the schema for table.
func Lookup(table string) (Table, error) {
	t, ok := Tables[table]
	if !ok {
		return Table{}, fmt.Errorf("lookup: %q: %w", table, ErrUnknownTable)
	}
	return t, nil
}

// Check validates every table, column and relation the query names.
func Check(q *Query) (Table, error) {
	if q.err != nil {
		return Table{}, q.err
	}
	t, err := Lookup(q.Table)
	if err != nil {
		return Table{}, err
	}
	for _, c := range q.Columns {
		if c == "*" {
			continue
		}
		if _, ok := t.column(c); !ok {
			return Table{}, fmt.Errorf("check: %s.%s: %w", t.Name, c, ErrUnknownColumn)
		}
	}
	for _, e := range q.Embeds {
		rel, ok := t.relation(e.Relation)
		if !ok {
			return Table{}, fmt.Errorf("check: %s.%s: %w", t.Name, e.Relation, ErrUnknownRelation)
		}
		rt := Tables[rel.Table]
		for _, c := range e.Columns {
			if c == "*" {
				continue
			}
			if _, ok := rt.column(c); !ok {
				return Table{}, fmt.Errorf("check: %s.%s: %w", rt.Name, c, ErrUnknownColumn)
			}
		}
	}
	if err := checkFilters(t, q.Filters); err != nil {
		return Table{}, err
	}
	if q.Sort != nil {
		if _, ok := t.column(q.Sort.Column); !ok {
			return Table{}, fmt.Errorf("check: order by %s.%s: %w", t.Name, q.Sort.Column, ErrUnknownColumn)
		}
	}
	return t, nil
}

func checkFilters(t Table, filters []Filter) error {
	for _, f := range filters {
		if _, ok := t.column(f.Column); !ok {
			return fmt.Errorf("checkFilters: %s.%s: %w", t.Name, f.Column, ErrUnknownColumn)
		}
	}
	return nil
}

func checkValues(t Table, values Row) error {
	for k := range values {
		if _, ok := t.column(k); !ok {
			return fmt.Errorf("checkValues: %s.%s: %w", t.Name, k, ErrUnknownColumn)
		}
	}
	return nil
}

// Normalize converts a driver value into the canonical Go type for kind:
// string, int64, float64, decimal.Decimal, bool, time.Time, or decoded JSON.
func Normalize(kind Kind, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	switch kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case KindInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case float64:
			return int64(n), nil
		case string:
			return strconv.ParseInt(n, 10, 64)
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case int:
			return float64(n), nil
		case string:
			return strconv.ParseFloat(n, 64)
		}
	case KindDecimal:
		switch n := v.(type) {
		case decimal.Decimal:
			return n, nil
		case string:
			return decimal.NewFromString(n)
		case float64:
			return decimal.NewFromFloat(n), nil
		case int64:
			return decimal.NewFromInt(n), nil
		case int:
			return decimal.NewFromInt(int64(n)), nil
		}
	case KindBool:
		switch n := v.(type) {
		case bool:
			return n, nil
		case int64:
			return n != 0, nil
		case string:
			return n == "1" || strings.EqualFold(n, "true"), nil
		}
	case KindTime:
		switch n := v.(type) {
		case time.Time:
			return n.UTC(), nil
		case string:
			for _, layout := range []string{time.RFC3339Nano, datetimeLayout, dateLayout} {
				if t, err := time.Parse(layout, n); err == nil {
					return t.UTC(), nil
				}
			}
			return nil, fmt.Errorf("normalize: unparseable time %q", n)
		}
	case KindDate:
		switch n := v.(type) {
		case time.Time:
			return n.Format(dateLayout), nil
		case string:
			if len(n) >= len(dateLayout) {
				return n[:len(dateLayout)], nil
			}
			return n, nil
		}
	case KindJSON:
		if s, ok := v.(string); ok {
			if strings.TrimSpace(s) == "" {
				return nil, nil
			}
			var out interface{}
			if err := json.Unmarshal([]byte(s), &out); err != nil {
				return nil, fmt.Errorf("normalize: decoding json column: %w", err)
			}
			return out, nil
		}
		// Go values are reshaped into what a select would return.
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalize: encoding json column: %w", err)
		}
		var out interface{}
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("normalize: decoding json column: %w", err)
		}
		return out, nil
	}

	return nil, fmt.Errorf("normalize: unsupported value %T for kind %d", v, kind)
}

// encode converts a Go value into what the SQL driver should receive.
func encode(kind Kind, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case KindJSON:
		if s, ok := v.(string); ok {
			return s, nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode: encoding json column: %w", err)
		}
		return string(b), nil
	case KindDecimal:
		switch n := v.(type) {
		case decimal.Decimal:
			return n.String(), nil
		case float64:
			return decimal.NewFromFloat(n).String(), nil
		}
	case KindTime:
		if t, ok := v.(time.Time); ok {
			return t.UTC(), nil
		}
	}
	return v, nil
}
