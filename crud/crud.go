// Package crud is the row-level create/read/update/delete shared by the entity
// services. Reads go through a fetcher so every list behaves like a page load.
package crud

import (
	"context"
	"fmt"

	"boothbuzz-admin/fetcher"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/store"
)

type ListOptions struct {
	Limit     int
	Order     string
	Ascending bool
	Filters   []store.Filter
}

// Table binds one store table to its view model.
type Table[T any] struct {
	Client store.Client
	Name   string
	// Entity is the singular name used in messages, e.g. "vendor".
	Entity string
	// Select defaults to "*".
	Select string
	Map    func(store.Row) T
}

func (t Table[T]) base() *store.Query {
	sel := t.Select
	if sel == "" {
		sel = "*"
	}
	return store.From(t.Name).Select(sel)
}

// Query builds the list query. Without an explicit order rows come newest first.
func (t Table[T]) Query(opts ListOptions) *store.Query {
	q := t.base()
	for _, f := range opts.Filters {
		q = q.Eq(f.Column, f.Value)
	}
	if opts.Order != "" {
		q = q.Order(opts.Order, opts.Ascending)
	} else {
		q = q.Order(store.ColumnCreatedAt, false)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	return q
}

// List builds a fetcher for this call only. Each request reads the table
// fresh; nothing is shared between requests.
func (t Table[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	st := fetcher.New(t.Client, t.Query(opts), t.Map).Refetch(ctx)
	if st.Cause != nil {
		return nil, st.Cause
	}
	return st.Data, nil
}

func (t Table[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	rows, err := t.Client.Select(ctx, t.base().Eq(store.ColumnID, id).Limit(1))
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, &store.NoRowsError{Entity: t.Entity, Op: "get"}
	}
	return t.Map(rows[0]), nil
}

// Create inserts values and returns the stored row, re-read so embedded
// relations are filled.
func (t Table[T]) Create(ctx context.Context, values store.Row) (T, error) {
	var zero T
	row, err := t.Client.Insert(ctx, t.Name, values)
	if err != nil {
		return zero, err
	}
	id, _ := row[store.ColumnID].(string)
	created, err := t.Get(ctx, id)
	if err != nil {
		logger.Warnf(ctx, "Create: reading back %s %s: %v", t.Entity, id, err)
		return t.Map(row), nil
	}
	return created, nil
}

func (t Table[T]) Update(ctx context.Context, id string, values store.Row) (T, error) {
	var zero T
	n, err := t.Client.Update(ctx, t.Name, values, store.Eq(store.ColumnID, id))
	if err != nil {
		return zero, err
	}
	if n == 0 {
		return zero, &store.NoRowsError{Entity: t.Entity, Op: "update"}
	}
	updated, err := t.Get(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("Update: reading back %s %s: %w", t.Entity, id, err)
	}
	return updated, nil
}

// Delete fails with a NoRowsError when id matched nothing.
func (t Table[T]) Delete(ctx context.Context, id string) error {
	n, err := t.Client.Delete(ctx, t.Name, store.Eq(store.ColumnID, id))
	if err != nil {
		return err
	}
	if n == 0 {
		return &store.NoRowsError{Entity: t.Entity, Op: "delete"}
	}
	return nil
}
