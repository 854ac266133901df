// Package fetcher binds a remote table query to a view-model slice.
//
// A Fetcher issues one query per fetch, replaces its data wholesale on
// success and keeps the previous data on failure. It is not a cache: there is
// no invalidation, deduplication, retry or eviction. Each fetch takes a
// request id and only the response to the latest issued id is committed, so
// overlapping Refetch calls cannot leave older data behind.
package fetcher

import (
	"context"
	"reflect"
	"sync"

	"boothbuzz-admin/logger"
	"boothbuzz-admin/store"
)

type State[T any] struct {
	Data    []T    `json:"data"`
	Loading bool   `json:"loading"`
	Err     string `json:"error,omitempty"`
	// Cause is the error behind Err, kept for callers that map it to a status.
	Cause error `json:"-"`
}

type Fetcher[T any] struct {
	client store.Client
	query  *store.Query
	mapRow func(store.Row) T

	mu      sync.Mutex
	data    []T
	loading bool
	err     error
	issued  uint64
	deps    []interface{}
	primed  bool
}

func New[T any](client store.Client, q *store.Query, mapRow func(store.Row) T) *Fetcher[T] {
	return &Fetcher[T]{client: client, query: q, mapRow: mapRow, data: []T{}}
}

// SetDeps fetches when called for the first time or when deps differ from the
// previous call. It reports whether a fetch was issued.
func (f *Fetcher[T]) SetDeps(ctx context.Context, deps ...interface{}) bool {
	f.mu.Lock()
	changed := !f.primed || !sameDeps(f.deps, deps)
	f.primed = true
	f.deps = append([]interface{}(nil), deps...)
	f.mu.Unlock()

	if changed {
		f.fetch(ctx)
	}
	return changed
}

// Refetch issues one query regardless of deps and returns the state after it resolves.
func (f *Fetcher[T]) Refetch(ctx context.Context) State[T] {
	f.fetch(ctx)
	return f.State()
}

// State returns a snapshot; Data is a copy.
func (f *Fetcher[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := State[T]{
		Data:    append([]T{}, f.data...),
		Loading: f.loading,
		Cause:   f.err,
	}
	if f.err != nil {
		st.Err = f.err.Error()
	}
	return st
}

func (f *Fetcher[T]) fetch(ctx context.Context) {
	f.mu.Lock()
	f.issued++
	id := f.issued
	f.loading = true
	q := f.query.Clone()
	f.mu.Unlock()

	rows, err := f.client.Select(ctx, q)

	var data []T
	if err == nil {
		data = make([]T, 0, len(rows))
		for _, r := range rows {
			data = append(data, f.mapRow(r))
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if id != f.issued {
		logger.Debugf(ctx, "fetch: dropping stale response %d for %s, latest is %d", id, q.Table, f.issued)
		return
	}
	f.loading = false

	if err != nil {
		f.err = err
		logger.ErrorWithFields(ctx, map[string]interface{}{
			"table":   q.Table,
			"query":   q.String(),
			"request": id,
		}, "fetch: query failed: "+err.Error())
		return
	}

	f.data = data
	f.err = nil
}

func sameDeps(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		ta, tb := reflect.TypeOf(a[i]), reflect.TypeOf(b[i])
		if ta != tb || !ta.Comparable() || a[i] != b[i] {
			return false
		}
	}
	return true
}
