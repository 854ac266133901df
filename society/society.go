// Package society serves resident societies. The console ships with a static
// sample list; pointing society.source at "store" switches to the societies
// table.
package society

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/response"
	"boothbuzz-admin/store"

	"github.com/shopspring/decimal"
)

const (
	SourceStatic = "static"
	SourceStore  = "store"
)

var ErrReadOnly = errors.New("societies are read-only with the sample source")

type Source interface {
	List(ctx context.Context, opts crud.ListOptions) ([]model.Society, error)
	Get(ctx context.Context, id string) (model.Society, error)
	Create(ctx context.Context, in model.Society) (model.Society, error)
	Update(ctx context.Context, id string, in model.Society) (model.Society, error)
	Delete(ctx context.Context, id string) error
}

// NewSource picks the source named by kind. An empty kind means static.
func NewSource(kind string, client store.Client) (Source, error) {
	switch kind {
	case "", SourceStatic:
		return NewStatic(), nil
	case SourceStore:
		return NewStore(client), nil
	}
	return nil, fmt.Errorf("NewSource: unknown society source %q", kind)
}

// Store reads and writes the societies table.
type Store struct {
	table crud.Table[model.Society]
}

func NewStore(client store.Client) *Store {
	return &Store{table: crud.Table[model.Society]{Client: client, Name: "societies", Entity: "society", Map: mapper.Society}}
}

func (s *Store) List(ctx context.Context, opts crud.ListOptions) ([]model.Society, error) {
	return s.table.List(ctx, opts)
}

func (s *Store) Get(ctx context.Context, id string) (model.Society, error) {
	return s.table.Get(ctx, id)
}

func (s *Store) Create(ctx context.Context, in model.Society) (model.Society, error) {
	return s.table.Create(ctx, row(in))
}

func (s *Store) Update(ctx context.Context, id string, in model.Society) (model.Society, error) {
	return s.table.Update(ctx, id, row(in))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.table.Delete(ctx, id)
}

func row(s model.Society) store.Row {
	facilities := s.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	return store.Row{
		"name":                s.Name,
		"location":            s.Location,
		"city":                s.City,
		"contact_person":      s.ContactPerson,
		"email":               s.Email,
		"phone":               s.Phone,
		"member_count":        s.MemberCount,
		"facilities":          facilities,
		"active_events_count": s.ActiveEventsCount,
		"revenue":             s.Revenue,
		"status":              string(s.Status),
	}
}

// Static serves a fixed sample list and refuses writes.
type Static struct {
	rows []model.Society
}

func NewStatic() *Static {
	return &Static{rows: samples()}
}

func (s *Static) List(ctx context.Context, opts crud.ListOptions) ([]model.Society, error) {
	out := []model.Society{}
	for _, r := range s.rows {
		ok, err := match(r, opts.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}

	order := opts.Order
	asc := opts.Ascending
	if order == "" {
		order, asc = store.ColumnCreatedAt, false
	}
	less, err := comparator(order)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *Static) Get(ctx context.Context, id string) (model.Society, error) {
	for _, r := range s.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Society{}, &store.NoRowsError{Entity: "society", Op: "get"}
}

func (s *Static) Create(ctx context.Context, in model.Society) (model.Society, error) {
	return model.Society{}, readOnly()
}

func (s *Static) Update(ctx context.Context, id string, in model.Society) (model.Society, error) {
	return model.Society{}, readOnly()
}

func (s *Static) Delete(ctx context.Context, id string) error {
	return readOnly()
}

func readOnly() error {
	return fmt.Errorf("%w: %w", response.MethodNotAllowed("Societies cannot be changed while the sample list is in use"), ErrReadOnly)
}

func match(s model.Society, filters []store.Filter) (bool, error) {
	for _, f := range filters {
		want := fmt.Sprint(f.Value)
		var got string
		switch f.Column {
		case "id":
			got = s.ID
		case "city":
			got = s.City
		case "status":
			got = string(s.Status)
		case "name":
			got = s.Name
		default:
			return false, fmt.Errorf("match: societies.%s: %w", f.Column, store.ErrUnknownColumn)
		}
		if got != want {
			return false, nil
		}
	}
	return true, nil
}

func comparator(column string) (func(a, b model.Society) bool, error) {
	switch column {
	case store.ColumnCreatedAt:
		return func(a, b model.Society) bool { return a.CreatedAt.Before(b.CreatedAt) }, nil
	case "name":
		return func(a, b model.Society) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }, nil
	case "city":
		return func(a, b model.Society) bool { return a.City < b.City }, nil
	case "member_count":
		return func(a, b model.Society) bool { return a.MemberCount < b.MemberCount }, nil
	case "revenue":
		return func(a, b model.Society) bool { return a.Revenue.LessThan(b.Revenue) }, nil
	}
	return nil, fmt.Errorf("comparator: societies.%s: %w", column, store.ErrUnknownColumn)
}

func samples() []model.Society {
	at := func(day int) time.Time { return time.Date(2026, time.January, day, 10, 0, 0, 0, time.UTC) }
	return []model.Society{
		{
			ID:                "society-1", Name: "Green Meadows Residency", Location: "Baner Road", City: "Pune",
			ContactPerson:     "Anita Kulkarni", Email: "office@greenmeadows.in", Phone: "+91 98220 11223",
			MemberCount:       420, Facilities: []string{"clubhouse", "amphitheatre", "parking"},
			ActiveEventsCount: 2, Revenue: decimal.RequireFromString("185000"), Status: model.StatusActive,
			CreatedAt:         at(5), UpdatedAt: at(5),
		},
		{
			ID:                "society-2", Name: "Lakeview Towers", Location: "Powai", City: "Mumbai",
			ContactPerson:     "Rohit Mehra", Email: "committee@lakeviewtowers.in", Phone: "+91 99300 44556",
			MemberCount:       650, Facilities: []string{"banquet hall", "podium garden"},
			ActiveEventsCount: 3, Revenue: decimal.RequireFromString("312500.50"), Status: model.StatusActive,
			CreatedAt:         at(9), UpdatedAt: at(9),
		},
		{
			ID:                "society-3", Name: "Palm Grove Enclave", Location: "Whitefield", City: "Bengaluru",
			ContactPerson:     "Kavya Rao", Email: "secretary@palmgrove.in", Phone: "+91 80 4123 9876",
			MemberCount:       280, Facilities: []string{"open lawn"},
			ActiveEventsCount: 0, Revenue: decimal.Zero, Status: model.StatusInactive,
			CreatedAt:         at(14), UpdatedAt: at(14),
		},
		{
			ID:                "society-4", Name: "Sunrise Heights", Location: "Kharadi", City: "Pune",
			ContactPerson:     "Vikram Joshi", Email: "admin@sunriseheights.in", Phone: "+91 97654 32100",
			MemberCount:       510, Facilities: []string{"multipurpose hall", "parking", "terrace"},
			ActiveEventsCount: 1, Revenue: decimal.RequireFromString("96000"), Status: model.StatusActive,
			CreatedAt:         at(20), UpdatedAt: at(20),
		},
	}
}
