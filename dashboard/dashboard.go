// Package dashboard builds the landing page summary from five independent
// table fetches.
package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"boothbuzz-admin/fetcher"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"

	"github.com/shopspring/decimal"
)

const upcomingLimit = 5

type Totals struct {
	Users      int `json:"users"`
	Events     int `json:"events"`
	Venues     int `json:"venues"`
	Vendors    int `json:"vendors"`
	Exhibitors int `json:"exhibitors"`
}

// Summary reports each failed fetch under its table name. Totals for a
// failed table are zero; the other tables are unaffected.
type Summary struct {
	Totals       Totals            `json:"totals"`
	Upcoming     []model.Event     `json:"upcomingEvents"`
	TotalRevenue decimal.Decimal   `json:"totalRevenue"`
	Errors       map[string]string `json:"errors,omitempty"`
}

type Dashboard struct {
	client store.Client
	now    func() time.Time
}

func New(client store.Client) *Dashboard {
	return &Dashboard{client: client, now: time.Now}
}

// Load runs the fetches concurrently. A non-empty city scopes every table to it.
func (d *Dashboard) Load(ctx context.Context, city string) Summary {
	defer logger.LogExecutionTime(ctx, time.Now(), "dashboard load")

	var (
		wg         sync.WaitGroup
		users      fetcher.State[model.User]
		events     fetcher.State[model.Event]
		venues     fetcher.State[model.Venue]
		vendors    fetcher.State[model.Vendor]
		exhibitors fetcher.State[model.Exhibitor]
	)
	run(ctx, &wg, fetcher.New(d.client, d.query("users", "id, city", city), mapper.User), &users)
	run(ctx, &wg, fetcher.New(d.client, d.query("events", "*", city), mapper.Event), &events)
	run(ctx, &wg, fetcher.New(d.client, d.query("venues", "id, city", city), mapper.Venue), &venues)
	run(ctx, &wg, fetcher.New(d.client, d.query("vendors", "id, city", city), mapper.Vendor), &vendors)
	run(ctx, &wg, fetcher.New(d.client, d.query("exhibitors", "id, city", city), mapper.Exhibitor), &exhibitors)
	wg.Wait()

	s := Summary{
		Totals: Totals{
			Users:      len(users.Data),
			Events:     len(events.Data),
			Venues:     len(venues.Data),
			Vendors:    len(vendors.Data),
			Exhibitors: len(exhibitors.Data),
		},
		Upcoming:     upcoming(events.Data, d.now()),
		TotalRevenue: decimal.Zero,
		Errors:       map[string]string{},
	}
	for _, e := range events.Data {
		if e.Status != model.EventCancelled {
			s.TotalRevenue = s.TotalRevenue.Add(e.Revenue)
		}
	}
	for table, msg := range map[string]string{
		"users":      users.Err,
		"events":     events.Err,
		"venues":     venues.Err,
		"vendors":    vendors.Err,
		"exhibitors": exhibitors.Err,
	} {
		if msg != "" {
			s.Errors[table] = msg
		}
	}
	if len(s.Errors) == 0 {
		s.Errors = nil
	}
	return s
}

func (d *Dashboard) query(table, columns, city string) *store.Query {
	q := store.From(table).Select(columns)
	if city != "" {
		q = q.Eq("city", city)
	}
	return q
}

func run[T any](ctx context.Context, wg *sync.WaitGroup, f *fetcher.Fetcher[T], out *fetcher.State[T]) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		*out = f.Refetch(ctx)
	}()
}

// upcoming keeps published or ongoing events dated today or later, soonest first.
func upcoming(events []model.Event, now time.Time) []model.Event {
	today := now.Format("2006-01-02")
	out := []model.Event{}
	for _, e := range events {
		if e.Status != model.EventPublished && e.Status != model.EventOngoing {
			continue
		}
		if e.EventDate == "" || e.EventDate < today {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EventDate != out[j].EventDate {
			return out[i].EventDate < out[j].EventDate
		}
		return out[i].EventTime < out[j].EventTime
	})
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}
