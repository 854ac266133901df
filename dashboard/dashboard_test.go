package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"boothbuzz-admin/store"
	"boothbuzz-admin/store/storetest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failing fails every select against one table.
type failing struct {
	*storetest.Memory
	table string
}

func (f failing) Select(ctx context.Context, q *store.Query) ([]store.Row, error) {
	if q.Table == f.table {
		return nil, &store.Error{Op: "select", Table: f.table, Err: errors.New("permission denied for table " + f.table)}
	}
	return f.Memory.Select(ctx, q)
}

func seeded() *storetest.Memory {
	m := storetest.NewMemory()
	m.Seed("users",
		store.Row{"id": "u1", "city": "Pune"},
		store.Row{"id": "u2", "city": "Mumbai"},
	)
	m.Seed("events",
		store.Row{"id": "e1", "city": "Pune", "status": "published", "event_date": "2026-11-20", "revenue": "1000.50"},
		store.Row{"id": "e2", "city": "Pune", "status": "ongoing", "event_date": "2026-10-18", "revenue": "200"},
		store.Row{"id": "e3", "city": "Pune", "status": "published", "event_date": "2026-09-01", "revenue": "300"},
		store.Row{"id": "e4", "city": "Pune", "status": "cancelled", "event_date": "2026-12-01", "revenue": "999"},
		store.Row{"id": "e5", "city": "Mumbai", "status": "draft", "event_date": "2026-12-05", "revenue": "50"},
	)
	m.Seed("venues", store.Row{"id": "v1", "city": "Pune"})
	m.Seed("vendors", store.Row{"id": "vd1", "city": "Mumbai"})
	m.Seed("exhibitors", store.Row{"id": "x1", "city": "Pune"}, store.Row{"id": "x2", "city": "Pune"})
	return m
}

func fixed(d *Dashboard) *Dashboard {
	d.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	return d
}

func TestLoadSummarisesEveryTable(t *testing.T) {
	m := seeded()
	var selects int32
	m.BeforeSelect = func(int) { atomic.AddInt32(&selects, 1) }

	s := fixed(New(m)).Load(context.Background(), "")
	assert.Equal(t, Totals{Users: 2, Events: 5, Venues: 1, Vendors: 1, Exhibitors: 2}, s.Totals)
	assert.Nil(t, s.Errors)
	assert.Equal(t, int32(5), atomic.LoadInt32(&selects))

	require.Len(t, s.Upcoming, 2)
	assert.Equal(t, "e2", s.Upcoming[0].ID)
	assert.Equal(t, "e1", s.Upcoming[1].ID)
	assert.True(t, decimal.RequireFromString("1550.50").Equal(s.TotalRevenue), s.TotalRevenue.String())
}

func TestLoadScopesToCity(t *testing.T) {
	s := fixed(New(seeded())).Load(context.Background(), "Mumbai")
	assert.Equal(t, Totals{Users: 1, Events: 1, Venues: 0, Vendors: 1, Exhibitors: 0}, s.Totals)
	assert.Empty(t, s.Upcoming)
}

func TestFailedFetchIsReportedAlone(t *testing.T) {
	s := fixed(New(failing{Memory: seeded(), table: "vendors"})).Load(context.Background(), "")
	assert.Equal(t, map[string]string{"vendors": "permission denied for table vendors"}, s.Errors)
	assert.Equal(t, 0, s.Totals.Vendors)
	assert.Equal(t, 2, s.Totals.Users)
	assert.Equal(t, 5, s.Totals.Events)
}
