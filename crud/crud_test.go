package crud

import (
	"context"
	"errors"
	"testing"

	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"
	"boothbuzz-admin/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venues(m *storetest.Memory) Table[model.Venue] {
	return Table[model.Venue]{Client: m, Name: "venues", Entity: "venue", Map: mapper.Venue}
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	m := storetest.NewMemory()
	tbl := venues(m)

	created, err := tbl.Create(ctx, store.Row{
		"name":       "Hall A", "city": "Pune", "capacity": int64(800),
		"facilities": []string{"parking", "wifi"}, "status": "active",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"parking", "wifi"}, created.Facilities)

	got, err := tbl.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestListAppliesFiltersOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	m := storetest.NewMemory()
	m.Seed("venues",
		store.Row{"id": "v1", "name": "Hall C", "city": "Pune"},
		store.Row{"id": "v2", "name": "Hall A", "city": "Pune"},
		store.Row{"id": "v3", "name": "Hall B", "city": "Mumbai"},
		store.Row{"id": "v4", "name": "Hall B", "city": "Pune"},
	)

	got, err := venues(m).List(ctx, ListOptions{
		Filters:   []store.Filter{store.Eq("city", "Pune")},
		Order:     "name",
		Ascending: true,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Hall A", got[0].Name)
	assert.Equal(t, "Hall B", got[1].Name)
}

func TestListSurfacesStoreError(t *testing.T) {
	m := storetest.NewMemory()
	m.FailNext("select", errors.New("relation \"venues\" does not exist"))

	_, err := venues(m).List(context.Background(), ListOptions{})
	var se *store.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "relation \"venues\" does not exist", err.Error())
}

func TestZeroAffectedRows(t *testing.T) {
	ctx := context.Background()
	tbl := venues(storetest.NewMemory())

	err := tbl.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNoRows))
	assert.Equal(t, "No venue was deleted", err.Error())

	_, err = tbl.Update(ctx, "missing", store.Row{"name": "x"})
	assert.Equal(t, "No venue was updated", err.Error())

	_, err = tbl.Get(ctx, "missing")
	assert.Equal(t, "No venue was found", err.Error())
}

func TestUpdateReturnsFreshRow(t *testing.T) {
	ctx := context.Background()
	m := storetest.NewMemory()
	m.Seed("venues", store.Row{"id": "v1", "name": "Hall A", "capacity": int64(100)})

	got, err := venues(m).Update(ctx, "v1", store.Row{"capacity": int64(250)})
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.Capacity)
	assert.Equal(t, "Hall A", got.Name)
}

func TestQueryDefaultsToNewestFirst(t *testing.T) {
	q := venues(storetest.NewMemory()).Query(ListOptions{})
	assert.Equal(t, "venues?select=*&order=created_at.desc", q.String())
}

func TestCreateFallsBackToInsertedRow(t *testing.T) {
	m := storetest.NewMemory()
	m.FailNext("select", errors.New("Lost connection to MySQL server during query"))

	created, err := venues(m).Create(context.Background(), store.Row{
		"name": "Hall A", "facilities": []string{"parking", "wifi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hall A", created.Name)
	assert.Equal(t, []string{"parking", "wifi"}, created.Facilities)
	assert.Len(t, m.Rows("venues"), 1)
}

func TestListQueriesOncePerCall(t *testing.T) {
	ctx := context.Background()
	m := storetest.NewMemory()
	tbl := venues(m)
	m.Seed("venues", store.Row{"id": "v1", "name": "Hall A"})

	first, err := tbl.List(ctx, ListOptions{})
	require.NoError(t, err)
	m.Seed("venues", store.Row{"id": "v2", "name": "Hall B"})
	second, err := tbl.List(ctx, ListOptions{})
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
	assert.Equal(t, 2, m.Calls("select"))
}
