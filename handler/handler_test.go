package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	c "boothbuzz-admin/context"
	"boothbuzz-admin/crud"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOptions(t *testing.T) {
	opts, err := listOptions(httptest.NewRequest("GET", "/v1/vendors?limit=25&order=name&asc=true", nil))
	require.NoError(t, err)
	assert.Equal(t, crud.ListOptions{Limit: 25, Order: "name", Ascending: true}, opts)

	opts, err = listOptions(httptest.NewRequest("GET", "/v1/vendors", nil))
	require.NoError(t, err)
	assert.Equal(t, crud.ListOptions{}, opts)

	for _, q := range []string{"limit=0", "limit=501", "limit=ten", "asc=maybe"} {
		_, err := listOptions(httptest.NewRequest("GET", "/v1/vendors?"+q, nil))
		assert.Error(t, err, q)
	}
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, scope(ctx, crud.ListOptions{}).Filters)

	global := c.WithSessionUser(ctx, &model.User{Role: model.RoleSuperAdmin, City: "Pune"})
	assert.Empty(t, scope(global, crud.ListOptions{}).Filters)

	local := c.WithSessionUser(ctx, &model.User{Role: model.RoleCityManager, City: "Pune"})
	assert.Equal(t, []store.Filter{store.Eq("city", "Pune")}, scope(local, crud.ListOptions{}).Filters)
}

func TestGetIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.7:5123"
	ip, err := getIP(r)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	ip, err = getIP(r)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", ip)

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "nonsense"
	_, err = getIP(r)
	assert.Error(t, err)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "No profile for this account", capitalize("no profile for this account"))
	assert.Equal(t, "", capitalize(""))
}
