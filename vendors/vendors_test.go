package vendors

import (
	"context"
	"encoding/json"
	"testing"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"
	"boothbuzz-admin/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acmeLights() model.Vendor {
	return model.Vendor{
		Name:          "Acme Lights",
		Category:      model.VendorSoundLights,
		City:          "Pune",
		ContactPerson: "R. Rao",
		Email:         "r@acme.io",
		Phone:         "+919876543210",
		Rating:        4.5,
		CompletedJobs: 12,
		Status:        model.StatusActive,
		PriceRange:    "₹10,000-₹30,000",
	}
}

func TestCreatedVendorAppearsInList(t *testing.T) {
	ctx := context.Background()
	svc := New(storetest.NewMemory())

	created, err := svc.Create(ctx, acmeLights())
	require.NoError(t, err)
	assert.Equal(t, "vendor-1", created.ID)

	list, err := svc.List(ctx, crud.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Lights", list[0].Name)
	assert.Equal(t, 4.5, list[0].Rating)
	assert.Equal(t, "sound lights", list[0].CategoryLabel)
	assert.Equal(t, "₹10,000-₹30,000", list[0].PriceRange)

	b, err := json.Marshal(list[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"rating":4.5`)
}

func TestUpdateAndDeleteVendor(t *testing.T) {
	ctx := context.Background()
	m := storetest.NewMemory()
	m.Seed("vendors", store.Row{"id": "v1", "name": "Acme Lights", "category": "sound_lights"})
	svc := New(m)

	in := acmeLights()
	in.CompletedJobs = 13
	got, err := svc.Update(ctx, "v1", in)
	require.NoError(t, err)
	assert.Equal(t, int64(13), got.CompletedJobs)

	require.NoError(t, svc.Delete(ctx, "v1"))
	assert.Equal(t, "No vendor was deleted", svc.Delete(ctx, "v1").Error())
}
