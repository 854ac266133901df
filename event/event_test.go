package event

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/model"
	"boothbuzz-admin/response"
	"boothbuzz-admin/store"
	"boothbuzz-admin/store/storetest"
	"boothbuzz-admin/validate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobs struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeBlobs) Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	ioutil.ReadAll(body)
	f.uploaded = append(f.uploaded, objectPath)
	return "https://cdn.boothbuzz.in/" + objectPath, nil
}

func (f *fakeBlobs) Delete(ctx context.Context, objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	return f.deleteErr
}

func expo() model.Event {
	return model.Event{
		Title:       "Diwali Expo",
		EventDate:   "2026-11-20",
		EventTime:   "10:00",
		VenueID:     "venue-hall-a",
		MaxCapacity: 500,
		PlanType:    model.PlanPremium,
		Status:      model.EventDraft,
		Revenue:     decimal.RequireFromString("25000.50"),
		SpaceType:   model.SpaceCovered,
	}
}

func poster() *Image {
	return &Image{Filename: "Poster.PNG", ContentType: "image/png", Body: strings.NewReader("png")}
}

func seeded() *storetest.Memory {
	m := storetest.NewMemory()
	m.Seed("venues", store.Row{"id": "venue-hall-a", "name": "Hall A", "city": "Pune", "capacity": int64(800)})
	return m
}

func TestCreateFillsVenueFromEmbed(t *testing.T) {
	svc := New(seeded(), nil)

	got, err := svc.Create(context.Background(), expo(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hall A", got.VenueName)
	assert.Equal(t, "Pune", got.City)
	assert.Equal(t, "2026-11-20", got.EventDate)
	assert.True(t, decimal.RequireFromString("25000.50").Equal(got.Revenue))

	list, err := svc.List(context.Background(), crud.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateStoresVenueCityOnRow(t *testing.T) {
	m := seeded()

	_, err := New(m, nil).Create(context.Background(), expo(), nil)
	require.NoError(t, err)
	rows := m.Rows("events")
	require.Len(t, rows, 1)
	assert.Equal(t, "Pune", rows[0]["city"])
	assert.Equal(t, "Hall A", rows[0]["venue_name"])

	in := expo()
	in.City = "Pimpri"
	got, err := New(m, nil).Create(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pimpri", got.City)
}

func TestCreateAtUnknownVenue(t *testing.T) {
	m := seeded()
	blobs := &fakeBlobs{}
	in := expo()
	in.VenueID = "venue-gone"

	_, err := New(m, blobs).Create(context.Background(), in, poster())
	var fields validate.Errors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "Venue not found", fields["venueId"])
	assert.Equal(t, 0, m.Calls("insert"))
	assert.Empty(t, blobs.uploaded)
}

func TestCreateWithImageStoresURL(t *testing.T) {
	blobs := &fakeBlobs{}
	svc := New(seeded(), blobs)

	got, err := svc.Create(context.Background(), expo(), poster())
	require.NoError(t, err)
	require.Len(t, blobs.uploaded, 1)
	assert.True(t, strings.HasPrefix(blobs.uploaded[0], "events/"))
	assert.Equal(t, "https://cdn.boothbuzz.in/"+blobs.uploaded[0], got.ImageURL)
	assert.Empty(t, blobs.deleted)
}

func TestUploadFailureSkipsRowWrite(t *testing.T) {
	m := seeded()
	svc := New(m, &fakeBlobs{uploadErr: errors.New("AccessDenied")})

	_, err := svc.Create(context.Background(), expo(), poster())
	var er response.ErrorResponse
	require.True(t, errors.As(err, &er))
	assert.Equal(t, http.StatusBadRequest, er.StatusCode)
	assert.Contains(t, er.Fields[validate.Submit], "AccessDenied")
	assert.Equal(t, 0, m.Calls("insert"))
}

func TestRowFailureDeletesUploadedImage(t *testing.T) {
	m := seeded()
	m.FailNext("insert", errors.New("Data too long for column 'title'"))
	blobs := &fakeBlobs{}
	svc := New(m, blobs)

	_, err := svc.Create(context.Background(), expo(), poster())
	var se *store.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, blobs.uploaded, blobs.deleted)
	assert.Empty(t, m.Rows("events"))
}

func TestFailedCompensationKeepsWriteError(t *testing.T) {
	m := seeded()
	m.FailNext("insert", errors.New("Duplicate entry"))
	blobs := &fakeBlobs{deleteErr: errors.New("timeout")}
	svc := New(m, blobs)

	_, err := svc.Create(context.Background(), expo(), poster())
	assert.Equal(t, "Duplicate entry", err.Error())
	assert.Len(t, blobs.deleted, 1)
}

func TestImageWithoutStorageIsRejected(t *testing.T) {
	m := seeded()
	_, err := New(m, nil).Create(context.Background(), expo(), poster())
	var er response.ErrorResponse
	require.True(t, errors.As(err, &er))
	assert.Equal(t, "INVALID_DATA", er.Status)
	assert.Equal(t, 0, m.Calls("insert"))
}

func TestUpdateChecksStatusTransition(t *testing.T) {
	ctx := context.Background()
	m := seeded()
	m.Seed("events", store.Row{"id": "ev-1", "title": "Expo", "status": "completed", "image_url": "https://cdn/old.png"})
	svc := New(m, nil)

	in := expo()
	in.Status = model.EventDraft
	_, err := svc.Update(ctx, "ev-1", in, nil)
	var fields validate.Errors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "Cannot change status from completed to draft", fields["status"])
	assert.Equal(t, 0, m.Calls("update"))

	m.Seed("events", store.Row{"id": "ev-2", "title": "Expo", "status": "draft", "image_url": "https://cdn/old.png"})
	in.Status = model.EventPublished
	got, err := svc.Update(ctx, "ev-2", in, nil)
	require.NoError(t, err)
	assert.Equal(t, model.EventPublished, got.Status)
	assert.Equal(t, "https://cdn/old.png", got.ImageURL)
	assert.Equal(t, "Pune", got.City)

	in.VenueID = "venue-gone"
	in.Status = model.EventOngoing
	_, err = svc.Update(ctx, "ev-2", in, nil)
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "Venue not found", fields["venueId"])
}

func TestUpdateMissingEvent(t *testing.T) {
	_, err := New(seeded(), nil).Update(context.Background(), "nope", expo(), nil)
	assert.True(t, errors.Is(err, store.ErrNoRows))
}

func TestDeleteMissingEvent(t *testing.T) {
	err := New(seeded(), nil).Delete(context.Background(), "nope")
	assert.Equal(t, "No event was deleted", err.Error())
}

func TestApplyVenueSnapshotsSelection(t *testing.T) {
	venues := []model.Venue{
		{ID: "v1", Name: "Hall A", City: "Pune", Capacity: 800},
		{ID: "v2", Name: "Dome", City: "Mumbai", Capacity: 3000},
	}

	form := ApplyVenue(model.Event{Title: "Expo"}, venues, "v2")
	assert.Equal(t, "Dome", form.VenueName)
	assert.Equal(t, "Mumbai", form.City)
	assert.Equal(t, int64(3000), form.MaxCapacity)
	assert.Equal(t, "Expo", form.Title)

	venues[1].Capacity = 10
	assert.Equal(t, int64(3000), form.MaxCapacity)

	form = ApplyVenue(form, venues, "unknown")
	assert.Equal(t, "unknown", form.VenueID)
	assert.Equal(t, "Dome", form.VenueName)
}
