package event

import (
	"context"
	"errors"
	"fmt"
	"io"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/monitoring"
	"boothbuzz-admin/response"
	"boothbuzz-admin/storage"
	"boothbuzz-admin/store"
	"boothbuzz-admin/validate"
	"boothbuzz-admin/venue"
)

// Image is an optional poster uploaded with the event form.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type Event struct {
	table  crud.Table[model.Event]
	venues *venue.Venue
	blobs  storage.Blobs
}

// New returns the event service. blobs may be nil when no storage is
// configured; forms carrying an image are then rejected.
func New(client store.Client, blobs storage.Blobs) *Event {
	return &Event{
		table: crud.Table[model.Event]{
			Client: client,
			Name:   "events",
			Entity: "event",
			Select: "*, venues(name, city)",
			Map:    mapper.Event,
		},
		venues: venue.New(client),
		blobs:  blobs,
	}
}

func (e *Event) List(ctx context.Context, opts crud.ListOptions) ([]model.Event, error) {
	return e.table.List(ctx, opts)
}

func (e *Event) Get(ctx context.Context, id string) (model.Event, error) {
	return e.table.Get(ctx, id)
}

// Create fills the venue name and city from the selected venue, uploads img
// when given and then writes the row. If the row write fails the uploaded
// object is deleted again.
func (e *Event) Create(ctx context.Context, in model.Event, img *Image) (model.Event, error) {
	in, err := e.withVenue(ctx, in)
	if err != nil {
		return model.Event{}, err
	}
	return e.withImage(ctx, &in, img, func() (model.Event, error) {
		return e.table.Create(ctx, Row(in))
	})
}

// Update rejects status changes the lifecycle does not allow. Without a new
// image the stored image URL is kept.
func (e *Event) Update(ctx context.Context, id string, in model.Event, img *Image) (model.Event, error) {
	current, err := e.table.Get(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	if !current.Status.CanTransition(in.Status) {
		return model.Event{}, validate.Errors{
			"status": fmt.Sprintf("Cannot change status from %s to %s", current.Status, in.Status),
		}
	}
	if in, err = e.withVenue(ctx, in); err != nil {
		return model.Event{}, err
	}
	if img == nil && in.ImageURL == "" {
		in.ImageURL = current.ImageURL
	}
	return e.withImage(ctx, &in, img, func() (model.Event, error) {
		return e.table.Update(ctx, id, Row(in))
	})
}

func (e *Event) Delete(ctx context.Context, id string) error {
	return e.table.Delete(ctx, id)
}

// withVenue reads the selected venue as it is now and copies its name and
// city into the blank fields of in.
func (e *Event) withVenue(ctx context.Context, in model.Event) (model.Event, error) {
	if in.VenueID == "" {
		return in, nil
	}
	v, err := e.venues.Get(ctx, in.VenueID)
	if errors.Is(err, store.ErrNoRows) {
		return in, validate.Errors{"venueId": "Venue not found"}
	}
	if err != nil {
		return in, fmt.Errorf("withVenue: reading venue %s: %w", in.VenueID, err)
	}

	filled := ApplyVenue(model.Event{}, []model.Venue{v}, v.ID)
	if in.VenueName == "" {
		in.VenueName = filled.VenueName
	}
	if in.City == "" {
		in.City = filled.City
	}
	return in, nil
}

func (e *Event) withImage(ctx context.Context, in *model.Event, img *Image, write func() (model.Event, error)) (model.Event, error) {
	if img == nil {
		return write()
	}
	if e.blobs == nil {
		return model.Event{}, response.InvalidData("Image uploads are not enabled")
	}

	objectPath := storage.EventImagePath(img.Filename)
	url, err := e.blobs.Upload(ctx, objectPath, img.Body, img.ContentType)
	if err != nil {
		logger.Errorf(ctx, "withImage: upload failed for %s: %v", objectPath, err)
		return model.Event{}, response.StoreRejected(fmt.Sprintf("Image upload failed: %v", err))
	}
	in.ImageURL = url

	out, err := write()
	if err != nil {
		cerr := e.blobs.Delete(ctx, objectPath)
		monitoring.ObserveCompensation("event_image", cerr)
		if cerr != nil {
			logger.ErrorWithFields(ctx, map[string]interface{}{
				"object":    objectPath,
				"write_err": err.Error(),
			}, "withImage: could not delete orphaned image: "+cerr.Error())
		}
		return model.Event{}, err
	}
	return out, nil
}

// ApplyVenue copies the selected venue's name, city and capacity into form.
// It reads venues as loaded when the selection is made; later edits to the
// venue do not reach an already-filled form. An unknown id only sets VenueID.
func ApplyVenue(form model.Event, venues []model.Venue, venueID string) model.Event {
	form.VenueID = venueID
	for _, v := range venues {
		if v.ID == venueID {
			form.VenueName = v.Name
			form.City = v.City
			form.MaxCapacity = v.Capacity
			break
		}
	}
	return form
}

// Row converts the form into column values.
func Row(e model.Event) store.Row {
	return store.Row{
		"title":            e.Title,
		"description":      e.Description,
		"event_date":       e.EventDate,
		"event_time":       e.EventTime,
		"venue_id":         nullable(e.VenueID),
		"venue_name":       e.VenueName,
		"city":             e.City,
		"max_capacity":     e.MaxCapacity,
		"attendee_count":   e.AttendeeCount,
		"plan_type":        string(e.PlanType),
		"status":           string(e.Status),
		"revenue":          e.Revenue,
		"image_url":        e.ImageURL,
		"area_sq_ft":       e.AreaSqFt,
		"space_type":       string(e.SpaceType),
		"stall_count":      e.StallCount,
		"parking_capacity": e.ParkingCapacity,
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
