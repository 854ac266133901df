package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	c "boothbuzz-admin/context"
	"boothbuzz-admin/event"
	"boothbuzz-admin/factory"
	"boothbuzz-admin/form"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/model"
	"boothbuzz-admin/response"
	"boothbuzz-admin/validate"
	"boothbuzz-admin/venue"
)

const maxImageBytes = 10 << 20

// VenueFill is the subset of an event form filled from a chosen venue.
type VenueFill struct {
	VenueID     string `json:"venueId"`
	VenueName   string `json:"venueName"`
	City        string `json:"city"`
	MaxCapacity int64  `json:"maxCapacity"`
}

// eventForm reads the event either from a JSON {"data": ...} body or from a
// multipart form with a "data" JSON field and an optional "image" file. The
// returned closer releases the uploaded file.
func eventForm(r *http.Request) (*model.Event, *event.Image, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		in, err := decode[model.Event](r)
		return in, nil, noop, err
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, nil, noop, fmt.Errorf("eventForm: error parsing multipart form: %w", err)
	}
	var in model.Event
	if err := json.Unmarshal([]byte(r.FormValue("data")), &in); err != nil {
		return nil, nil, noop, fmt.Errorf("eventForm: error unmarshalling data field: %w", err)
	}

	file, hdr, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return &in, nil, noop, nil
	}
	if err != nil {
		return nil, nil, noop, fmt.Errorf("eventForm: error reading image: %w", err)
	}
	return &in, image(file, hdr), func() { file.Close() }, nil
}

func image(file multipart.File, hdr *multipart.FileHeader) *event.Image {
	ct := hdr.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &event.Image{Filename: hdr.Filename, ContentType: ct, Body: file}
}

func CreateEvent(svc *event.Event, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in, img, done, err := eventForm(r)
		defer done()
		if err != nil {
			response.BadRequest("invalid request body", err.Error()).Send(ctx, w)
			return
		}

		var created model.Event
		flow := form.New("event", "/events", f.RedirectDelay())
		res := flow.Submit(ctx,
			func() error { return validate.Event(*in, time.Now(), true) },
			func(ctx context.Context) error {
				var err error
				created, err = svc.Create(ctx, *in, img)
				return err
			})
		if res.State == form.Succeeded {
			markEventCreated(ctx, f)
		}
		finish(ctx, w, res, created, http.StatusCreated)
	}
}

func markEventCreated(ctx context.Context, f factory.Factory) {
	u := c.SessionUser(ctx)
	if u == nil {
		return
	}
	if err := f.Sessions(ctx).MarkEventCreated(ctx, u.ID); err != nil {
		logger.Warnf(ctx, "markEventCreated: %v", err)
	}
}

func UpdateEvent(svc *event.Event, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in, img, done, err := eventForm(r)
		defer done()
		if err != nil {
			response.BadRequest("invalid request body", err.Error()).Send(ctx, w)
			return
		}

		id := vars(r, "id")
		var updated model.Event
		flow := form.New("event", "/events", f.RedirectDelay())
		res := flow.Submit(ctx,
			func() error { return validate.Event(*in, time.Now(), false) },
			func(ctx context.Context) error {
				var err error
				updated, err = svc.Update(ctx, id, *in, img)
				return err
			})
		finish(ctx, w, res, updated, http.StatusOK)
	}
}

// FillVenue returns the venue values an event form copies when venue_id is
// selected. The values are read once, at selection time.
func FillVenue(venues *venue.Venue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(r.URL.Query().Get("venue_id"))
		if id == "" {
			response.InvalidData("venue_id is required").Send(ctx, w)
			return
		}

		v, err := venues.Get(ctx, id)
		if err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		filled := event.ApplyVenue(model.Event{}, []model.Venue{v}, id)
		response.SuccessResponse{Data: VenueFill{
			VenueID:     filled.VenueID,
			VenueName:   filled.VenueName,
			City:        filled.City,
			MaxCapacity: filled.MaxCapacity,
		}}.Send(w)
	}
}
