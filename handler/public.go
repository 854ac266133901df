package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"boothbuzz-admin/factory"
	"boothbuzz-admin/form"
	"boothbuzz-admin/model"
	"boothbuzz-admin/registration"
	"boothbuzz-admin/response"
	"boothbuzz-admin/validate"
)

func eventID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.URL.Query().Get("event_id"))
	if id == "" {
		return "", fmt.Errorf("event_id is required")
	}
	return id, nil
}

func PublicEvent(reg *registration.Registration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := eventID(r)
		if err != nil {
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		pe, err := reg.Event(ctx, id)
		if err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		response.SuccessResponse{Data: pe}.Send(w)
	}
}

func Register(reg *registration.Registration, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := eventID(r)
		if err != nil {
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}

		var req model.RegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data.Exhibitor == nil {
			response.BadRequest("invalid request body", fmt.Sprintf("register: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}
		in := registration.Prepare(id, *req.Data.Exhibitor)

		var created model.Exhibitor
		flow := form.New("registration", fmt.Sprintf("/register/%s/done", id), f.RedirectDelay())
		res := flow.Submit(ctx,
			func() error { return validate.Exhibitor(in) },
			func(ctx context.Context) error {
				var err error
				created, err = reg.Register(ctx, id, in)
				return err
			})
		finish(ctx, w, res, created, http.StatusCreated)
	}
}
