package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"boothbuzz-admin/factory"
	"boothbuzz-admin/form"
	"boothbuzz-admin/model"
	"boothbuzz-admin/response"
	"boothbuzz-admin/user"
	"boothbuzz-admin/validate"
)

func decodeUser(r *http.Request) (*model.User, string, error) {
	var req model.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "", fmt.Errorf("decodeUser: error unmarshalling request body: %w", err)
	}
	if req.Data.User == nil {
		return nil, "", fmt.Errorf("decodeUser: request body has no user")
	}
	return req.Data.User, req.Data.Password, nil
}

func CreateUser(service *user.User, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, password, err := decodeUser(r)
		if err != nil {
			response.BadRequest("invalid request body", err.Error()).Send(ctx, w)
			return
		}

		var created model.User
		flow := form.New("user", "/users", f.RedirectDelay())
		res := flow.Submit(ctx,
			func() error { return validate.User(*u, password, true) },
			func(ctx context.Context) error {
				var err error
				created, err = service.Create(ctx, *u, password)
				return err
			})
		finish(ctx, w, res, created, http.StatusCreated)
	}
}

func UpdateUser(service *user.User, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, _, err := decodeUser(r)
		if err != nil {
			response.BadRequest("invalid request body", err.Error()).Send(ctx, w)
			return
		}

		id := vars(r, "id")
		var updated model.User
		flow := form.New("user", "/users", f.RedirectDelay())
		res := flow.Submit(ctx,
			func() error { return validate.User(*u, "", false) },
			func(ctx context.Context) error {
				var err error
				updated, err = service.Update(ctx, id, *u)
				return err
			})
		finish(ctx, w, res, updated, http.StatusOK)
	}
}
