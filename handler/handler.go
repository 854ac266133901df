package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	c "boothbuzz-admin/context"
	"boothbuzz-admin/crud"
	"boothbuzz-admin/form"
	"boothbuzz-admin/response"
	"boothbuzz-admin/store"

	"github.com/gorilla/mux"
)

const maxListLimit = 500

// envelope is the {"data": ...} body every form posts.
type envelope[T any] struct {
	Data *T `json:"data"`
}

func decode[T any](r *http.Request) (*T, error) {
	var req envelope[T]
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode: error unmarshalling request body: %w", err)
	}
	if req.Data == nil {
		return nil, fmt.Errorf("decode: request body has no data")
	}
	return req.Data, nil
}

// listOptions reads limit, order and asc from the query string.
func listOptions(r *http.Request) (crud.ListOptions, error) {
	q := r.URL.Query()
	opts := crud.ListOptions{Order: strings.TrimSpace(q.Get("order"))}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxListLimit {
			return opts, fmt.Errorf("limit must be between 1 and %d", maxListLimit)
		}
		opts.Limit = n
	}
	if v := q.Get("asc"); v != "" {
		asc, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("asc must be true or false")
		}
		opts.Ascending = asc
	}
	return opts, nil
}

// scope restricts lists to the caller's city unless the role sees every city.
func scope(ctx context.Context, opts crud.ListOptions) crud.ListOptions {
	if city := scopedCity(ctx); city != "" {
		opts.Filters = append(opts.Filters, store.Eq("city", city))
	}
	return opts
}

func scopedCity(ctx context.Context) string {
	u := c.SessionUser(ctx)
	if u == nil || u.Role.IsGlobal() {
		return ""
	}
	return u.City
}

func vars(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}

// finish renders a form result: the redirect on success, the field errors or
// store message otherwise.
func finish(ctx context.Context, w http.ResponseWriter, res form.Result, data interface{}, code int) {
	if res.State != form.Succeeded {
		if res.Err == form.ErrInProgress {
			response.BadRequest("Form is already being submitted", "").Send(ctx, w)
			return
		}
		response.FromError(ctx, res.Err).Send(ctx, w)
		return
	}
	response.SuccessResponse{
		Data:            data,
		Redirect:        res.Redirect,
		RedirectAfterMS: res.RedirectAfter.Milliseconds(),
		StatusCode:      code,
	}.Send(w)
}
