package handler

import (
	"context"
	"fmt"
	"net/http"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/factory"
	"boothbuzz-admin/form"
	"boothbuzz-admin/response"
)

type Reader[T any] interface {
	List(ctx context.Context, opts crud.ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
}

type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Service is the CRUD surface shared by venues, vendors, exhibitors and
// societies. Events and users take extra inputs on write and only share the
// read and delete handlers.
type Service[T any] interface {
	Reader[T]
	Deleter
	Create(ctx context.Context, in T) (T, error)
	Update(ctx context.Context, id string, in T) (T, error)
}

// Page names an entity's routes for messages and redirects.
type Page struct {
	Entity string
	Route  string
}

func List[T any](svc Reader[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		opts, err := listOptions(r)
		if err != nil {
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		items, err := svc.List(ctx, scope(ctx, opts))
		if err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		response.SuccessResponse{Data: items}.Send(w)
	}
}

func Get[T any](svc Reader[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		item, err := svc.Get(ctx, vars(r, "id"))
		if err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		response.SuccessResponse{Data: item}.Send(w)
	}
}

func Create[T any](svc Service[T], page Page, check func(T) error, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in, err := decode[T](r)
		if err != nil {
			response.BadRequest("invalid request body", err.Error()).Send(ctx, w)
			return
		}

		var created T
		flow := form.New(page.Entity, page.Route, f.RedirectDelay())
		res := flow.Submit(ctx,
			func() error { return check(*in) },
			func(ctx context.Context) error {
				var err error
				created, err = svc.Create(ctx, *in)
				return err
			})
		finish(ctx, w, res, created, http.StatusCreated)
	}
}

func Update[T any](svc Service[T], page Page, check func(T) error, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in, err := decode[T](r)
		if err != nil {
			response.BadRequest("invalid request body", err.Error()).Send(ctx, w)
			return
		}

		id := vars(r, "id")
		var updated T
		flow := form.New(page.Entity, page.Route, f.RedirectDelay())
		res := flow.Submit(ctx,
			func() error { return check(*in) },
			func(ctx context.Context) error {
				var err error
				updated, err = svc.Update(ctx, id, *in)
				return err
			})
		finish(ctx, w, res, updated, http.StatusOK)
	}
}

func Delete(svc Deleter, page Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Delete(ctx, vars(r, "id")); err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		response.SuccessResponse{Message: fmt.Sprintf("The %s was deleted", page.Entity)}.Send(w)
	}
}
