package vendors

import (
	"context"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"
)

type Vendor struct {
	table crud.Table[model.Vendor]
}

func New(client store.Client) *Vendor {
	return &Vendor{table: crud.Table[model.Vendor]{Client: client, Name: "vendors", Entity: "vendor", Map: mapper.Vendor}}
}

func (v *Vendor) List(ctx context.Context, opts crud.ListOptions) ([]model.Vendor, error) {
	return v.table.List(ctx, opts)
}

func (v *Vendor) Get(ctx context.Context, id string) (model.Vendor, error) {
	return v.table.Get(ctx, id)
}

func (v *Vendor) Create(ctx context.Context, in model.Vendor) (model.Vendor, error) {
	return v.table.Create(ctx, row(in))
}

func (v *Vendor) Update(ctx context.Context, id string, in model.Vendor) (model.Vendor, error) {
	return v.table.Update(ctx, id, row(in))
}

func (v *Vendor) Delete(ctx context.Context, id string) error {
	return v.table.Delete(ctx, id)
}

func row(v model.Vendor) store.Row {
	return store.Row{
		"name":           v.Name,
		"category":       string(v.Category),
		"city":           v.City,
		"contact_person": v.ContactPerson,
		"email":          v.Email,
		"phone":          v.Phone,
		"rating":         v.Rating,
		"completed_jobs": v.CompletedJobs,
		"status":         string(v.Status),
		"price_range":    v.PriceRange,
	}
}
