package venue

import (
	"context"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"
)

type Venue struct {
	table crud.Table[model.Venue]
}

func New(client store.Client) *Venue {
	return &Venue{table: crud.Table[model.Venue]{Client: client, Name: "venues", Entity: "venue", Map: mapper.Venue}}
}

func (v *Venue) List(ctx context.Context, opts crud.ListOptions) ([]model.Venue, error) {
	return v.table.List(ctx, opts)
}

func (v *Venue) Get(ctx context.Context, id string) (model.Venue, error) {
	return v.table.Get(ctx, id)
}

func (v *Venue) Create(ctx context.Context, in model.Venue) (model.Venue, error) {
	return v.table.Create(ctx, row(in))
}

func (v *Venue) Update(ctx context.Context, id string, in model.Venue) (model.Venue, error) {
	return v.table.Update(ctx, id, row(in))
}

func (v *Venue) Delete(ctx context.Context, id string) error {
	return v.table.Delete(ctx, id)
}

func row(v model.Venue) store.Row {
	return store.Row{
		"name":                v.Name,
		"location":            v.Location,
		"city":                v.City,
		"contact_person":      v.ContactPerson,
		"email":               v.Email,
		"phone":               v.Phone,
		"capacity":            v.Capacity,
		"facilities":          nonNil(v.Facilities),
		"amenities":           nonNil(v.Amenities),
		"active_events_count": v.ActiveEventsCount,
		"total_revenue":       v.TotalRevenue,
		"status":              string(v.Status),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
