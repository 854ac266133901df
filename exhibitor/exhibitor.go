package exhibitor

import (
	"context"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"
)

type Exhibitor struct {
	table crud.Table[model.Exhibitor]
}

func New(client store.Client) *Exhibitor {
	return &Exhibitor{table: crud.Table[model.Exhibitor]{Client: client, Name: "exhibitors", Entity: "exhibitor", Map: mapper.Exhibitor}}
}

func (e *Exhibitor) List(ctx context.Context, opts crud.ListOptions) ([]model.Exhibitor, error) {
	return e.table.List(ctx, opts)
}

func (e *Exhibitor) Get(ctx context.Context, id string) (model.Exhibitor, error) {
	return e.table.Get(ctx, id)
}

func (e *Exhibitor) Create(ctx context.Context, in model.Exhibitor) (model.Exhibitor, error) {
	return e.table.Create(ctx, Row(in))
}

func (e *Exhibitor) Update(ctx context.Context, id string, in model.Exhibitor) (model.Exhibitor, error) {
	return e.table.Update(ctx, id, Row(in))
}

func (e *Exhibitor) Delete(ctx context.Context, id string) error {
	return e.table.Delete(ctx, id)
}

// Row converts the form into column values.
func Row(ex model.Exhibitor) store.Row {
	return store.Row{
		"event_id":          ex.EventID,
		"company_name":      ex.CompanyName,
		"company_profile":   ex.CompanyProfile,
		"contact_person":    ex.ContactPerson,
		"email":             ex.Email,
		"phone":             ex.Phone,
		"alternate_contact": ex.AlternateContact,
		"alternate_phone":   ex.AlternatePhone,
		"category":          ex.Category,
		"sub_category":      ex.SubCategory,
		"address_line":      ex.AddressLine,
		"city":              ex.City,
		"state":             ex.State,
		"pincode":           ex.Pincode,
		"booth_preference":  ex.BoothPreference,
		"booth_size":        string(ex.BoothSize),
		"products":          nonNil(ex.Products),
		"services":          nonNil(ex.Services),
		"registration_fee":  ex.RegistrationFee,
		"payment_status":    string(ex.PaymentStatus),
		"social_links":      ex.SocialLinks,
		"status":            string(ex.Status),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
