// Package mapper converts raw store rows into view models.
//
// Every mapper is total: a missing or NULL column becomes the field's
// documented default (0, "", empty list, zero decimal, fully-keyed empty
// object), and enum columns default to their initial state. UI code never has
// to tell a missing field apart from an empty one.
package mapper

import (
	"fmt"
	"time"

	"boothbuzz-admin/model"
	"boothbuzz-admin/store"

	"github.com/shopspring/decimal"
)

func User(r store.Row) model.User {
	return model.User{
		ID:        str(r, "id"),
		AuthID:    str(r, "auth_id"),
		Name:      str(r, "name"),
		Email:     str(r, "email"),
		Phone:     str(r, "phone"),
		Role:      model.Role(str(r, "role")),
		City:      str(r, "city"),
		Status:    status(r),
		CreatedAt: timestamp(r, "created_at"),
		UpdatedAt: timestamp(r, "updated_at"),
	}
}

// Event maps an event row. When the row embeds its venue, the embedded values
// fill a blank denormalized venue name or city.
func Event(r store.Row) model.Event {
	e := model.Event{
		ID:              str(r, "id"),
		Title:           str(r, "title"),
		Description:     str(r, "description"),
		EventDate:       str(r, "event_date"),
		EventTime:       str(r, "event_time"),
		VenueID:         str(r, "venue_id"),
		VenueName:       str(r, "venue_name"),
		City:            str(r, "city"),
		MaxCapacity:     integer(r, "max_capacity"),
		AttendeeCount:   integer(r, "attendee_count"),
		PlanType:        model.PlanType(strOr(r, "plan_type", string(model.PlanBasic))),
		Status:          model.EventStatus(strOr(r, "status", string(model.EventDraft))),
		Revenue:         amount(r, "revenue"),
		ImageURL:        str(r, "image_url"),
		AreaSqFt:        float(r, "area_sq_ft"),
		SpaceType:       model.SpaceType(strOr(r, "space_type", string(model.SpaceCovered))),
		StallCount:      integer(r, "stall_count"),
		ParkingCapacity: integer(r, "parking_capacity"),
		CreatedAt:       timestamp(r, "created_at"),
		UpdatedAt:       timestamp(r, "updated_at"),
	}
	if v, ok := r["venues"].(store.Row); ok {
		if e.VenueName == "" {
			e.VenueName = str(v, "name")
		}
		if e.City == "" {
			e.City = str(v, "city")
		}
	}
	return e
}

func Venue(r store.Row) model.Venue {
	return model.Venue{
		ID:                str(r, "id"),
		Name:              str(r, "name"),
		Location:          str(r, "location"),
		City:              str(r, "city"),
		ContactPerson:     str(r, "contact_person"),
		Email:             str(r, "email"),
		Phone:             str(r, "phone"),
		Capacity:          integer(r, "capacity"),
		Facilities:        list(r, "facilities"),
		Amenities:         list(r, "amenities"),
		ActiveEventsCount: integer(r, "active_events_count"),
		TotalRevenue:      amount(r, "total_revenue"),
		Status:            status(r),
		CreatedAt:         timestamp(r, "created_at"),
		UpdatedAt:         timestamp(r, "updated_at"),
	}
}

func Vendor(r store.Row) model.Vendor {
	category := model.VendorCategory(str(r, "category"))
	return model.Vendor{
		ID:            str(r, "id"),
		Name:          str(r, "name"),
		Category:      category,
		CategoryLabel: category.Label(),
		City:          str(r, "city"),
		ContactPerson: str(r, "contact_person"),
		Email:         str(r, "email"),
		Phone:         str(r, "phone"),
		Rating:        float(r, "rating"),
		CompletedJobs: integer(r, "completed_jobs"),
		Status:        status(r),
		PriceRange:    str(r, "price_range"),
		CreatedAt:     timestamp(r, "created_at"),
		UpdatedAt:     timestamp(r, "updated_at"),
	}
}

func Exhibitor(r store.Row) model.Exhibitor {
	return model.Exhibitor{
		ID:               str(r, "id"),
		EventID:          str(r, "event_id"),
		CompanyName:      str(r, "company_name"),
		CompanyProfile:   str(r, "company_profile"),
		ContactPerson:    str(r, "contact_person"),
		Email:            str(r, "email"),
		Phone:            str(r, "phone"),
		AlternateContact: str(r, "alternate_contact"),
		AlternatePhone:   str(r, "alternate_phone"),
		Category:         str(r, "category"),
		SubCategory:      str(r, "sub_category"),
		AddressLine:      str(r, "address_line"),
		City:             str(r, "city"),
		State:            str(r, "state"),
		Pincode:          str(r, "pincode"),
		BoothPreference:  str(r, "booth_preference"),
		BoothSize:        model.BoothSize(strOr(r, "booth_size", string(model.BoothSmall))),
		Products:         list(r, "products"),
		Services:         list(r, "services"),
		RegistrationFee:  amount(r, "registration_fee"),
		PaymentStatus:    model.PaymentStatus(strOr(r, "payment_status", string(model.PaymentPending))),
		SocialLinks:      socialLinks(r["social_links"]),
		Status:           status(r),
		CreatedAt:        timestamp(r, "created_at"),
		UpdatedAt:        timestamp(r, "updated_at"),
	}
}

func Society(r store.Row) model.Society {
	return model.Society{
		ID:                str(r, "id"),
		Name:              str(r, "name"),
		Location:          str(r, "location"),
		City:              str(r, "city"),
		ContactPerson:     str(r, "contact_person"),
		Email:             str(r, "email"),
		Phone:             str(r, "phone"),
		MemberCount:       integer(r, "member_count"),
		Facilities:        list(r, "facilities"),
		ActiveEventsCount: integer(r, "active_events_count"),
		Revenue:           amount(r, "revenue"),
		Status:            status(r),
		CreatedAt:         timestamp(r, "created_at"),
		UpdatedAt:         timestamp(r, "updated_at"),
	}
}

func str(r store.Row, key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func strOr(r store.Row, key, def string) string {
	if s := str(r, key); s != "" {
		return s
	}
	return def
}

func status(r store.Row) model.Status {
	return model.Status(strOr(r, "status", string(model.StatusActive)))
}

func integer(r store.Row, key string) int64 {
	v, err := store.Normalize(store.KindInt, r[key])
	if err != nil || v == nil {
		return 0
	}
	return v.(int64)
}

func float(r store.Row, key string) float64 {
	v, err := store.Normalize(store.KindFloat, r[key])
	if err != nil || v == nil {
		return 0
	}
	return v.(float64)
}

func amount(r store.Row, key string) decimal.Decimal {
	v, err := store.Normalize(store.KindDecimal, r[key])
	if err != nil || v == nil {
		return decimal.Zero
	}
	return v.(decimal.Decimal)
}

func timestamp(r store.Row, key string) time.Time {
	v, err := store.Normalize(store.KindTime, r[key])
	if err != nil || v == nil {
		return time.Time{}
	}
	return v.(time.Time)
}

func list(r store.Row, key string) []string {
	out := []string{}
	switch v := r[key].(type) {
	case []string:
		out = append(out, v...)
	case []interface{}:
		for _, item := range v {
			if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
	}
	return out
}

func socialLinks(v interface{}) model.SocialLinks {
	m, _ := v.(map[string]interface{})
	get := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	return model.SocialLinks{
		Website:   get("website"),
		Facebook:  get("facebook"),
		Instagram: get("instagram"),
		LinkedIn:  get("linkedin"),
		Twitter:   get("twitter"),
	}
}
