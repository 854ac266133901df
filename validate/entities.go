package validate

import (
	"sort"
	"time"

	"boothbuzz-admin/model"
)

// User validates the user form. password is checked only when creating.
func User(u model.User, password string, creating bool) error {
	v := New()
	v.Required("name", u.Name, "Name").MinLength("name", u.Name, 2, "Name")
	v.Required("email", u.Email, "Email").Email("email", u.Email)
	v.Phone("phone", u.Phone)
	v.OneOf("role", string(u.Role), names(model.Roles), "Role")
	v.City("city", u.City, u.Role)
	v.OneOf("status", string(u.Status), names(model.Statuses), "Status")
	if creating {
		v.Required("password", password, "Password").MinLength("password", password, 6, "Password")
	}
	return v.Err()
}

// Event validates the event form. The city may be left blank when a venue is
// selected, since the venue supplies it.
func Event(e model.Event, today time.Time, creating bool) error {
	v := New()
	v.Required("title", e.Title, "Title").MinLength("title", e.Title, 3, "Title")
	v.Required("eventDate", e.EventDate, "Event date")
	if creating {
		v.NotPast("eventDate", e.EventDate, today)
	}
	v.Time("eventTime", e.EventTime)
	v.Required("venueId", e.VenueID, "Venue")
	if e.VenueID == "" {
		v.Required("city", e.City, "City")
	}
	v.Positive("maxCapacity", e.MaxCapacity, "Max capacity")
	v.NonNegative("attendeeCount", float64(e.AttendeeCount), "Attendee count")
	if e.MaxCapacity > 0 && e.AttendeeCount > e.MaxCapacity {
		v.fail("attendeeCount", "Attendee count cannot exceed max capacity")
	}
	v.OneOf("planType", string(e.PlanType), names(model.PlanTypes), "Plan type")
	v.OneOf("status", string(e.Status), names(model.EventStatuses), "Status")
	v.NonNegativeAmount("revenue", e.Revenue, "Revenue")
	v.NonNegative("areaSqFt", e.AreaSqFt, "Area")
	v.OneOf("spaceType", string(e.SpaceType), names(model.SpaceTypes), "Space type")
	v.NonNegative("stallCount", float64(e.StallCount), "Stall count")
	v.NonNegative("parkingCapacity", float64(e.ParkingCapacity), "Parking capacity")
	return v.Err()
}

func Venue(ven model.Venue) error {
	v := New()
	v.Required("name", ven.Name, "Venue name").MinLength("name", ven.Name, 2, "Venue name")
	v.Required("location", ven.Location, "Location")
	v.Required("city", ven.City, "City")
	v.Required("contactPerson", ven.ContactPerson, "Contact person")
	v.Required("email", ven.Email, "Email").Email("email", ven.Email)
	v.Required("phone", ven.Phone, "Phone").Phone("phone", ven.Phone)
	v.Positive("capacity", ven.Capacity, "Capacity")
	v.NonNegative("activeEventsCount", float64(ven.ActiveEventsCount), "Active events")
	v.NonNegativeAmount("totalRevenue", ven.TotalRevenue, "Total revenue")
	v.OneOf("status", string(ven.Status), names(model.Statuses), "Status")
	return v.Err()
}

func Vendor(ven model.Vendor) error {
	v := New()
	v.Required("name", ven.Name, "Vendor name").MinLength("name", ven.Name, 2, "Vendor name")
	v.OneOf("category", string(ven.Category), names(model.VendorCategories), "Category")
	v.Required("city", ven.City, "City")
	v.Required("contactPerson", ven.ContactPerson, "Contact person")
	v.Required("email", ven.Email, "Email").Email("email", ven.Email)
	v.Required("phone", ven.Phone, "Phone").Phone("phone", ven.Phone)
	v.Between("rating", ven.Rating, 0, 5, "Rating")
	v.NonNegative("completedJobs", float64(ven.CompletedJobs), "Completed jobs")
	v.OneOf("status", string(ven.Status), names(model.Statuses), "Status")
	return v.Err()
}

func Exhibitor(ex model.Exhibitor) error {
	v := New()
	v.Required("eventId", ex.EventID, "Event")
	v.Required("companyName", ex.CompanyName, "Company name").MinLength("companyName", ex.CompanyName, 2, "Company name")
	v.Required("contactPerson", ex.ContactPerson, "Contact person")
	v.Required("email", ex.Email, "Email").Email("email", ex.Email)
	v.Required("phone", ex.Phone, "Phone").Phone("phone", ex.Phone)
	v.Phone("alternatePhone", ex.AlternatePhone)
	v.OneOf("category", ex.Category, categories(), "Category")
	v.SubCategory("subCategory", ex.Category, ex.SubCategory)
	v.Required("city", ex.City, "City")
	v.Pincode("pincode", ex.Pincode)
	v.OneOf("boothSize", string(ex.BoothSize), names(model.BoothSizes), "Booth size")
	v.NonNegativeAmount("registrationFee", ex.RegistrationFee, "Registration fee")
	v.OneOf("paymentStatus", string(ex.PaymentStatus), names(model.PaymentStatuses), "Payment status")
	v.OneOf("status", string(ex.Status), names(model.Statuses), "Status")
	return v.Err()
}

func Society(s model.Society) error {
	v := New()
	v.Required("name", s.Name, "Society name").MinLength("name", s.Name, 2, "Society name")
	v.Required("location", s.Location, "Location")
	v.Required("city", s.City, "City")
	v.Required("contactPerson", s.ContactPerson, "Contact person")
	v.Required("email", s.Email, "Email").Email("email", s.Email)
	v.Required("phone", s.Phone, "Phone").Phone("phone", s.Phone)
	v.NonNegative("memberCount", float64(s.MemberCount), "Member count")
	v.NonNegative("activeEventsCount", float64(s.ActiveEventsCount), "Active events")
	v.NonNegativeAmount("revenue", s.Revenue, "Revenue")
	v.OneOf("status", string(s.Status), names(model.Statuses), "Status")
	return v.Err()
}

func categories() []string {
	out := make([]string, 0, len(model.ExhibitorSubCategories))
	for c := range model.ExhibitorSubCategories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
