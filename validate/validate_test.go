package validate

import (
	"errors"
	"testing"
	"time"

	"boothbuzz-admin/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

func fields(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var errs Errors
	require.True(t, errors.As(err, &errs))
	return errs
}

func acmeLights() model.Vendor {
	return model.Vendor{
		Name:          "Acme Lights",
		Category:      model.VendorSoundLights,
		City:          "Pune",
		ContactPerson: "R. Rao",
		Email:         "r@acme.io",
		Phone:         "+919876543210",
		Rating:        4.5,
		CompletedJobs: 12,
		Status:        model.StatusActive,
		PriceRange:    "₹10,000-₹30,000",
	}
}

func TestVendorAcceptsValidForm(t *testing.T) {
	assert.NoError(t, Vendor(acmeLights()))
}

func TestVendorRejectsInvalidFields(t *testing.T) {
	v := acmeLights()
	v.Name = ""
	v.Email = "r@"
	v.Rating = 5.1
	v.Category = "fireworks"

	errs := fields(t, Vendor(v))
	assert.Equal(t, "Vendor name is required", errs["name"])
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Equal(t, "Rating must be between 0 and 5", errs["rating"])
	assert.Contains(t, errs["category"], "sound_lights")
	assert.NotContains(t, errs, Submit)
}

func TestEmailAndPhoneShapes(t *testing.T) {
	for _, tc := range []struct {
		email string
		ok    bool
	}{
		{"r@acme.io", true},
		{"first.last+tag@mail.example.co.in", true},
		{"no-at-sign.com", false},
		{"two@@acme.io", false},
		{"space in@acme.io", false},
	} {
		err := New().Email("email", tc.email).Err()
		assert.Equalf(t, tc.ok, err == nil, "email %q", tc.email)
	}

	for _, tc := range []struct {
		phone string
		ok    bool
	}{
		{"+919876543210", true},
		{"020 2612 3456", true},
		{"(020) 2612-3456", true},
		{"12345", false},
		{"phone", false},
		{"+91 98765 43210 ext", false},
	} {
		err := New().Phone("phone", tc.phone).Err()
		assert.Equalf(t, tc.ok, err == nil, "phone %q", tc.phone)
	}
}

func TestFirstFailurePerFieldWins(t *testing.T) {
	errs := New().Required("name", " ", "Name").MinLength("name", " ", 2, "Name").Errors()
	assert.Equal(t, "Name is required", errs["name"])
}

func TestCityRequiredUnlessGlobalRole(t *testing.T) {
	u := model.User{Name: "Asha", Email: "asha@boothbuzz.in", Role: model.RoleSuperAdmin, Status: model.StatusActive}
	assert.NoError(t, User(u, "secret1", true))

	u.Role = model.RoleCityManager
	errs := fields(t, User(u, "secret1", true))
	assert.Equal(t, "City is required for this role", errs["city"])

	u.City = "Pune"
	assert.NoError(t, User(u, "secret1", true))
}

func TestUserPasswordOnlyOnCreate(t *testing.T) {
	u := model.User{Name: "Asha", Email: "asha@boothbuzz.in", Role: model.RoleAdmin, City: "Pune", Status: model.StatusActive}
	errs := fields(t, User(u, "123", true))
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])

	assert.NoError(t, User(u, "", false))
}

func validEvent() model.Event {
	return model.Event{
		Title:       "Diwali Mela",
		EventDate:   "2026-11-08",
		EventTime:   "18:30",
		VenueID:     "ven-1",
		MaxCapacity: 500,
		PlanType:    model.PlanPremium,
		Status:      model.EventDraft,
		SpaceType:   model.SpaceOpen,
		Revenue:     decimal.RequireFromString("125000.50"),
	}
}

func TestEventDateCannotBeInThePast(t *testing.T) {
	e := validEvent()
	e.EventDate = "2026-10-17"
	errs := fields(t, Event(e, today, true))
	assert.Equal(t, "Event date cannot be in the past", errs["eventDate"])

	e.EventDate = "2026-10-18"
	assert.NoError(t, Event(e, today, true))

	e.EventDate = "2025-01-01"
	assert.NoError(t, Event(e, today, false), "existing events keep their historical dates")

	e.EventDate = "18/10/2026"
	errs = fields(t, Event(e, today, true))
	assert.Equal(t, "Date must be in YYYY-MM-DD format", errs["eventDate"])
}

func TestEventCityComesFromVenue(t *testing.T) {
	e := validEvent()
	assert.NoError(t, Event(e, today, true))

	e.VenueID = ""
	errs := fields(t, Event(e, today, true))
	assert.Equal(t, "Venue is required", errs["venueId"])
	assert.Equal(t, "City is required", errs["city"])
}

func TestEventBounds(t *testing.T) {
	e := validEvent()
	e.MaxCapacity = 0
	e.StallCount = -1
	e.Revenue = decimal.NewFromInt(-5)
	e.EventTime = "25:00"

	errs := fields(t, Event(e, today, true))
	assert.Equal(t, "Max capacity must be greater than 0", errs["maxCapacity"])
	assert.Equal(t, "Stall count cannot be negative", errs["stallCount"])
	assert.Equal(t, "Revenue cannot be negative", errs["revenue"])
	assert.Equal(t, "Time must be in HH:MM format", errs["eventTime"])

	e = validEvent()
	e.AttendeeCount = 501
	errs = fields(t, Event(e, today, true))
	assert.Equal(t, "Attendee count cannot exceed max capacity", errs["attendeeCount"])
}

func TestExhibitorSubCategoryMustMatchCategory(t *testing.T) {
	ex := model.Exhibitor{
		EventID:       "event-1",
		CompanyName:   "Chai Point",
		ContactPerson: "Meera",
		Email:         "meera@chai.in",
		Phone:         "+919812345678",
		Category:      "food_beverage",
		SubCategory:   "beverages",
		City:          "Pune",
		Pincode:       "411001",
		BoothSize:     model.BoothMedium,
		PaymentStatus: model.PaymentPending,
		Status:        model.StatusActive,
	}
	assert.NoError(t, Exhibitor(ex))

	ex.SubCategory = "apparel"
	ex.Pincode = "0110"
	errs := fields(t, Exhibitor(ex))
	assert.Equal(t, "Sub-category does not belong to the selected category", errs["subCategory"])
	assert.Equal(t, "Pincode must be 6 digits", errs["pincode"])
}

func TestVenueAndSocietyCapacity(t *testing.T) {
	ven := model.Venue{
		Name:  "Hall A", Location: "FC Road", City: "Pune", ContactPerson: "Vikram",
		Email: "hall@venues.in", Phone: "+919800000001", Status: model.StatusActive,
	}
	errs := fields(t, Venue(ven))
	assert.Equal(t, "Capacity must be greater than 0", errs["capacity"])

	ven.Capacity = 800
	assert.NoError(t, Venue(ven))

	s := model.Society{
		Name:  "Green Acres", Location: "Baner", City: "Pune", ContactPerson: "Nisha",
		Email: "office@greenacres.in", Phone: "+919800000002", MemberCount: -1, Status: model.StatusActive,
	}
	errs = fields(t, Society(s))
	assert.Equal(t, "Member count cannot be negative", errs["memberCount"])
}

func TestErrorsStringIsSorted(t *testing.T) {
	errs := Errors{"phone": "bad phone", "email": "bad email"}
	assert.Equal(t, "email: bad email; phone: bad phone", errs.Error())
}
