package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        string    `json:"id"`
	AuthID    string    `json:"authId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	City      string    `json:"city"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Event struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	EventDate       string          `json:"eventDate"`
	EventTime       string          `json:"eventTime"`
	VenueID         string          `json:"venueId"`
	VenueName       string          `json:"venueName"`
	City            string          `json:"city"`
	MaxCapacity     int64           `json:"maxCapacity"`
	AttendeeCount   int64           `json:"attendeeCount"`
	PlanType        PlanType        `json:"planType"`
	Status          EventStatus     `json:"status"`
	Revenue         decimal.Decimal `json:"revenue"`
	ImageURL        string          `json:"imageUrl"`
	AreaSqFt        float64         `json:"areaSqFt"`
	SpaceType       SpaceType       `json:"spaceType"`
	StallCount      int64           `json:"stallCount"`
	ParkingCapacity int64           `json:"parkingCapacity"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Venue struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Location          string          `json:"location"`
	City              string          `json:"city"`
	ContactPerson     string          `json:"contactPerson"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Capacity          int64           `json:"capacity"`
	Facilities        []string        `json:"facilities"`
	Amenities         []string        `json:"amenities"`
	ActiveEventsCount int64           `json:"activeEventsCount"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	Status            Status          `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type Vendor struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      VendorCategory `json:"category"`
	CategoryLabel string         `json:"categoryLabel"`
	City          string         `json:"city"`
	ContactPerson string         `json:"contactPerson"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Rating        float64        `json:"rating"`
	CompletedJobs int64          `json:"completedJobs"`
	Status        Status         `json:"status"`
	PriceRange    string         `json:"priceRange"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type SocialLinks struct {
	Website   string `json:"website"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
}

type Exhibitor struct {
	ID               string          `json:"id"`
	EventID          string          `json:"eventId"`
	CompanyName      string          `json:"companyName"`
	CompanyProfile   string          `json:"companyProfile"`
	ContactPerson    string          `json:"contactPerson"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	AlternateContact string          `json:"alternateContact"`
	AlternatePhone   string          `json:"alternatePhone"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"subCategory"`
	AddressLine      string          `json:"addressLine"`
	City             string          `json:"city"`
	State            string          `json:"state"`
	Pincode          string          `json:"pincode"`
	BoothPreference  string          `json:"boothPreference"`
	BoothSize        BoothSize       `json:"boothSize"`
	Products         []string        `json:"products"`
	Services         []string        `json:"services"`
	RegistrationFee  decimal.Decimal `json:"registrationFee"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	SocialLinks      SocialLinks     `json:"socialLinks"`
	Status           Status          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type Society struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Location          string          `json:"location"`
	City              string          `json:"city"`
	ContactPerson     string          `json:"contactPerson"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	MemberCount       int64           `json:"memberCount"`
	Facilities        []string        `json:"facilities"`
	ActiveEventsCount int64           `json:"activeEventsCount"`
	Revenue           decimal.Decimal `json:"revenue"`
	Status            Status          `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
