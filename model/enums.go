package model

import "strings"

type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleAdmin         Role = "admin"
	RoleCityManager   Role = "city_manager"
	RoleEventManager  Role = "event_manager"
	RoleVendorManager Role = "vendor_manager"
)

var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleCityManager, RoleEventManager, RoleVendorManager}

// IsGlobal reports whether the role sees data across every city.
func (r Role) IsGlobal() bool {
	return r == RoleSuperAdmin
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var Statuses = []Status{StatusActive, StatusInactive}

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

var EventStatuses = []EventStatus{EventDraft, EventPublished, EventOngoing, EventCompleted, EventCancelled}

var eventTransitions = map[EventStatus][]EventStatus{
	EventDraft:     {EventPublished, EventCancelled},
	EventPublished: {EventOngoing, EventCancelled},
	EventOngoing:   {EventCompleted, EventCancelled},
}

// CanTransition reports whether an event may move from s to next.
// Keeping the same status is always allowed.
func (s EventStatus) CanTransition(next EventStatus) bool {
	if s == next {
		return true
	}
	for _, n := range eventTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

type PlanType string

const (
	PlanBasic      PlanType = "basic"
	PlanStandard   PlanType = "standard"
	PlanPremium    PlanType = "premium"
	PlanEnterprise PlanType = "enterprise"
)

var PlanTypes = []PlanType{PlanBasic, PlanStandard, PlanPremium, PlanEnterprise}

type SpaceType string

const (
	SpaceCovered SpaceType = "covered"
	SpaceOpen    SpaceType = "open"
)

var SpaceTypes = []SpaceType{SpaceCovered, SpaceOpen}

type VendorCategory string

const (
	VendorCatering    VendorCategory = "catering"
	VendorDecoration  VendorCategory = "decoration"
	VendorSoundLights VendorCategory = "sound_lights"
	VendorPhotography VendorCategory = "photography"
	VendorSecurity    VendorCategory = "security"
	VendorLogistics   VendorCategory = "logistics"
)

var VendorCategories = []VendorCategory{VendorCatering, VendorDecoration, VendorSoundLights, VendorPhotography, VendorSecurity, VendorLogistics}

// Label is the badge text shown for the category.
func (c VendorCategory) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

type BoothSize string

const (
	BoothSmall  BoothSize = "small"
	BoothMedium BoothSize = "medium"
	BoothLarge  BoothSize = "large"
)

var BoothSizes = []BoothSize{BoothSmall, BoothMedium, BoothLarge}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentRefunded}

// ExhibitorSubCategories lists the sub-categories allowed for each exhibitor category.
var ExhibitorSubCategories = map[string][]string{
	"food_beverage":   {"packaged_food", "beverages", "bakery", "street_food"},
	"fashion":         {"apparel", "jewellery", "footwear", "accessories"},
	"home_decor":      {"furniture", "furnishings", "handicrafts", "lighting"},
	"technology":      {"consumer_electronics", "software", "gadgets"},
	"health_wellness": {"fitness", "ayurveda", "personal_care"},
	"education":       {"coaching", "edtech", "books"},
}

// ValidSubCategory reports whether sub belongs to category.
func ValidSubCategory(category, sub string) bool {
	for _, s := range ExhibitorSubCategories[category] {
		if s == sub {
			return true
		}
	}
	return false
}
