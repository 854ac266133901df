// Package validate holds the form rules applied before any store call.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"boothbuzz-admin/model"

	"github.com/shopspring/decimal"
)

// Submit is the pseudo-field carrying form-level failures such as a store
// rejection. It never holds a per-field validation message.
const Submit = "submit"

const dateLayout = "2006-01-02"

var (
	rxEmail   = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	rxPhone   = regexp.MustCompile(`^\+?[0-9(][0-9 ()-]{6,18}[0-9]$`)
	rxPincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	rxTime    = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Errors maps a camelCase form field to its message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Validator collects the first failure per field.
type Validator struct {
	errs Errors
}

func New() *Validator {
	return &Validator{errs: Errors{}}
}

func (v *Validator) fail(field, format string, args ...interface{}) {
	if _, ok := v.errs[field]; ok {
		return
	}
	v.errs[field] = fmt.Sprintf(format, args...)
}

func (v *Validator) failed(field string) bool {
	_, ok := v.errs[field]
	return ok
}

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

func (v *Validator) Errors() Errors {
	return v.errs
}

func (v *Validator) Required(field, value, label string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.fail(field, "%s is required", label)
	}
	return v
}

func (v *Validator) MinLength(field, value string, n int, label string) *Validator {
	if v.failed(field) || value == "" {
		return v
	}
	if len([]rune(strings.TrimSpace(value))) < n {
		v.fail(field, "%s must be at least %d characters", label, n)
	}
	return v
}

// Email checks shape only when a value is present; pair it with Required.
func (v *Validator) Email(field, value string) *Validator {
	if v.failed(field) || value == "" {
		return v
	}
	if len(value) > 254 || !rxEmail.MatchString(value) {
		v.fail(field, "Please enter a valid email address")
	}
	return v
}

func (v *Validator) Phone(field, value string) *Validator {
	if v.failed(field) || value == "" {
		return v
	}
	if !rxPhone.MatchString(value) {
		v.fail(field, "Please enter a valid phone number")
	}
	return v
}

func (v *Validator) Pincode(field, value string) *Validator {
	if v.failed(field) || value == "" {
		return v
	}
	if !rxPincode.MatchString(value) {
		v.fail(field, "Pincode must be 6 digits")
	}
	return v
}

func (v *Validator) Time(field, value string) *Validator {
	if v.failed(field) || value == "" {
		return v
	}
	if !rxTime.MatchString(value) {
		v.fail(field, "Time must be in HH:MM format")
	}
	return v
}

func (v *Validator) Between(field string, value, min, max float64, label string) *Validator {
	if value < min || value > max {
		v.fail(field, "%s must be between %g and %g", label, min, max)
	}
	return v
}

func (v *Validator) Positive(field string, value int64, label string) *Validator {
	if value <= 0 {
		v.fail(field, "%s must be greater than 0", label)
	}
	return v
}

func (v *Validator) NonNegative(field string, value float64, label string) *Validator {
	if value < 0 {
		v.fail(field, "%s cannot be negative", label)
	}
	return v
}

func (v *Validator) NonNegativeAmount(field string, value decimal.Decimal, label string) *Validator {
	if value.IsNegative() {
		v.fail(field, "%s cannot be negative", label)
	}
	return v
}

// OneOf checks membership in a closed enum. An empty value fails too.
func (v *Validator) OneOf(field, value string, allowed []string, label string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.fail(field, "%s must be one of %s", label, strings.Join(allowed, ", "))
	return v
}

// City requires a city unless the role has global scope.
func (v *Validator) City(field, city string, role model.Role) *Validator {
	if role.IsGlobal() {
		return v
	}
	if strings.TrimSpace(city) == "" {
		v.fail(field, "City is required for this role")
	}
	return v
}

// NotPast requires a YYYY-MM-DD date that is today or later. today is the
// caller's calendar day; only its date part is used.
func (v *Validator) NotPast(field, value string, today time.Time) *Validator {
	if v.failed(field) || value == "" {
		return v
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		v.fail(field, "Date must be in YYYY-MM-DD format")
		return v
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(day) {
		v.fail(field, "Event date cannot be in the past")
	}
	return v
}

func (v *Validator) SubCategory(field, category, sub string) *Validator {
	if v.failed(field) || sub == "" {
		return v
	}
	if !model.ValidSubCategory(category, sub) {
		v.fail(field, "Sub-category does not belong to the selected category")
	}
	return v
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, s := range values {
		out[i] = string(s)
	}
	return out
}
