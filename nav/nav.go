// Package nav decides which sections a role may see.
package nav

import "boothbuzz-admin/model"

type Entry struct {
	Label        string       `json:"label"`
	Route        string       `json:"route"`
	Icon         string       `json:"icon"`
	AllowedRoles []model.Role `json:"-"`
}

var everyone = model.Roles

// Entries is the sidebar in display order.
var Entries = []Entry{
	{Label: "Dashboard", Route: "/dashboard", Icon: "layout-dashboard", AllowedRoles: everyone},
	{Label: "Users", Route: "/users", Icon: "users", AllowedRoles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin}},
	{Label: "Events", Route: "/events", Icon: "calendar", AllowedRoles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCityManager, model.RoleEventManager}},
	{Label: "Venues", Route: "/venues", Icon: "map-pin", AllowedRoles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCityManager, model.RoleEventManager}},
	{Label: "Vendors", Route: "/vendors", Icon: "store", AllowedRoles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCityManager, model.RoleVendorManager}},
	{Label: "Exhibitors", Route: "/exhibitors", Icon: "briefcase", AllowedRoles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCityManager, model.RoleEventManager}},
	{Label: "Societies", Route: "/societies", Icon: "building", AllowedRoles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCityManager}},
}

// HasRole is plain membership of current in candidates.
func HasRole(current model.Role, candidates ...model.Role) bool {
	for _, c := range candidates {
		if c == current {
			return true
		}
	}
	return false
}

// Menu returns the entries visible to role, keeping their order.
func Menu(role model.Role) []Entry {
	out := []Entry{}
	for _, e := range Entries {
		if HasRole(role, e.AllowedRoles...) {
			out = append(out, e)
		}
	}
	return out
}

// Allowed returns the roles that may open route, or nil when route is not in
// the sidebar.
func Allowed(route string) []model.Role {
	for _, e := range Entries {
		if e.Route == route {
			return e.AllowedRoles
		}
	}
	return nil
}
