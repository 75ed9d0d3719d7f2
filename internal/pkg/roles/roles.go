package roles

import "strings"

// Role is the closed actor-role enum. Anything unrecognized parses to
// RoleUser so a corrupt row can never grant admin rights.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Capability names a guarded action. Authorization questions go through
// Can instead of comparing role strings at call sites.
type Capability string

const (
	ViewAdminPanel      Capability = "view_admin_panel"
	ManageCatalog       Capability = "manage_catalog"
	ManageUsers         Capability = "manage_users"
	ManageSubscriptions Capability = "manage_subscriptions"
	ManageContactInfo   Capability = "manage_contact_info"
)

// Parse normalizes a stored role string into the enum.
func Parse(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin is a convenience shorthand for the admin-panel gate.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
