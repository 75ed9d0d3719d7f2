package roles

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{in: "user", want: RoleUser},
		{in: "admin", want: RoleAdmin},
		{in: "ADMIN", want: RoleAdmin},
		{in: " admin ", want: RoleAdmin},
		{in: "superuser", want: RoleUser},
		{in: "", want: RoleUser},
	}

	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCan(t *testing.T) {
	caps := []Capability{ViewAdminPanel, ManageCatalog, ManageUsers, ManageSubscriptions, ManageContactInfo}

	for _, c := range caps {
		if !RoleAdmin.Can(c) {
			t.Fatalf("expected admin to hold %q", c)
		}
		if RoleUser.Can(c) {
			t.Fatalf("expected user to lack %q", c)
		}
	}
}
