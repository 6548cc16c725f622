package domain

import "testing"

func TestRoleAtLeast(t *testing.T) {
	testCases := []struct {
		role     string
		required string
		want     bool
	}{
		{RoleTeller, RoleTeller, true},
		{RoleManager, RoleTeller, true},
		{RoleAdmin, RoleTeller, true},
		{RoleManager, RoleManager, true},
		{RoleAdmin, RoleManager, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleTeller, RoleManager, false},
		{RoleTeller, RoleAdmin, false},
		{RoleManager, RoleAdmin, false},
		{"janitor", RoleTeller, false},
		{RoleAdmin, "janitor", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		if got := RoleAtLeast(tc.role, tc.required); got != tc.want {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tc.role, tc.required, got)
		}
	}
}
