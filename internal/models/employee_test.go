package models

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"Owner", RoleOwner},
		{"OWNER", RoleOwner},
		{"admin", RoleAdmin},
		{"Administrator", RoleAdmin},
		{"MANAGER", RoleManager},
		{" staff ", RoleStaff},
		{"employee", RoleStaff},
		{"", RoleStaff},
		{"superuser", RoleStaff},
	}
	for _, tc := range cases {
		if got := NormalizeRole(tc.in); got != tc.want {
			t.Fatalf("NormalizeRole(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, ok := range []string{"owner", "Admin", "MANAGER", "staff", "employee"} {
		if !ValidRole(ok) {
			t.Fatalf("ValidRole(%q) = false, want true", ok)
		}
	}
	for _, bad := range []string{"", "superuser", "root"} {
		if ValidRole(bad) {
			t.Fatalf("ValidRole(%q) = true, want false", bad)
		}
	}
}
