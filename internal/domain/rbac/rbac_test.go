package rbac

import (
	"errors"
	"testing"
)

func TestHasPermissionMatrix(t *testing.T) {
	if HasPermission(RoleViewer, PermEditAIA) {
		t.Fatalf("viewer must not hold edit_aia")
	}
	if !HasPermission(RoleViewer, PermViewRegister) {
		t.Fatalf("viewer must hold view_register")
	}
	for _, perm := range AllPermissions {
		if !HasPermission(RoleAdmin, perm) {
			t.Fatalf("admin missing %q", perm)
		}
	}
	for _, perm := range AllPermissions {
		if HasPermission("superuser", perm) {
			t.Fatalf("unknown role granted %q", perm)
		}
	}
}

func TestRoleSets(t *testing.T) {
	cases := []struct {
		role    string
		granted []string
		denied  []string
	}{
		{RoleReviewer, []string{PermApproveAIA, PermChangeStatus, PermEditAIA}, []string{PermAddSystem, PermDeleteSystem, PermManageUsers}},
		{RoleAssessor, []string{PermAddSystem, PermEditAIA}, []string{PermApproveAIA, PermChangeStatus, PermDeleteSystem, PermManageUsers}},
		{RoleViewer, []string{PermExportAIA}, []string{PermEditAIA, PermAddSystem}},
	}
	for _, tc := range cases {
		for _, perm := range tc.granted {
			if !HasPermission(tc.role, perm) {
				t.Fatalf("%s missing %q", tc.role, perm)
			}
		}
		for _, perm := range tc.denied {
			if HasPermission(tc.role, perm) {
				t.Fatalf("%s must not hold %q", tc.role, perm)
			}
		}
	}
}

func TestPermissionsOrder(t *testing.T) {
	perms := Permissions(RoleViewer)
	want := []string{PermViewDashboard, PermViewRegister, PermViewAIA, PermExportAIA}
	if len(perms) != len(want) {
		t.Fatalf("Permissions(viewer) = %v", perms)
	}
	for i := range want {
		if perms[i] != want[i] {
			t.Fatalf("Permissions(viewer)[%d] = %q, want %q", i, perms[i], want[i])
		}
	}
	if got := Permissions("nobody"); len(got) != 0 {
		t.Fatalf("Permissions(unknown) = %v", got)
	}
}

func TestNormalizeRole(t *testing.T) {
	role, err := NormalizeRole("  Admin ")
	if err != nil {
		t.Fatalf("NormalizeRole() error = %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("NormalizeRole() = %q", role)
	}

	if _, err := NormalizeRole("root"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("NormalizeRole() error = %v, want ErrUnknownRole", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(RoleAdmin); got != "Administrator" {
		t.Fatalf("DisplayName(admin) = %q", got)
	}
	if got := DisplayName("mystery"); got != "mystery" {
		t.Fatalf("DisplayName(unknown) = %q", got)
	}
}
