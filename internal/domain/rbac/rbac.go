// Package rbac holds the static role to permission-set table. The
// table is configuration: it never changes at runtime, and an unknown
// role resolves to no permissions at all.
package rbac

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
	RoleAssessor = "assessor"
	RoleViewer   = "viewer"
)

const (
	PermViewDashboard = "view_dashboard"
	PermViewRegister  = "view_register"
	PermAddSystem     = "add_system"
	PermDeleteSystem  = "delete_system"
	PermViewAIA       = "view_aia"
	PermEditAIA       = "edit_aia"
	PermChangeStatus  = "change_status"
	PermApproveAIA    = "approve_aia"
	PermExportAIA     = "export_aia"
	PermManageUsers   = "manage_users"
)

var ErrUnknownRole = errors.New("unknown role")

var Roles = []string{RoleAdmin, RoleReviewer, RoleAssessor, RoleViewer}

var AllPermissions = []string{
	PermViewDashboard,
	PermViewRegister,
	PermAddSystem,
	PermDeleteSystem,
	PermViewAIA,
	PermEditAIA,
	PermChangeStatus,
	PermApproveAIA,
	PermExportAIA,
	PermManageUsers,
}

var rolePermissions = map[string]map[string]struct{}{
	RoleAdmin: permissionSet(
		PermViewDashboard, PermViewRegister, PermAddSystem, PermDeleteSystem,
		PermViewAIA, PermEditAIA, PermChangeStatus, PermApproveAIA,
		PermExportAIA, PermManageUsers,
	),
	RoleReviewer: permissionSet(
		PermViewDashboard, PermViewRegister, PermViewAIA, PermEditAIA,
		PermChangeStatus, PermApproveAIA, PermExportAIA,
	),
	RoleAssessor: permissionSet(
		PermViewDashboard, PermViewRegister, PermAddSystem, PermViewAIA,
		PermEditAIA, PermExportAIA,
	),
	RoleViewer: permissionSet(
		PermViewDashboard, PermViewRegister, PermViewAIA, PermExportAIA,
	),
}

var displayNames = map[string]string{
	RoleAdmin:    "Administrator",
	RoleReviewer: "Reviewer",
	RoleAssessor: "Assessor",
	RoleViewer:   "Viewer",
}

func permissionSet(perms ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(perms))
	for _, perm := range perms {
		set[perm] = struct{}{}
	}
	return set
}

func HasPermission(role, permission string) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[permission]
	return ok
}

// Permissions returns the role's tokens in canonical order; unknown
// roles get an empty slice.
func Permissions(role string) []string {
	set, ok := rolePermissions[role]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(set))
	for _, perm := range AllPermissions {
		if _, granted := set[perm]; granted {
			out = append(out, perm)
		}
	}
	return out
}

func ValidateRole(role string) error {
	if _, ok := rolePermissions[role]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return nil
}

func NormalizeRole(role string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if err := ValidateRole(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func DisplayName(role string) string {
	if name, ok := displayNames[role]; ok {
		return name
	}
	return role
}
