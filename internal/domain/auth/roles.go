package auth

import (
	"slices"
	"strings"
)

const (
	RoleAdmin       = "ADMIN"
	RoleStore       = "STORE"
	RoleFinance     = "FINANCE"
	RoleHR          = "HR"
	RoleDataManager = "DATAMANAGER"
	RoleEmployee    = "EMPLOYEE"
)

var Roles = []string{RoleAdmin, RoleStore, RoleFinance, RoleHR, RoleDataManager, RoleEmployee}

// NormalizeRoles upper-cases, strips a ROLE_ prefix and drops unknown or
// repeated roles.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.ToUpper(strings.TrimSpace(role))
		role = strings.TrimPrefix(role, "ROLE_")
		if slices.Contains(Roles, role) && !slices.Contains(out, role) {
			out = append(out, role)
		}
	}
	return out
}

func HasRole(roles []string, role string) bool {
	return slices.Contains(roles, role)
}

// OnlyEmployee reports whether the caller has no role beyond EMPLOYEE.
func OnlyEmployee(roles []string) bool {
	for _, role := range roles {
		if role != RoleEmployee {
			return false
		}
	}
	return len(roles) > 0
}
