package shared

import (
	"net/http"
	"strings"

	"idms/internal/domain/auth"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
)

// AllowEmployee reports whether the caller may act on employeeID's records.
// Callers whose only role is EMPLOYEE are limited to their own id; every
// other role was already cleared by the route policy.
func AllowEmployee(w http.ResponseWriter, r *http.Request, employeeID string) bool {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return false
	}
	if !auth.OnlyEmployee(user.Roles) {
		return true
	}
	if user.EmployeeID != "" && strings.EqualFold(user.EmployeeID, strings.TrimSpace(employeeID)) {
		return true
	}
	api.Fail(w, http.StatusForbidden, "forbidden", "employees may only access their own records", middleware.GetRequestID(r.Context()))
	return false
}
