package middleware

import (
	"log/slog"
	"net/http"

	"idms/internal/transport/http/api"
)

type PolicyChecker interface {
	Allowed(roles []string, path, method string) (bool, error)
}

// Authorize checks the caller's roles against the policy for the request
// path and method.
func Authorize(policy PolicyChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			allowed, err := policy.Allowed(user.Roles, r.URL.Path, r.Method)
			if err != nil {
				slog.Error("policy check failed", "path", r.URL.Path, "err", err)
				api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", GetRequestID(r.Context()))
				return
			}
			if !allowed {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
