package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireAdmin ensures the authenticated user has the admin role
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				logger.Warn("User not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if user.Role != "admin" {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("email", user.Email),
					zap.String("role", user.Role),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
