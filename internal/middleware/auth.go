package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/auth"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"

	"go.uber.org/zap"
)

type contextKey string

const userKey contextKey = "user"

// SessionMiddleware validates bearer session tokens and puts the resolved
// user identity on the request context
func SessionMiddleware(authService auth.Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Session token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			user := domain.User{
				Email: claims.Email,
				Role:  claims.Role,
				Name:  claims.Name,
			}

			logger.Debug("User authenticated",
				zap.String("email", user.Email),
				zap.String("role", user.Role),
			)

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from the request context
func GetUser(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}
