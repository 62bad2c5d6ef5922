package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/auth"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionHandler(t *testing.T) http.Handler {
	t.Helper()

	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	return SessionMiddleware(authService, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)
}

func TestSessionMiddleware_AcceptsValidToken(t *testing.T) {
	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	token, user, err := authService.Login("demo@nuvera.com", "demo123456")
	require.NoError(t, err)

	var seen domain.User
	handler := SessionMiddleware(authService, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = GetUser(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user, seen)
}

func TestSessionMiddleware_RejectsMissingAndMalformedHeaders(t *testing.T) {
	handler := newSessionHandler(t)

	req := httptest.NewRequest("GET", "/api/orders", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_BlocksNonAdmins(t *testing.T) {
	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	handler := SessionMiddleware(authService, zap.NewNop())(
		RequireAdmin(zap.NewNop())(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}),
		),
	)

	userToken, _, err := authService.Login("demo@nuvera.com", "demo123456")
	require.NoError(t, err)
	adminToken, _, err := authService.Login("admin@nuvera.com", "admin123456")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/admin/stock", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("GET", "/api/admin/stock", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
