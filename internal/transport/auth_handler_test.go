package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/auth"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthRouter(t *testing.T) *chi.Mux {
	t.Helper()

	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	router := chi.NewRouter()
	sessionMiddleware := middleware.SessionMiddleware(authService, zap.NewNop())
	NewAuthHandler(authService, zap.NewNop()).RegisterRoutes(router, sessionMiddleware)
	return router
}

func TestAuthHandler_LoginRoundTrip(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, "POST", "/api/auth/login", `{"email":"demo@nuvera.com","password":"demo123456"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "user", resp.User.Role)

	// The issued token opens the session endpoint
	req := httptest.NewRequest("GET", "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	sw := httptest.NewRecorder()
	router.ServeHTTP(sw, req)
	require.Equal(t, http.StatusOK, sw.Code)
	assert.Contains(t, sw.Body.String(), "demo@nuvera.com")
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, "POST", "/api/auth/login", `{"email":"demo@nuvera.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/api/auth/login", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_SessionRequiresToken(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, "GET", "/api/auth/session", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
