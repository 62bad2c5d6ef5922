package transport

import (
	"errors"
	"net/http"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/auth"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest is the credential payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and the resolved identity
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	authService auth.Service
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/session", h.GetSession)
			r.Post("/logout", h.Logout)
		})
	})
}

// Login validates credentials and issues a session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// GetSession echoes the authenticated identity
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// Logout acknowledges a logout. Session tokens are stateless; the client
// discards the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("User logged out")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}
