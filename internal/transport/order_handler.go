package transport

import (
	"errors"
	"net/http"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/middleware"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/orders"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for the order log
type OrderHandler struct {
	recorder *orders.Recorder
	logger   *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(recorder *orders.Recorder, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{recorder: recorder, logger: logger}
}

// RegisterRoutes registers the order routes behind authentication.
// Orders are not scoped per user; any authenticated identity sees the
// shared log.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
	})
}

// List returns every recorded order in insertion order
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.recorder.ListAll())
}

// GetByID returns a single order record
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.recorder.FindByID(id)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to look up order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to look up order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}
