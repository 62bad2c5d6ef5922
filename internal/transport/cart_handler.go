package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/cart"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest is the payload for adding a product to the cart.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest sets a line item's quantity. Zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CountResponse carries the total quantity across all line items
type CountResponse struct {
	Count int `json:"count"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	store  *cart.Store
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *cart.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{store: store, logger: logger}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.Clear)
		r.Get("/count", h.GetCount)
		r.Get("/events", h.StreamEvents)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{id}", h.UpdateQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

// GetCart returns the line items joined with products plus the cart total
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store.ItemsWithProducts())
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.store.AddItem(req.ProductID, req.Quantity); err != nil {
		h.respondCartError(w, err)
		return
	}

	h.logger.Info("Item added to cart",
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, h.store.ItemsWithProducts())
}

// UpdateQuantity sets a line item's quantity
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Update quantity decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.UpdateQuantity(itemID, req.Quantity); err != nil {
		h.respondCartError(w, err)
		return
	}

	h.logger.Info("Cart item quantity updated",
		zap.String("item_id", itemID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusOK, h.store.ItemsWithProducts())
}

// RemoveItem deletes a line item
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	if err := h.store.RemoveItem(itemID); err != nil {
		h.respondCartError(w, err)
		return
	}

	h.logger.Info("Cart item removed", zap.String("item_id", itemID))
	middleware.RespondWithJSON(w, http.StatusOK, h.store.ItemsWithProducts())
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()

	h.logger.Info("Cart cleared")
	middleware.RespondWithJSON(w, http.StatusOK, h.store.ItemsWithProducts())
}

// GetCount returns the sum of quantities across all line items
func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, CountResponse{Count: h.store.ItemCount()})
}

// StreamEvents pushes the line-item snapshot over SSE after every cart
// mutation, so UI surfaces re-render without polling
func (h *CartHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Buffered so a slow client never blocks a cart mutation; a snapshot
	// dropped here is superseded by the next one anyway
	updates := make(chan []domain.CartItem, 8)
	unsubscribe := h.store.Subscribe(func(items []domain.CartItem) {
		select {
		case updates <- items:
		default:
		}
	})
	defer unsubscribe()

	// Initial snapshot so the client renders immediately
	h.writeEvent(w, flusher, h.store.Items())

	for {
		select {
		case <-r.Context().Done():
			return
		case items := <-updates:
			h.writeEvent(w, flusher, items)
		}
	}
}

func (h *CartHandler) writeEvent(w http.ResponseWriter, flusher http.Flusher, items []domain.CartItem) {
	payload, err := json.Marshal(items)
	if err != nil {
		h.logger.Error("Failed to encode cart event", zap.Error(err))
		return
	}

	fmt.Fprintf(w, "event: cartUpdated\ndata: %s\n\n", payload)
	flusher.Flush()
}

// respondCartError maps cart sentinel errors to HTTP statuses
func (h *CartHandler) respondCartError(w http.ResponseWriter, err error) {
	h.logger.Debug("Cart operation failed", zap.Error(err))

	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, cart.ErrItemNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
	case errors.Is(err, cart.ErrInsufficientStock):
		middleware.RespondWithError(w, http.StatusConflict, "insufficient stock")
	default:
		middleware.RespondWithError(w, http.StatusInternalServerError, "cart operation failed")
	}
}
