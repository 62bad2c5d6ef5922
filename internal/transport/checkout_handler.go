package transport

import (
	"errors"
	"net/http"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/cart"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/middleware"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/orders"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/payments"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutRequest carries the shipping address for an order
type CheckoutRequest struct {
	ShippingAddress ShippingAddressPayload `json:"shipping_address" validate:"required"`
}

// ShippingAddressPayload is the validated address record
type ShippingAddressPayload struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// CheckoutResponse returns the recorded order and the processor's client
// secret for completing the payment
type CheckoutResponse struct {
	Order        domain.Order `json:"order"`
	ClientSecret string       `json:"client_secret"`
}

// CheckoutHandler turns the current cart into an order record
type CheckoutHandler struct {
	store    *cart.Store
	recorder *orders.Recorder
	payments payments.Provider
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(store *cart.Store, recorder *orders.Recorder, provider payments.Provider, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		store:    store,
		recorder: recorder,
		payments: provider,
		logger:   logger,
	}
}

// RegisterRoutes registers the checkout route behind authentication
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/checkout", h.Checkout)
	})
}

// Checkout authorizes payment for the cart total, records the order, and
// clears the cart
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view := h.store.ItemsWithProducts()
	if len(view.Items) == 0 {
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	intent, err := h.payments.CreateIntent(view.Total)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidAmount) {
			middleware.RespondWithError(w, http.StatusUnprocessableEntity, "order total must be greater than zero")
			return
		}
		h.logger.Error("Payment authorization failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "payment processor unavailable")
		return
	}

	order := h.recorder.Record(
		uuid.New().String(),
		intent.ID,
		domain.ShippingAddress{
			Name:       req.ShippingAddress.Name,
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		h.store.Items(),
		view.Total,
	)

	h.store.Clear()

	h.logger.Info("Order recorded",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Order:        order,
		ClientSecret: intent.ClientSecret,
	})
}
