package transport

import (
	"net/http"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/cart"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/catalog"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StockResponse reports the derived available stock for a product
type StockResponse struct {
	ProductID      string `json:"product_id"`
	AvailableStock int    `json:"available_stock"`
}

// ProductHandler handles HTTP requests for catalog reads
type ProductHandler struct {
	catalog   *catalog.Catalog
	cartStore *cart.Store
	logger    *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(cat *catalog.Catalog, cartStore *cart.Store, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:   cat,
		cartStore: cartStore,
		logger:    logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Get("/{id}/stock", h.GetStock)
	})

	// Ledger dump for the admin dashboard
	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/api/admin/stock", h.GetAdjustments)
	})
}

// List returns the catalog, optionally filtered by category or featured flag
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		middleware.RespondWithJSON(w, http.StatusOK, h.catalog.GetByCategory(category))
		return
	}

	if r.URL.Query().Get("featured") == "true" {
		middleware.RespondWithJSON(w, http.StatusOK, h.catalog.GetFeatured())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.GetAll())
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, ok := h.catalog.GetByID(id)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// GetStock returns the available stock for a product, derived from the
// catalog baseline and the cart's reservations
func (h *ProductHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.catalog.GetByID(id); !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, StockResponse{
		ProductID:      id,
		AvailableStock: h.cartStore.AvailableStock(id),
	})
}

// GetAdjustments returns the raw stock-adjustment mapping
func (h *ProductHandler) GetAdjustments(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.cartStore.Adjustments())
}
