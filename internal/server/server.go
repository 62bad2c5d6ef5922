package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/auth"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/cart"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/catalog"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/config"
	custommiddleware "github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/middleware"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/orders"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/payments"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/storage"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	cartStore *cart.Store
}

// NewServer wires the storefront services onto a chi router. redisClient
// may be nil, which disables rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, cat *catalog.Catalog, store *storage.Store, redisClient *redis.Client) (*Server, error) {
	router := chi.NewRouter()

	isDevelopment := cfg.Server.Env != "production"

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, isDevelopment))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "storefront_rate_limit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	cartStore := cart.NewStore(cat, store, logger)
	recorder := orders.NewRecorder(cat, store)
	paymentProvider := payments.NewStripeProvider(cfg.Stripe.SecretKey, logger)

	authService, err := auth.NewService(cfg.Session.Secret, time.Duration(cfg.Session.ExpiryDays)*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	sessionMiddleware := custommiddleware.SessionMiddleware(authService, logger)
	adminMiddleware := func(next http.Handler) http.Handler {
		return sessionMiddleware(custommiddleware.RequireAdmin(logger)(next))
	}

	// Initialize handlers
	transport.NewProductHandler(cat, cartStore, logger).RegisterRoutes(router, adminMiddleware)
	transport.NewCartHandler(cartStore, logger).RegisterRoutes(router)
	transport.NewCheckoutHandler(cartStore, recorder, paymentProvider, logger).RegisterRoutes(router, sessionMiddleware)
	transport.NewOrderHandler(recorder, logger).RegisterRoutes(router, sessionMiddleware)
	transport.NewAuthHandler(authService, logger).RegisterRoutes(router, sessionMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		cartStore: cartStore,
	}

	return server, nil
}

// Close flushes cart state and releases server resources
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.cartStore.Flush()
	s.logger.Sync()
	return nil
}
