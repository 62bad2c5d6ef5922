package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/catalog"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/config"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/logger"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/server"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 30 seconds to finish the requests it is currently
	// handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")
	done <- true
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	fs := afero.NewOsFs()

	// Load the static product catalog
	cat, err := catalog.Load(fs, cfg.Storage.ProductsFile)
	if err != nil {
		log.Fatal("Failed to load product catalog", zap.Error(err))
	}
	log.Info("Product catalog loaded",
		zap.String("file", cfg.Storage.ProductsFile),
		zap.Int("products", len(cat.GetAll())),
	)

	// Open the durable local store
	store := storage.New(fs, cfg.Storage.DataDir, log)

	// Rate limiting is optional; it needs a Redis instance
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Info("Rate limiting enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	// Create server
	srv, err := server.NewServer(cfg, log, cat, store, redisClient)
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
