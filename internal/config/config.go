package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Session   SessionConfig
	Stripe    StripeConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	DataDir      string
	ProductsFile string
}

type SessionConfig struct {
	Secret     string
	ExpiryDays int
}

type StripeConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Addr     string // empty disables rate limiting
	Password string
	DB       int
}

type RateLimitConfig struct {
	RequestsPerWindow int
	WindowSeconds     int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("PRODUCTS_FILE", "data/products.json")
	viper.SetDefault("SESSION_SECRET", "dev-session-secret")
	viper.SetDefault("SESSION_EXPIRY_DAYS", 7)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	var origins []string
	if raw := viper.GetString("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			origins = append(origins, strings.TrimSpace(o))
		}
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Storage: StorageConfig{
			DataDir:      viper.GetString("DATA_DIR"),
			ProductsFile: viper.GetString("PRODUCTS_FILE"),
		},
		Session: SessionConfig{
			Secret:     viper.GetString("SESSION_SECRET"),
			ExpiryDays: viper.GetInt("SESSION_EXPIRY_DAYS"),
		},
		Stripe: StripeConfig{
			SecretKey: viper.GetString("STRIPE_SECRET_KEY"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds:     viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
	}
}
