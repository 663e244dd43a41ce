package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	JWTSecret       string
	JWTExpiry       string
	DebounceWindow  time.Duration
	SyncTimeout     time.Duration
	CartRefetch     bool
	SessionIdleTTL  time.Duration
	StockCacheTTL   time.Duration
	CatalogCacheTTL time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("APP_PORT", getEnv("PORT", "8082")),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8000/api"),
		UpstreamTimeout: durationEnv("UPSTREAM_TIMEOUT_MS", 10000),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		JWTExpiry:       getEnv("JWT_EXPIRY", "720h"),
		DebounceWindow:  durationEnv("CART_DEBOUNCE_MS", 150),
		SyncTimeout:     durationEnv("CART_SYNC_TIMEOUT_MS", 10000),
		CartRefetch:     boolEnv("CART_REFETCH", false),
		SessionIdleTTL:  durationEnv("SESSION_IDLE_TTL_MS", 30*60*1000),
		StockCacheTTL:   durationEnv("STOCK_CACHE_TTL_MS", 30000),
		CatalogCacheTTL: durationEnv("CATALOG_CACHE_TTL_MS", 5*60*1000),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Upstream API: %s", AppConfig.UpstreamBaseURL)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultMs int) time.Duration {
	ms, err := strconv.Atoi(os.Getenv(key))
	if err != nil || ms <= 0 {
		ms = defaultMs
	}
	return time.Duration(ms) * time.Millisecond
}

func boolEnv(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
