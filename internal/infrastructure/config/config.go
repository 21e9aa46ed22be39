// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Booking backend
	APIBaseURL     string
	APITimeout     time.Duration
	APIMaxRetries  int
	RetryBackoff   time.Duration
	SecurityHeader string

	// Sessions
	SessionTTL      time.Duration
	SweepInterval   time.Duration
	DefaultCurrency string

	// Response cache
	CacheTTL  time.Duration
	RedisAddr string
	RedisDB   int

	// MongoDB (hold record audit store; optional)
	MongoURI            string
	MongoDB             string
	MongoUser           string
	MongoPassword       string
	MongoConnectTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		APIBaseURL:     getEnv("BOOKING_API_BASE_URL", "http://localhost:9090"),
		APITimeout:     time.Duration(getEnvAsInt("BOOKING_API_TIMEOUT", 20)) * time.Second,
		APIMaxRetries:  getEnvAsInt("BOOKING_API_MAX_RETRIES", 1),
		RetryBackoff:   time.Duration(getEnvAsInt("BOOKING_API_RETRY_BACKOFF_MS", 250)) * time.Millisecond,
		SecurityHeader: getEnv("BOOKING_API_SECURITY_HEADER", "securitytoken"),

		SessionTTL:      time.Duration(getEnvAsInt("SESSION_TTL", 1800)) * time.Second,
		SweepInterval:   time.Duration(getEnvAsInt("SESSION_SWEEP_INTERVAL", 60)) * time.Second,
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "THB"),

		CacheTTL:  time.Duration(getEnvAsInt("RESPONSE_CACHE_TTL", 600)) * time.Second,
		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		MongoURI:            getEnv("MONGODB_DSN", ""),
		MongoDB:             getEnv("MONGO_DB", "bookingflow"),
		MongoUser:           getEnv("MONGO_USER", ""),
		MongoPassword:       getEnv("MONGO_PASSWORD", ""),
		MongoConnectTimeout: time.Duration(getEnvAsInt("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
