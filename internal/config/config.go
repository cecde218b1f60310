package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseDriver      string
	DatabaseURL         string
	DatabaseAutoMigrate bool

	RedisURL      string
	CountCacheTTL time.Duration

	JWTSecret       string
	JWTAccessExpiry time.Duration

	CORSOrigins string
	AppURL      string

	ResendAPIKey string
	FromEmail    string

	EventWorkers        int
	EventQueueSize      int
	EventHandlerTimeout time.Duration
	DeliveryTimeout     time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseDriver:      getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		DatabaseAutoMigrate: getBoolEnv("DATABASE_AUTO_MIGRATE", true),

		RedisURL:      getEnv("REDIS_URL", ""),
		CountCacheTTL: getDurationEnv("COUNT_CACHE_TTL", 30*time.Second),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		AppURL:      getEnv("APP_URL", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),

		EventWorkers:        getIntEnv("EVENT_WORKERS", 8),
		EventQueueSize:      getIntEnv("EVENT_QUEUE_SIZE", 256),
		EventHandlerTimeout: getDurationEnv("EVENT_HANDLER_TIMEOUT", 10*time.Second),
		DeliveryTimeout:     getDurationEnv("DELIVERY_TIMEOUT", 5*time.Second),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
