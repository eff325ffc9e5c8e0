package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL        string // Required: public origin verification/signup links are built against
	AdminJWTSecret string // Required: shared HMAC secret for operator bearer tokens
	JWTIssuer      string // Optional: expected iss claim on operator tokens

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./applicant.db)
	AutoApproveOnVerify bool          // Optional: skip manual review after email verification (default: true)
	VerifyTokenTTL      time.Duration // Optional: verification token validity window (default: 24h)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	NotifyQueueSize      int           // Notification queue depth (default: 64)
}

func LoadConfig() Config {
	cfg := Config{
		BaseURL:        getEnvOrDefault("APPLICANT_BASE_URL", "http://localhost:8080"),
		AdminJWTSecret: os.Getenv("APPLICANT_ADMIN_JWT_SECRET"),
		JWTIssuer:      os.Getenv("APPLICANT_JWT_ISSUER"),

		DatabaseFile:        getEnvOrDefault("APPLICANT_DATABASE_FILE", "applicant.db"),
		AutoApproveOnVerify: getEnvBoolOrDefault("APPLICANT_AUTO_APPROVE_ON_VERIFY", true),
		VerifyTokenTTL:      getEnvDurationOrDefault("APPLICANT_VERIFY_TOKEN_TTL", 24*time.Hour),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		NotifyQueueSize:      getEnvIntOrDefault("NOTIFY_QUEUE_SIZE", 64),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
