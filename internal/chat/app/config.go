package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Issuer claim for tokens (default: snug-chat)
	SigningKeyFile string // Required: path to the HS256 signing key file (min 32 bytes)

	TokenTTL       time.Duration // Access token lifetime (default: 1h)
	PresenceWindow time.Duration // How long a user stays on the roster after last being seen (default: 2m)
	MessageLimit   int           // Message tail size per snapshot (default: 500)
	MaxMessageLen  int           // Maximum accepted message length (default: 2000)
	MessageRetain  int           // Messages kept by housekeeping (default: 5000)

	DatabaseFile         string        // Path to SQLite database file (default: ./snug.db)
	PepperFile           string        // Path to the password hashing pepper file (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 5m)
}

func LoadConfig() Config {
	return Config{
		Issuer:         getEnvOrDefault("SNUG_ISSUER", "snug-chat"),
		SigningKeyFile: os.Getenv("SNUG_SIGNING_KEY_FILE"),

		TokenTTL:       getEnvDurationOrDefault("SNUG_TOKEN_TTL", time.Hour),
		PresenceWindow: getEnvDurationOrDefault("SNUG_PRESENCE_WINDOW", 2*time.Minute),
		MessageLimit:   getEnvIntOrDefault("SNUG_MESSAGE_LIMIT", 500),
		MaxMessageLen:  getEnvIntOrDefault("SNUG_MAX_MESSAGE_LEN", 2000),
		MessageRetain:  getEnvIntOrDefault("SNUG_MESSAGE_RETAIN", 5000),

		DatabaseFile:         getEnvOrDefault("SNUG_DATABASE_FILE", "snug.db"),
		PepperFile:           getEnvOrDefault("SNUG_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
	}
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
