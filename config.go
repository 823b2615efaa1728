package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/preppal-io/prep-pal/modules/storage"
)

// Config is the process configuration read from the environment.
type Config struct {
	StoragePath    string
	NATSPort       int
	HTTPPort       int
	Privileged     bool
	Locale         string
	RequestTimeout time.Duration
}

// loadConfig reads the configuration. Invalid values fall back to defaults.
func loadConfig() Config {
	return Config{
		StoragePath:    getEnv("PREPPAL_STORAGE_PATH", "/tmp/preppal"),
		NATSPort:       getEnvInt("PREPPAL_NATS_PORT", 4222),
		HTTPPort:       getEnvInt("PREPPAL_HTTP_PORT", 3000),
		Privileged:     storage.IsPrivilegedEnvironment(os.Getenv),
		Locale:         getEnv("PREPPAL_LOCALE", "en_US"),
		RequestTimeout: getEnvDuration("PREPPAL_REQUEST_TIMEOUT", 5*time.Second),
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as time.Duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
