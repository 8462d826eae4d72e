// Package env wraps environment-based configuration for the waykit
// binaries.
package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file when present; in production the variables are
// expected to be set directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

// MustGet returns the value of key or exits when it is unset.
func MustGet(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("Environment variable %s not set", key)
	}
	return val
}

// GetDefault returns the value of key, or fallback when unset or empty.
func GetDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
