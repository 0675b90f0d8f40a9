// Package config handles application configuration via environment variables.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
)

// Config holds all configurable values for the app.
type Config struct {
	Env             string
	Port            string
	StoreDriver     string
	SupabaseURL     string
	SupabaseAnonKey string
	LeadsTable      string
	DatabaseURL     string
	StoreTimeout    time.Duration
	AllowedOrigins  []string
}

// Load reads a .env file when present, then environment variables, and
// populates a Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring unreadable .env file: %v", err)
	}

	storeTimeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "10s"))
	if err != nil {
		log.Panicf("Invalid STORE_TIMEOUT: %v", err)
	}

	driver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", DriverMemory)))
	switch driver {
	case DriverMemory, DriverSupabase, DriverPostgres:
	default:
		log.Panicf("Invalid STORE_DRIVER: %q", driver)
	}

	return &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		StoreDriver:     driver,
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		LeadsTable:      getEnv("LEADS_TABLE", "demo-requests"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		StoreTimeout:    storeTimeout,
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
