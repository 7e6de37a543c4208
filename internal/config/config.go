package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// OpenWeatherAPIKey authenticates geocoding and all weather-data calls.
	OpenWeatherAPIKey string

	// GeocoderAPIKey is the optional Google key for reverse geocoding of
	// coordinate queries. Empty disables reverse geocoding.
	GeocoderAPIKey string

	// RequestTimeout bounds every individual provider call.
	RequestTimeout time.Duration

	// GeocodeLimit is the maximum number of geocoding candidates requested.
	GeocodeLimit int

	// RefreshInterval controls the background refresh of the last location.
	// Zero disables the refresh job.
	RefreshInterval time.Duration

	// PendingTTL is how long an unanswered disambiguation stays selectable.
	PendingTTL time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeout, err := getenvDuration("REQUEST_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	cfg.GeocodeLimit = getenvInt("GEOCODE_LIMIT", 5)

	refresh, err := getenvDuration("REFRESH_INTERVAL", "0s")
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	ttl, err := getenvDuration("PENDING_TTL", "10m")
	if err != nil {
		return nil, fmt.Errorf("invalid PENDING_TTL: %w", err)
	}
	cfg.PendingTTL = ttl

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
