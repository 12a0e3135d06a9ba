// Package tickerapp provides a client for the ticker app price API.
package tickerapp

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 60
)

// Config holds configuration for the ticker app API client.
type Config struct {
	BaseURL   string        // Base URL for the API (e.g., "https://tickers.example.com/api")
	Timeout   time.Duration // HTTP request timeout
	RateLimit int           // Maximum requests per minute; 0 disables limiting
}

// LoadConfig loads ticker app configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("TICKER_APP_BASE_URL"),
		Timeout:   defaultTimeout,
		RateLimit: defaultRateLimit,
	}
	if d, err := time.ParseDuration(os.Getenv("TICKER_APP_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("TICKER_APP_RATE_LIMIT")); err == nil && n >= 0 {
		cfg.RateLimit = n
	}
	return cfg
}
