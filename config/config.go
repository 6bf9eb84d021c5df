package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// WooCommerce upstream
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	UseStoreAPI    bool

	// OpenRouter enrichment (optional; empty key disables it)
	OpenRouterKey   string
	OpenRouterModel string

	// HTTP server
	HTTPPort       string
	FrontendOrigin string
	APIKey         string

	// Upstream politeness
	RatePerSecond  float64
	RateBurst      int
	RequestTimeout time.Duration

	// Catalog cache
	CacheTTL time.Duration
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		UseStoreAPI:     true,
		OpenRouterModel: "openai/gpt-4o-mini",
		HTTPPort:        "4000",
		FrontendOrigin:  "http://localhost:5173",
		RatePerSecond:   5.0,
		RateBurst:       5,
		RequestTimeout:  12 * time.Second,
		CacheTTL:        5 * time.Minute,
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("WC_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("WC_CONSUMER_KEY"); v != "" {
		c.ConsumerKey = v
	}
	if v := os.Getenv("WC_CONSUMER_SECRET"); v != "" {
		c.ConsumerSecret = v
	}
	if v := os.Getenv("WC_USE_STORE_API"); v != "" {
		c.UseStoreAPI = v == "true"
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.OpenRouterKey = v
	}
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		c.OpenRouterModel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("KASUWA_FRONTEND_ORIGIN"); v != "" {
		c.FrontendOrigin = v
	}
	if v := os.Getenv("KASUWA_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("KASUWA_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("KASUWA_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("KASUWA_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("KASUWA_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = d
		}
	}
}
