package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultIdentifiers are scraped by `prodscrape run` when no identifiers are
// given on the command line or in PRODSCRAPE_IDS.
var DefaultIdentifiers = []string{"B0B2JZXW8L", "B01GGKYKQM", "B01GGKZ2SC"}

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Store     StoreConfig
	Run       RunConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls how product pages are downloaded.
type FetchConfig struct {
	// BaseURL is the storefront origin; product pages live at <BaseURL>/dp/<id>.
	BaseURL string // default: "https://www.amazon.com"

	// Timeout bounds a single GET. Zero leaves the client default (no timeout).
	Timeout time.Duration // default: 0

	// Headers are attached to every request of the session.
	// Format: "Name: value;Other: value".
	Headers map[string]string

	// Cookies are attached to every request of the session.
	// Format: "name=value; other=value".
	Cookies map[string]string
}

// StoreConfig selects where raw pages and records are persisted.
type StoreConfig struct {
	// Kind is "fs" or "postgres". default: "fs"
	Kind string

	// Dir is the output directory for the filesystem store. default: "."
	Dir string

	// DatabaseURL is the Postgres DSN for the postgres store.
	DatabaseURL string
}

// RunConfig controls the batch orchestrator.
type RunConfig struct {
	// Identifiers overrides DefaultIdentifiers.
	Identifiers []string

	// Concurrency is the number of identifiers processed at once. default: 1
	Concurrency int
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting of the HTTP API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// WebhookConfig controls record.saved notifications.
type WebhookConfig struct {
	// URL receives a POST for every persisted record. Empty disables it.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first if present; variables
// already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("PRODSCRAPE_HOST", "0.0.0.0"),
			Port: envIntOr("PRODSCRAPE_PORT", 8080),
			Mode: envOr("PRODSCRAPE_MODE", "release"),
		},
		Fetch: FetchConfig{
			BaseURL: envOr("PRODSCRAPE_SITE_URL", "https://www.amazon.com"),
			Timeout: envDurationOr("PRODSCRAPE_FETCH_TIMEOUT", 0),
			Headers: ParsePairs(os.Getenv("PRODSCRAPE_HEADERS"), ";", ":"),
			Cookies: ParsePairs(os.Getenv("PRODSCRAPE_COOKIES"), ";", "="),
		},
		Store: StoreConfig{
			Kind:        envOr("PRODSCRAPE_STORE", "fs"),
			Dir:         envOr("PRODSCRAPE_OUTPUT_DIR", "."),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Run: RunConfig{
			Identifiers: envSliceOr("PRODSCRAPE_IDS", DefaultIdentifiers),
			Concurrency: envIntOr("PRODSCRAPE_CONCURRENCY", 1),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PRODSCRAPE_AUTH_ENABLED", true),
			APIKeys: envSliceOr("PRODSCRAPE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PRODSCRAPE_RATE_RPS", 1.0),
			Burst:             envIntOr("PRODSCRAPE_RATE_BURST", 3),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("PRODSCRAPE_WEBHOOK_URL"),
			Secret: os.Getenv("PRODSCRAPE_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("PRODSCRAPE_LOG_LEVEL", "info"),
			Format: envOr("PRODSCRAPE_LOG_FORMAT", "text"),
		},
	}
}

// ParsePairs splits "k<kv>v<sep>k<kv>v" into a map. Entries without the
// key/value separator or with an empty key are skipped.
func ParsePairs(s, sep, kv string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(s, sep) {
		k, v, ok := strings.Cut(part, kv)
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
