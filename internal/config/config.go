package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port           string   `json:"port"`
	Host           string   `json:"host"`
	AllowedOrigins []string `json:"allowed_origins"`
	GinMode        string   `json:"gin_mode"`
	Debug          bool     `json:"debug"`
	TraceExporter  string   `json:"trace_exporter"`

	// NewsAPI settings
	NewsAPIKey      string        `json:"-"` // Don't expose in JSON
	BaseURL         string        `json:"base_url"`
	Timeout         time.Duration `json:"timeout"`
	MaxRetries      int           `json:"max_retries"`
	RetryDelay      time.Duration `json:"retry_delay"`
	DefaultPageSize int           `json:"default_page_size"`
	Country         string        `json:"country"`

	// Image enrichment
	EnrichImages      bool `json:"enrich_images"`
	EnrichMaxArticles int  `json:"enrich_max_articles"`
}

// Load reads configuration from environment variables and .env file.
// A missing NEWS_API_KEY is not an error here; fetches report it instead.
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Host:              getEnvOrDefault("HOST", "0.0.0.0"),
		AllowedOrigins:    parseStringSlice(getEnvOrDefault("ALLOWED_ORIGINS", "")),
		GinMode:           getEnvOrDefault("GIN_MODE", "release"),
		Debug:             getEnvOrDefaultBool("DEBUG", false),
		TraceExporter:     getEnvOrDefault("OTEL_TRACES_EXPORTER", "none"),
		NewsAPIKey:        getEnvOrDefault("NEWS_API_KEY", ""),
		BaseURL:           strings.TrimRight(getEnvOrDefault("NEWS_API_BASE_URL", "https://newsapi.org/v2"), "/"),
		Timeout:           time.Duration(getEnvOrDefaultInt("NEWS_API_TIMEOUT_SECONDS", 15)) * time.Second,
		MaxRetries:        getEnvOrDefaultInt("NEWS_API_MAX_RETRIES", 2),
		RetryDelay:        time.Duration(getEnvOrDefaultInt("NEWS_API_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		DefaultPageSize:   getEnvOrDefaultInt("NEWS_API_DEFAULT_PAGE_SIZE", 50),
		Country:           getEnvOrDefault("NEWS_API_COUNTRY", "us"),
		EnrichImages:      getEnvOrDefaultBool("ENRICH_IMAGES", false),
		EnrichMaxArticles: getEnvOrDefaultInt("ENRICH_MAX_ARTICLES", 5),
	}

	return config, config.validate()
}

// APIKeyConfigured reports whether a NewsAPI credential is present.
func (c *Config) APIKeyConfigured() bool {
	return c.NewsAPIKey != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// validate checks that configured values are usable
func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "NEWS_API_BASE_URL", Message: "must be an absolute http or https URL"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "NEWS_API_TIMEOUT_SECONDS", Message: "must be positive"}
	}
	if c.MaxRetries < 0 {
		return &ConfigError{Field: "NEWS_API_MAX_RETRIES", Message: "must not be negative"}
	}
	if c.RetryDelay < 0 {
		return &ConfigError{Field: "NEWS_API_RETRY_DELAY_MS", Message: "must not be negative"}
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > 100 {
		return &ConfigError{Field: "NEWS_API_DEFAULT_PAGE_SIZE", Message: "must be between 1 and 100"}
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return &ConfigError{Field: "GIN_MODE", Message: "must be one of debug, release, test"}
	}
	switch c.TraceExporter {
	case "none", "stdout":
	default:
		return &ConfigError{Field: "OTEL_TRACES_EXPORTER", Message: "must be none or stdout"}
	}
	if c.EnrichMaxArticles < 0 {
		return &ConfigError{Field: "ENRICH_MAX_ARTICLES", Message: "must not be negative"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// parseStringSlice parses comma-separated string into slice
func parseStringSlice(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
