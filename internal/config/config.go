package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultContentURL    = "http://localhost:1337"
	defaultCollection    = "children"
	defaultPageSize      = 1000
	defaultJWTSecret     = "dev-only-jwt-secret"
	defaultLoggingLevel  = "info"
	defaultLoggingFormat = "json"
	errAPIKeysFormatMsg  = `API_KEYS must be "name:key,name:key"`
	errPageSizeFormatMsg = "CONTENT_PAGE_SIZE must be a positive integer"
)

// Config contains runtime configuration required by the service.
type Config struct {
	HTTPAddr  string
	DBURL     string
	JWTSecret string
	APIKeys   map[string]string // apiKey -> operator name
	Content   ContentConfig
	Logging   LoggingConfig
}

// ContentConfig describes how to reach the CMS content API.
type ContentConfig struct {
	BaseURL    string `yaml:"base_url,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	PageSize   int    `yaml:"page_size,omitempty"`
	Token      string `yaml:"token,omitempty"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // json|console
}

// DefaultContent returns the content settings used when nothing is configured.
func DefaultContent() ContentConfig {
	return ContentConfig{
		BaseURL:    defaultContentURL,
		Collection: defaultCollection,
		PageSize:   defaultPageSize,
	}
}

// DefaultLogging returns the logging settings used when nothing is configured.
func DefaultLogging() LoggingConfig {
	return LoggingConfig{Level: defaultLoggingLevel, Format: defaultLoggingFormat}
}

// Load reads required values from environment variables.
// API_KEYS format: "alice:key1,bob:key2"
func Load() (Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return Config{}, errors.New("DB_URL required")
	}

	apiKeys, err := parseAPIKeys(os.Getenv("API_KEYS"))
	if err != nil {
		return Config{}, err
	}

	// Local dev fallback so the admin routes work out-of-the-box.
	if len(apiKeys) == 0 {
		apiKeys["admin-key-123"] = "admin"
	}

	content := DefaultContent()
	if err := content.ApplyEnv(); err != nil {
		return Config{}, err
	}

	logging := DefaultLogging()
	logging.ApplyEnv()

	return Config{
		HTTPAddr:  valueOrDefault("HTTP_ADDR", defaultHTTPAddr),
		DBURL:     dbURL,
		JWTSecret: valueOrDefault("JWT_SECRET", defaultJWTSecret),
		APIKeys:   apiKeys,
		Content:   content,
		Logging:   logging,
	}, nil
}

// ApplyEnv overrides content settings from CONTENT_* environment variables.
func (c *ContentConfig) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv("CONTENT_API_URL")); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CONTENT_COLLECTION")); v != "" {
		c.Collection = v
	}
	if v := strings.TrimSpace(os.Getenv("CONTENT_API_TOKEN")); v != "" {
		c.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("CONTENT_PAGE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return errors.New(errPageSizeFormatMsg)
		}
		c.PageSize = n
	}
	return nil
}

// Validate reports settings the content client cannot work with.
func (c ContentConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("content base URL required")
	}
	if strings.TrimSpace(c.Collection) == "" {
		return errors.New("content collection required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	return nil
}

// ApplyEnv overrides logging settings from LOG_LEVEL and LOG_FORMAT.
func (l *LoggingConfig) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		l.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		l.Format = v
	}
}

func parseAPIKeys(raw string) (map[string]string, error) {
	apiKeys := map[string]string{}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apiKeys, nil
	}

	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New(errAPIKeysFormatMsg)
		}
		name := strings.TrimSpace(parts[0])
		key := strings.TrimSpace(parts[1])
		if name == "" || key == "" {
			return nil, errors.New(errAPIKeysFormatMsg)
		}
		apiKeys[key] = name
	}
	return apiKeys, nil
}

func valueOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
