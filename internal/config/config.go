package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	Host        string   `envconfig:"HOST" default:"0.0.0.0"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// BrowserConfig controls the Chromium instance used for scraping.
type BrowserConfig struct {
	Headless      bool          `envconfig:"BROWSER_HEADLESS" default:"true"`
	Bin           string        `envconfig:"BROWSER_BIN"`
	NoSandbox     bool          `envconfig:"BROWSER_NO_SANDBOX" default:"false"`
	ProxyURL      string        `envconfig:"LIBREADER_PROXY"`
	ScrapeTimeout time.Duration `envconfig:"SCRAPE_TIMEOUT" default:"90s"`
	StepTimeout   time.Duration `envconfig:"STEP_TIMEOUT" default:"20s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig bounds how often the server starts a browser.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"1"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"3"`
	Enabled           bool    `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Host:        "0.0.0.0",
			CORSOrigins: []string{"*"},
		},
		Browser: BrowserConfig{
			Headless:      true,
			ScrapeTimeout: 90 * time.Second,
			StepTimeout:   20 * time.Second,
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             3,
			Enabled:           true,
		},
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
