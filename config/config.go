package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported browser backends.
const (
	BackendPlaywright = "playwright"
	BackendStatic     = "static"
)

// Selectors holds the CSS selectors for the review page markup.
type Selectors struct {
	ProductName   string
	ReviewCard    string
	ReviewText    string
	RatingStars   string
	RatingAttr    string
	ReviewDate    string
	ReviewerName  string
	ReviewerTitle string
	Company       string
	Industry      string
	CompanySize   string
}

// DefaultSelectors matches the current G2 review page markup.
func DefaultSelectors() Selectors {
	return Selectors{
		ProductName:   "h1.product-name",
		ReviewCard:    ".review-card",
		ReviewText:    ".review-content__text",
		RatingStars:   ".rating-display__stars",
		RatingAttr:    "data-rating",
		ReviewDate:    ".review-date",
		ReviewerName:  ".reviewer__name",
		ReviewerTitle: ".reviewer__title",
		Company:       ".reviewer__company",
		Industry:      ".reviewer__industry",
		CompanySize:   ".reviewer__company-size",
	}
}

// Config holds service configuration. It is resolved once at startup.
type Config struct {
	ServiceName string
	Port        string

	Backend           string // playwright or static
	Headless          bool
	ExecutablePath    string
	InstallBrowsers   bool
	UserAgent         string
	NavigationTimeout time.Duration
	ContentTimeout    time.Duration

	URLMarker string
	Selectors Selectors

	MetricsEnabled  bool
	MetricsAddr     string
	ZipkinEndpoint  string
	ShutdownTimeout time.Duration

	LogLevel string
	Verbose  bool
}

// DefaultConfig returns the defaults of the original deployment.
func DefaultConfig() *Config {
	return &Config{
		ServiceName:       "review-scraper",
		Port:              "3001",
		Backend:           BackendPlaywright,
		Headless:          true,
		UserAgent:         "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		NavigationTimeout: 60 * time.Second,
		ContentTimeout:    30 * time.Second,
		URLMarker:         "g2.com/products/",
		Selectors:         DefaultSelectors(),
		MetricsEnabled:    true,
		ShutdownTimeout:   10 * time.Second,
		LogLevel:          "info",
	}
}

// Addr returns the listen address derived from Port.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.Backend != BackendPlaywright && c.Backend != BackendStatic {
		return fmt.Errorf("backend must be %s or %s", BackendPlaywright, BackendStatic)
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive")
	}
	if c.ContentTimeout <= 0 {
		return fmt.Errorf("content timeout must be positive")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout cannot be negative")
	}
	if strings.TrimSpace(c.URLMarker) == "" {
		return fmt.Errorf("url marker cannot be empty")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.Selectors.ReviewCard == "" {
		return fmt.Errorf("review card selector cannot be empty")
	}
	if c.Selectors.RatingAttr == "" {
		return fmt.Errorf("rating attribute cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn, or error")
	}

	return nil
}
