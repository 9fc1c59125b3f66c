package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ListModeLenient = "lenient"
	ListModeStrict  = "strict"

	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

type Config struct {
	// BaseURL is the site root relative product links are resolved against.
	BaseURL string `envconfig:"BASE_URL" default:"https://www.yoro-store.com"`

	// CategoryPath is the listing page scanned for product links.
	CategoryPath string `envconfig:"CATEGORY_PATH" default:"/product-category/oil-filter/"`

	UserAgent string `envconfig:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// RequestDelay is the minimum gap between two requests to the site.
	RequestDelay time.Duration `envconfig:"REQUEST_DELAY" default:"2500ms"`

	FallbackLinkLimit int `envconfig:"FALLBACK_LINK_LIMIT" default:"50"`

	PricePlaceholder string `envconfig:"PRICE_PLACEHOLDER" default:"価格不明"`

	ListMode string `envconfig:"LIST_MODE" default:"lenient"`

	// SelectorsFile optionally points at a YAML file overriding the selector sets.
	SelectorsFile string `envconfig:"SELECTORS_FILE"`

	RespectRobots bool `envconfig:"RESPECT_ROBOTS" default:"true"`

	FetchMode string `envconfig:"FETCH_MODE" default:"http"`

	OutputPath string `envconfig:"OUTPUT_PATH" default:"data/fitment_oilfilters.json"`

	// DatabaseURL is only needed by the import and migrate commands.
	DatabaseURL string `envconfig:"DB_URL"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnvFile loads variables from the .env file at path into the process
// environment without overriding variables already set. A missing file is
// not an error, since production injects variables directly.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load processes environment variables and populates the Config struct.
// Call LoadEnvFile first to pick up a local .env.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BASE_URL %q", c.BaseURL)
	}
	if c.FallbackLinkLimit <= 0 {
		return fmt.Errorf("invalid FALLBACK_LINK_LIMIT %d", c.FallbackLinkLimit)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("invalid REQUEST_DELAY %s", c.RequestDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT %s", c.RequestTimeout)
	}
	switch c.ListMode {
	case ListModeLenient, ListModeStrict:
	default:
		return fmt.Errorf("invalid LIST_MODE %q (want %s or %s)", c.ListMode, ListModeLenient, ListModeStrict)
	}
	switch c.FetchMode {
	case FetchModeHTTP, FetchModeBrowser:
	default:
		return fmt.Errorf("invalid FETCH_MODE %q (want %s or %s)", c.FetchMode, FetchModeHTTP, FetchModeBrowser)
	}
	return nil
}

// CategoryURL joins BaseURL and CategoryPath.
func (c *Config) CategoryURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(c.CategoryPath, "/")
}
