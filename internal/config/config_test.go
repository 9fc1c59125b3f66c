package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.yoro-store.com", cfg.BaseURL)
	assert.Equal(t, "https://www.yoro-store.com/product-category/oil-filter/", cfg.CategoryURL())
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50, cfg.FallbackLinkLimit)
	assert.Equal(t, "価格不明", cfg.PricePlaceholder)
	assert.Equal(t, ListModeLenient, cfg.ListMode)
	assert.Equal(t, FetchModeHTTP, cfg.FetchMode)
	assert.Equal(t, "data/fitment_oilfilters.json", cfg.OutputPath)
	assert.True(t, cfg.RespectRobots)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "http://localhost:8080/")
	t.Setenv("CATEGORY_PATH", "product-category/air-filter/")
	t.Setenv("REQUEST_DELAY", "0s")
	t.Setenv("LIST_MODE", "strict")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/product-category/air-filter/", cfg.CategoryURL())
	assert.Equal(t, time.Duration(0), cfg.RequestDelay)
	assert.Equal(t, ListModeStrict, cfg.ListMode)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"LIST_MODE":           "guess",
		"FETCH_MODE":          "ftp",
		"FALLBACK_LINK_LIMIT": "0",
		"BASE_URL":            "not a url",
		"REQUEST_TIMEOUT":     "0s",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, ".env")), "missing file is fine")

	path := filepath.Join(dir, "valid.env")
	require.NoError(t, os.WriteFile(path, []byte("FITMENT_TEST_PRICE_PLACEHOLDER=n/a\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("FITMENT_TEST_PRICE_PLACEHOLDER") })
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "n/a", os.Getenv("FITMENT_TEST_PRICE_PLACEHOLDER"))

	// A directory exists but cannot be read as a file.
	assert.Error(t, LoadEnvFile(dir))
}
