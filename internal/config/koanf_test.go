// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Rules.Path != "product_recommendations.csv" {
		t.Errorf("Rules.Path = %q", cfg.Rules.Path)
	}
	if cfg.Rules.URL != "" {
		t.Errorf("Rules.URL should be empty by default, got %q", cfg.Rules.URL)
	}
	if cfg.Rules.RefreshSeconds != 30 || cfg.Rules.TimeoutSeconds != 8 {
		t.Errorf("refresh/timeout = %d/%v, want 30/8", cfg.Rules.RefreshSeconds, cfg.Rules.TimeoutSeconds)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Storefront.ProductPathPattern != "/products/{slug}/" {
		t.Errorf("ProductPathPattern = %q", cfg.Storefront.ProductPathPattern)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

// TestLoadWithKoanf_EnvOverrides verifies the original environment names
func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("RECOMMENDATIONS_CSV", "/data/rules.csv")
	t.Setenv("RECOMMENDATIONS_CSV_URL", " https://docs.example.com/export?format=csv ")
	t.Setenv("RECOMMENDATIONS_CSV_REFRESH_SECONDS", "120")
	t.Setenv("RECOMMENDATIONS_CSV_TIMEOUT_SECONDS", "2.5")
	t.Setenv("STOREFRONT_BASE_URL", "https://shop.example.com/")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://www.example.com")
	t.Setenv("FBT_LIMIT", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Rules.Path != "/data/rules.csv" {
		t.Errorf("Rules.Path = %q", cfg.Rules.Path)
	}
	if cfg.Rules.URL != "https://docs.example.com/export?format=csv" {
		t.Errorf("Rules.URL = %q", cfg.Rules.URL)
	}
	if cfg.Storefront.BaseURL != "https://shop.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash removed", cfg.Storefront.BaseURL)
	}
	if cfg.Server.Port != 8080 || cfg.Recommend.Limit != 2 || cfg.Logging.Level != "debug" {
		t.Errorf("port/limit/level = %d/%d/%s", cfg.Server.Port, cfg.Recommend.Limit, cfg.Logging.Level)
	}
	wantOrigins := []string{"https://shop.example.com", "https://www.example.com"}
	if diff := cmp.Diff(wantOrigins, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}

	src := cfg.SourceConfig()
	if src.Refresh != 2*time.Minute || src.Timeout != 2500*time.Millisecond {
		t.Errorf("source refresh/timeout = %v/%v", src.Refresh, src.Timeout)
	}
	eng := cfg.EngineConfig()
	if eng.Limit != 2 || eng.BackfillPriority != rules.PriorityTertiary || eng.GloveFallbackBrand != "alpinestars" {
		t.Errorf("engine config = %+v", eng)
	}
}

// TestLoadWithKoanf_ConfigFile verifies YAML is layered between defaults and env
func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := strings.Join([]string{
		"rules:",
		"  path: /srv/fbt/rules.csv",
		"recommend:",
		"  glove_fallback_brand: \"\"",
		"cache:",
		"  capacity: 16",
		"  ttl: 30s",
		"validation:",
		"  weights:",
		"    brand_overlap: 90",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RESPONSE_CACHE_CAPACITY", "64")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Rules.Path != "/srv/fbt/rules.csv" {
		t.Errorf("Rules.Path = %q", cfg.Rules.Path)
	}
	if cfg.Recommend.GloveFallbackBrand != "" {
		t.Errorf("GloveFallbackBrand = %q, want disabled", cfg.Recommend.GloveFallbackBrand)
	}
	if cfg.Cache.Capacity != 64 || cfg.Cache.TTL != 30*time.Second {
		t.Errorf("cache = %+v, env should win over file", cfg.Cache)
	}
	if cfg.Validation.Weights.BrandOverlap != 90 || cfg.Validation.Weights.TypeMatch != 80 {
		t.Errorf("weights = %+v", cfg.Validation.Weights)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"limit too high", func(c *Config) { c.Recommend.Limit = 4 }, "Limit must be at most 3"},
		{"rules url scheme", func(c *Config) { c.Rules.URL = "ftp://example.com/x.csv" }, "URL must be an http or https URL"},
		{"empty path", func(c *Config) { c.Rules.Path = "" }, "Path is required"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "Port must be at least 1"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "Format must be one of: json console"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, `LOG_LEVEL "loud"`},
		{"rate window", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"storefront query", func(c *Config) { c.Storefront.BaseURL = "https://shop.example.com?x=1" }, "query parameters"},
		{"negative weight", func(c *Config) { c.Validation.Weights.ForMarker = -1 }, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"RECOMMENDATIONS_CSV_URL": "rules.url",
		"PORT":                    "server.port",
		"HTTP_PORT":               "server.port",
		"log_level":               "logging.level",
		"HOME":                    "",
		"PATH":                    "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasWildcardCORS(t *testing.T) {
	cfg := defaultConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default origins should be a wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://shop.example.com"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origin reported as wildcard")
	}
}
