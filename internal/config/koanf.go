// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validate"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/fbt/config.yaml",
	"/etc/fbt/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			Path:           "product_recommendations.csv",
			URL:            "",
			RefreshSeconds: 30,
			TimeoutSeconds: 8,
			ReloadInterval: 2 * time.Second,
			ReloadBurst:    3,
		},
		Recommend: RecommendConfig{
			Limit:              3,
			BackfillLabel:      "Recommended item",
			BackfillPriority:   "Tertiary",
			GloveFallbackBrand: "alpinestars",
			EmptyCartMessage:   "No products in cart",
		},
		Storefront: StorefrontConfig{
			BaseURL:            "",
			ProductPathPattern: "/products/{slug}/",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"}, // storefront widget is embedded cross-origin
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 2048,
			TTL:      5 * time.Minute,
		},
		Validation: ValidationConfig{
			ProofsPath: "compatibility_proofs.csv",
			Weights:    validate.DefaultScoreWeights(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// normalize trims values the way the environment usually delivers them.
func (c *Config) normalize() {
	c.Rules.Path = strings.TrimSpace(c.Rules.Path)
	c.Rules.URL = strings.TrimSpace(c.Rules.URL)
	c.Storefront.BaseURL = strings.TrimRight(strings.TrimSpace(c.Storefront.BaseURL), "/")
	c.Storefront.ProductPathPattern = strings.TrimSpace(c.Storefront.ProductPathPattern)
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	// Rule source (names kept from the original deployment)
	"recommendations_csv":                 "rules.path",
	"recommendations_csv_url":             "rules.url",
	"recommendations_csv_refresh_seconds": "rules.refresh_seconds",
	"recommendations_csv_timeout_seconds": "rules.timeout_seconds",
	"rules_reload_interval":               "rules.reload_interval",
	"rules_reload_burst":                  "rules.reload_burst",

	// Engine
	"fbt_limit":                "recommend.limit",
	"fbt_backfill_label":       "recommend.backfill_label",
	"fbt_backfill_priority":    "recommend.backfill_priority",
	"fbt_glove_fallback_brand": "recommend.glove_fallback_brand",
	"fbt_empty_cart_message":   "recommend.empty_cart_message",

	// Storefront
	"storefront_base_url":             "storefront.base_url",
	"storefront_product_path_pattern": "storefront.product_path_pattern",

	// Server
	"port":                  "server.port",
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Response cache
	"response_cache_enabled":  "cache.enabled",
	"response_cache_capacity": "cache.capacity",
	"response_cache_ttl":      "cache.ttl",

	// Authoring tools
	"proofs_csv": "validation.proofs_path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - RECOMMENDATIONS_CSV_URL -> rules.url
//   - PORT -> server.port
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
