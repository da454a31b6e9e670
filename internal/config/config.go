// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package config

import (
	"time"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/logging"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/source"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validate"
)

// Config holds all application configuration.
type Config struct {
	Rules      RulesConfig      `koanf:"rules"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Storefront StorefrontConfig `koanf:"storefront"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Cache      CacheConfig      `koanf:"cache"`
	Validation ValidationConfig `koanf:"validation"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// RulesConfig locates the rule table.
type RulesConfig struct {
	// Path of the local CSV (RECOMMENDATIONS_CSV).
	Path string `koanf:"path" validate:"required"`
	// URL of a remote CSV export (RECOMMENDATIONS_CSV_URL). Empty means
	// local-only mode.
	URL            string  `koanf:"url" validate:"omitempty,http_url"`
	RefreshSeconds int     `koanf:"refresh_seconds" validate:"min=1,max=86400"`
	TimeoutSeconds float64 `koanf:"timeout_seconds" validate:"gt=0,lte=300"`
	// ReloadInterval and ReloadBurst throttle POST /api/reload.
	ReloadInterval time.Duration `koanf:"reload_interval" validate:"gt=0"`
	ReloadBurst    int           `koanf:"reload_burst" validate:"min=1,max=100"`
}

// RecommendConfig tunes the constraint engine.
type RecommendConfig struct {
	Limit              int    `koanf:"limit" validate:"min=1,max=3"`
	BackfillLabel      string `koanf:"backfill_label" validate:"required"`
	BackfillPriority   string `koanf:"backfill_priority" validate:"omitempty,oneof=Primary Secondary Tertiary"`
	GloveFallbackBrand string `koanf:"glove_fallback_brand"`
	EmptyCartMessage   string `koanf:"empty_cart_message" validate:"required"`
}

// StorefrontConfig builds product page URLs for the catalog endpoint.
type StorefrontConfig struct {
	// BaseURL is prefixed to product paths when set (STOREFRONT_BASE_URL).
	BaseURL string `koanf:"base_url" validate:"omitempty,http_url"`
	// ProductPathPattern has {slug} replaced by the escaped product id.
	ProductPathPattern string `koanf:"product_path_pattern" validate:"required"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// SecurityConfig holds cross-origin and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CacheConfig sizes the API response cache.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Capacity int           `koanf:"capacity" validate:"min=1"`
	TTL      time.Duration `koanf:"ttl" validate:"gt=0"`
}

// ValidationConfig holds defaults for the authoring tools.
type ValidationConfig struct {
	// ProofsPath is the compatibility proofs CSV (PROOFS_CSV).
	ProofsPath string                `koanf:"proofs_path"`
	Weights    validate.ScoreWeights `koanf:"weights"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in that order of precedence.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// EngineConfig converts the recommend section for recommend.NewEngine.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Limit:              c.Recommend.Limit,
		BackfillLabel:      c.Recommend.BackfillLabel,
		BackfillPriority:   rules.ParsePriority(c.Recommend.BackfillPriority),
		GloveFallbackBrand: c.Recommend.GloveFallbackBrand,
		EmptyCartMessage:   c.Recommend.EmptyCartMessage,
	}
}

// SourceConfig converts the rules section for source.NewRefresher.
func (c *Config) SourceConfig() source.Config {
	return source.Config{
		Path:           c.Rules.Path,
		URL:            c.Rules.URL,
		Refresh:        time.Duration(c.Rules.RefreshSeconds) * time.Second,
		Timeout:        time.Duration(c.Rules.TimeoutSeconds * float64(time.Second)),
		ReloadInterval: c.Rules.ReloadInterval,
		ReloadBurst:    c.Rules.ReloadBurst,
		Breaker:        source.DefaultBreakerSettings(),
	}
}

// LogConfig converts the logging section for logging.Init.
func (c *Config) LogConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}
