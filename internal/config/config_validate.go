// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/logging"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validation"
)

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// Validate checks struct tags first, then the cross-field rules tags
// cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	validators := []func() error{
		c.validateRulesURL,
		c.validateStorefront,
		c.validateRateLimits,
		c.validateLogging,
		c.validateWeights,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return c.EngineConfig().Validate()
}

// validateHTTPURL requires an http(s) scheme and a host.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}

func (c *Config) validateRulesURL() error {
	if c.Rules.URL == "" {
		return nil
	}
	return validateHTTPURL(c.Rules.URL, "RECOMMENDATIONS_CSV_URL")
}

func (c *Config) validateStorefront() error {
	if c.Storefront.BaseURL == "" {
		return nil
	}
	if err := validateHTTPURL(c.Storefront.BaseURL, "STOREFRONT_BASE_URL"); err != nil {
		return err
	}
	if u, _ := url.Parse(c.Storefront.BaseURL); u.RawQuery != "" {
		return fmt.Errorf("STOREFRONT_BASE_URL should not contain query parameters, remove: ?%s", u.RawQuery)
	}
	return nil
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateWeights() error {
	w := c.Validation.Weights
	for _, v := range []int{w.TypeMatch, w.HelmetAccessory, w.BrandOverlap, w.ModelOverlap, w.FitSensitive, w.ForMarker} {
		if v < 0 {
			return errors.New("validation.weights must not be negative")
		}
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
