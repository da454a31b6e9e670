// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import (
	"fmt"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// MaxPerProduct is the hard cap on recommendations per product.
const MaxPerProduct = 3

// Config contains the tunables of the constraint engine.
type Config struct {
	// Limit is the number of recommendations per product, 1..MaxPerProduct.
	Limit int `json:"limit"`

	// BackfillLabel is the label given to pool backfills.
	BackfillLabel string `json:"backfill_label"`

	// BackfillPriority is the priority given to pool backfills.
	BackfillPriority rules.Priority `json:"backfill_priority"`

	// GloveFallbackBrand is the glove brand backfilled onto jackets and
	// pants when no same-brand glove is pooled. It bypasses the apparel
	// brand filter; empty disables it.
	GloveFallbackBrand string `json:"glove_fallback_brand"`

	// EmptyCartMessage is returned with an empty cart.
	EmptyCartMessage string `json:"empty_cart_message"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limit:              MaxPerProduct,
		BackfillLabel:      "Recommended item",
		BackfillPriority:   rules.PriorityTertiary,
		GloveFallbackBrand: "alpinestars",
		EmptyCartMessage:   "No products in cart",
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Limit < 1 || c.Limit > MaxPerProduct {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxPerProduct, c.Limit)
	}
	if c.BackfillLabel == "" {
		return fmt.Errorf("backfill_label must not be empty")
	}
	switch c.BackfillPriority {
	case rules.PriorityPrimary, rules.PrioritySecondary, rules.PriorityTertiary, rules.PriorityNone:
	default:
		return fmt.Errorf("unknown backfill_priority %q", c.BackfillPriority)
	}
	return nil
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
