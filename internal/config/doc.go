// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package config provides centralized configuration management for the
recommendation service and its authoring tools.

# Configuration Sources

Configuration is layered with koanf, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/fbt/config.yaml or /etc/fbt/config.yml
 3. Environment variables, through an explicit mapping table

# Environment Variables

Rule source:
  - RECOMMENDATIONS_CSV: local rule table (default: product_recommendations.csv)
  - RECOMMENDATIONS_CSV_URL: remote CSV export; enables remote mode
  - RECOMMENDATIONS_CSV_REFRESH_SECONDS: remote freshness window (default: 30)
  - RECOMMENDATIONS_CSV_TIMEOUT_SECONDS: remote fetch timeout (default: 8)
  - RULES_RELOAD_INTERVAL, RULES_RELOAD_BURST: throttle for POST /api/reload

Engine:
  - FBT_LIMIT: recommendations per product, 1-3 (default: 3)
  - FBT_BACKFILL_LABEL, FBT_BACKFILL_PRIORITY: applied to pool backfills
  - FBT_GLOVE_FALLBACK_BRAND: glove brand for apparel backfill (default: alpinestars)

Storefront:
  - STOREFRONT_BASE_URL: prefix for product URLs (trailing slash removed)
  - STOREFRONT_PRODUCT_PATH_PATTERN: default /products/{slug}/

Server and security:
  - PORT or HTTP_PORT (default: 5000), HTTP_HOST (default: 0.0.0.0)
  - CORS_ORIGINS: comma-separated list (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Other:
  - RESPONSE_CACHE_ENABLED, RESPONSE_CACHE_CAPACITY, RESPONSE_CACHE_TTL
  - PROOFS_CSV: compatibility proofs for fbtctl
  - LOG_LEVEL, LOG_FORMAT (json|console), LOG_CALLER

# Validation

Load validates struct tags with go-playground/validator and then applies
cross-field checks (URL schemes, rate limit bounds, log level).
*/
package config
