// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package main is the entry point for the FBT recommendation server.

The server answers "frequently bought together" lookups for storefront
product pages and carts from a CSV rule table, refreshed from a local
file or a published spreadsheet URL.

# Application Architecture

	RootSupervisor ("fbt")
	├── RulesSupervisor ("rules-layer")
	│   └── Rules refresher (local CSV or remote CSV with circuit breaker)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Event bus (rules.reloaded)
	└── APISupervisor ("api-layer")
	    ├── HTTP Server (chi)
	    └── Stats reporter

Component initialization order:

 1. Configuration: koanf v2 (defaults, YAML file, environment)
 2. Logging: zerolog with JSON or console output
 3. Snapshot store and rules refresher
 4. Recommendation engine
 5. Event bus and its subscribers
 6. API handler and chi router
 7. Supervisor tree

# Configuration

Priority: environment variables > config file > defaults.

	RECOMMENDATIONS_CSV=product_recommendations.csv
	RECOMMENDATIONS_CSV_URL=                 # published CSV, optional
	RECOMMENDATIONS_CSV_REFRESH_SECONDS=30
	RECOMMENDATIONS_CSV_TIMEOUT_SECONDS=8
	STOREFRONT_BASE_URL=https://shop.example.com
	PORT=5000
	LOG_LEVEL=info
	LOG_FORMAT=json
	CORS_ORIGINS=*

# Shutdown

SIGINT or SIGTERM cancels the root context. The HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT and services that fail to stop are reported.
*/
package main
