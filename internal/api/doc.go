// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package api provides the HTTP interface of the recommendation service.

Routing uses chi with go-chi/cors for the storefront widget, which calls
the API cross-origin, and go-chi/httprate for per-IP rate limiting.

# Endpoints

Storefront endpoints keep the plain JSON shapes the widget already reads:

	GET  /api/fbt?products=a,b      merged cart recommendations
	GET  /api/debug/product?id=a    how one product resolved
	GET  /api/catalog?ids=a,b       storefront name and URL per slug
	GET  /api/health                rule source state
	POST /api/reload                force a rule refresh and report counts

Operational endpoints:

	GET  /api/stats                 engine and response cache counters
	GET  /metrics                   Prometheus exposition

Errors outside the storefront shapes use the envelope

	{"success": false, "error": {"code": "...", "message": "..."}}

# Response Cache

Cart responses are cached in an LRU keyed by the rules snapshot version and
the cart. A new snapshot therefore never serves a stale answer; the cache is
also cleared when a rules.reloaded event arrives to release memory early.

# Request Flow

Each request reads the current rules snapshot once and runs the engine over
it. A reload that lands mid-request does not change the answer of that
request.
*/
package api
