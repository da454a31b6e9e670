// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package middleware provides HTTP middleware components for the API server.

All middleware uses the chi signature func(http.Handler) http.Handler so it
can be installed with r.Use().

Key Components:

  - RequestID: UUID-based request tracking, echoed in X-Request-ID
  - PrometheusMetrics: request count, latency and in-flight gauge
  - AccessLog: one structured zerolog line per request

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.PrometheusMetrics)

Metric Labels:

PrometheusMetrics labels requests with the chi route pattern
(for example /api/fbt) instead of the raw path, so query strings and
unknown paths never create new series. Requests that match no route are
recorded under "unmatched".

Thread Safety:

All middleware is safe for concurrent use. Request state travels in the
request context only.

See Also:

  - internal/api: router and handlers wrapped by this middleware
  - internal/metrics: Prometheus metric definitions
  - internal/logging: request and correlation ID context helpers
*/
package middleware
