// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package metrics provides Prometheus metrics for the recommendation service.

All collectors are registered on the default registry through promauto and
exposed by the API server at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

API Metrics:
  - fbt_api_requests_total: requests by method, endpoint and status (counter)
  - fbt_api_request_duration_seconds: request latency (histogram)
  - fbt_api_active_requests: in-flight requests (gauge)

Recommendation Metrics:
  - fbt_lookups_total: product resolutions by match type (counter)
  - fbt_cart_size, fbt_recommendations_returned: per cart request (histograms)

Rule Table Metrics:
  - fbt_rules_reloads_total: loads by source and result (counter)
  - fbt_rules_last_success_timestamp, fbt_rules_version (gauges)
  - fbt_rules_size: explicit products/rows, category rules/rows, pool (gauge)

Response Cache and Circuit Breaker:
  - fbt_response_cache_{hits,misses,invalidations}_total (counters)
  - fbt_circuit_breaker_state, fbt_circuit_breaker_requests_total,
    fbt_circuit_breaker_state_transitions_total

Validation (fbtctl watch):
  - fbt_validation_runs_total, fbt_validation_issues

# Example Alert

	- alert: RulesReloadFailing
	  expr: increase(fbt_rules_reloads_total{result="error"}[15m]) > 3
	  for: 5m
*/
package metrics
