// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbt_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fbt_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fbt_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbt_lookups_total",
			Help: "Product lookups by the rule kind that answered",
		},
		[]string{"match_type"}, // explicit, category, none
	)

	CartSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fbt_cart_size",
			Help:    "Number of products per cart request",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fbt_recommendations_returned",
			Help:    "Number of merged recommendations per cart request",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	// Rule Table Metrics
	RulesReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbt_rules_reloads_total",
			Help: "Rule table loads by source and result",
		},
		[]string{"source", "result"}, // source: local, remote, local-fallback, stale
	)

	RulesLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fbt_rules_last_success_timestamp",
			Help: "Unix timestamp of the last successful rule table load",
		},
	)

	RulesVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fbt_rules_version",
			Help: "Version of the currently published rule snapshot",
		},
	)

	RulesSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fbt_rules_size",
			Help: "Size of the published rule snapshot",
		},
		[]string{"kind"}, // explicit_products, explicit_rows, category_rules, category_rows, pool
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fbt_response_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fbt_response_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fbt_response_cache_invalidations_total",
			Help: "Total number of response cache flushes after a rules reload",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fbt_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbt_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbt_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Validation Metrics (watch mode)
	ValidationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbt_validation_runs_total",
			Help: "Validation runs by outcome",
		},
		[]string{"result"}, // passed, failed, missing
	)

	ValidationIssues = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fbt_validation_issues",
			Help: "Issues found by the last validation run",
		},
		[]string{"severity", "category"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fbt_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLookup counts one product resolution.
func RecordLookup(matchType string) {
	LookupsTotal.WithLabelValues(matchType).Inc()
}

// RecordCart records the size of a cart request and its merged result.
func RecordCart(cartSize, returned int) {
	CartSize.Observe(float64(cartSize))
	RecommendationsReturned.Observe(float64(returned))
}

// RecordRulesReload records one rule table load attempt.
func RecordRulesReload(source string, err error) {
	if err != nil {
		RulesReloadsTotal.WithLabelValues(source, "error").Inc()
		return
	}
	RulesReloadsTotal.WithLabelValues(source, "success").Inc()
	RulesLastSuccess.Set(float64(time.Now().Unix()))
}

// SetRulesSnapshot publishes the size of the current snapshot.
func SetRulesSnapshot(version uint64, sizes map[string]int) {
	RulesVersion.Set(float64(version))
	for kind, n := range sizes {
		RulesSize.WithLabelValues(kind).Set(float64(n))
	}
}

// RecordValidation records a validation run and its issue tallies keyed
// by severity then category.
func RecordValidation(result string, issues map[string]map[string]int) {
	ValidationRunsTotal.WithLabelValues(result).Inc()
	ValidationIssues.Reset()
	for severity, byCategory := range issues {
		for category, n := range byCategory {
			ValidationIssues.WithLabelValues(severity, category).Set(float64(n))
		}
	}
}
