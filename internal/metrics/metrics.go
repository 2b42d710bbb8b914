// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics holds the Prometheus collectors for Reelmatch.
//
// Collectors register on the default registry through promauto and are
// exposed by the API router at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "not_found", "invalid", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommend_duration_seconds",
			Help:    "Time spent ranking one request, posters included",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_cache_hits_total",
			Help: "Total ranking cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_cache_misses_total",
			Help: "Total ranking cache misses",
		},
	)

	RecommendCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_recommend_cache_entries",
			Help: "Current number of cached rankings",
		},
	)

	// Dataset Metrics
	DatasetMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_dataset_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_dataset_load_duration_seconds",
			Help:    "Time taken to load the dataset",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"}, // "json", "duckdb", "snapshot"
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_dataset_load_errors_total",
			Help: "Total dataset load failures",
		},
		[]string{"source"},
	)

	SnapshotLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_snapshot_lookups_total",
			Help: "Snapshot lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	SnapshotGCRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_snapshot_gc_runs_total",
			Help: "Total snapshot value log GC passes",
		},
	)

	// Poster Metrics
	PosterRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_poster_requests_total",
			Help: "TMDB poster lookups by result",
		},
		[]string{"result"}, // "ok", "missing", "error"
	)

	PosterDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_poster_request_duration_seconds",
			Help:    "TMDB poster lookup latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

// Recommendation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Poster lookup results.
const (
	PosterOK      = "ok"
	PosterMissing = "missing"
	PosterError   = "error"
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one engine call.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordCacheLookup counts a ranking cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordDatasetLoad records a dataset load attempt. movies is only
// applied on success.
func RecordDatasetLoad(source string, movies int, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(source).Inc()
		return
	}
	DatasetMovies.Set(float64(movies))
}

// RecordSnapshotLookup counts a snapshot hit, miss or error.
func RecordSnapshotLookup(result string) {
	SnapshotLookups.WithLabelValues(result).Inc()
}

// RecordPosterRequest records one TMDB lookup.
func RecordPosterRequest(result string, duration time.Duration) {
	PosterRequests.WithLabelValues(result).Inc()
	PosterDuration.Observe(duration.Seconds())
}
