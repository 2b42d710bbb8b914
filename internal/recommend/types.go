// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"time"

	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Request asks for movies similar to Title.
type Request struct {
	// Title is matched case-insensitively against the catalog.
	Title string `json:"title"`

	// K is the number of results wanted. <= 0 means Limits.DefaultK and
	// values above Limits.MaxK are clamped.
	K int `json:"k"`

	// IncludePosters asks for poster URLs on each item.
	IncludePosters bool `json:"include_posters"`

	// RequestID is copied into the response metadata. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Item is one recommended movie.
type Item struct {
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`

	// PosterURL is empty when posters were not requested or none exists.
	PosterURL string `json:"poster_url,omitempty"`
}

// Response is the engine output.
type Response struct {
	// Query is the catalog movie the title resolved to.
	Query similarity.Movie `json:"query"`

	Items    []Item           `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`

	// K is the effective result count after defaults and clamping.
	K int `json:"k"`

	CacheHit    bool      `json:"cache_hit"`
	Posters     bool      `json:"posters"`
	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Stats reports engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	Errors      int64 `json:"errors"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	CacheSize   int   `json:"cache_size"`
	Movies      int   `json:"movies"`
}
