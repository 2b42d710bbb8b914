// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

// Movie is a catalog entry as exposed over the API.
type Movie struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
}

// MovieList is the payload of GET /api/v1/movies.
type MovieList struct {
	Movies []Movie `json:"movies"`
	Count  int     `json:"count"`
	Total  int     `json:"total"`
}

// Recommendation is one ranked movie.
//
// PosterAvailable is false when posters were requested but none could be
// resolved; clients render a "Poster Not Available" card in that case.
type Recommendation struct {
	Rank            int     `json:"rank"`
	MovieID         int64   `json:"movie_id"`
	Title           string  `json:"title"`
	Score           float64 `json:"score"`
	PosterURL       string  `json:"poster_url,omitempty"`
	PosterAvailable bool    `json:"poster_available"`
}

// RecommendationList is the payload of GET /api/v1/recommendations.
type RecommendationList struct {
	RequestID       string           `json:"request_id"`
	Query           Movie            `json:"query"`
	K               int              `json:"k"`
	Recommendations []Recommendation `json:"recommendations"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status string `json:"status"`
	Movies int    `json:"movies,omitempty"`
	Ready  bool   `json:"ready"`
}
