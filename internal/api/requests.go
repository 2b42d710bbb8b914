// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

// Query limits
const (
	DefaultMoviesLimit = 50
	MaxMoviesLimit     = 1000
)

// MoviesRequest holds GET /api/v1/movies parameters.
type MoviesRequest struct {
	Query string `query:"q" validate:"max=500"`
	Limit int    `query:"limit" validate:"min=1,max=1000"`
}

// RecommendationsRequest holds GET /api/v1/recommendations parameters.
type RecommendationsRequest struct {
	Title   string `query:"title" validate:"required,movietitle"`
	K       int    `query:"k" validate:"min=0"`
	Posters bool   `query:"posters"`
}
