// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import "errors"

// DefaultTopN is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultTopN = 12

var (
	// ErrNotFound is returned by Rank when no catalog title matches the query.
	ErrNotFound = errors.New("movie not found")

	// ErrInvalidConfiguration is returned at load time when the matrix shape
	// does not match the catalog.
	ErrInvalidConfiguration = errors.New("invalid similarity configuration")
)

// Movie is a catalog entry.
type Movie struct {
	// ID is the external metadata key (TMDB movie id).
	ID int64 `json:"movie_id"`

	// Title is the display title. Titles are not unique.
	Title string `json:"title"`

	// Index is the row of this movie in the similarity matrix.
	// It always equals the movie's position in the catalog.
	Index int `json:"-"`
}

// Recommendation is a single ranked result.
type Recommendation struct {
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}
