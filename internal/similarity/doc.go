// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package similarity ranks catalog movies against a precomputed pairwise
// similarity matrix.
//
// # Data Model
//
// A catalog is an ordered list of movies. The position of a movie in the
// catalog is its row index into the matrix, so the movie at position i
// owns row i and column i. The matrix must be square with one row per
// catalog entry; NewRanker rejects anything else with
// ErrInvalidConfiguration.
//
// # Ranking
//
// Rank resolves a title (case-insensitive, first catalog match wins when
// titles repeat), reads that movie's row, and orders every other movie by
// score descending. Equal scores keep ascending row order. The query movie
// is removed by index, never by position, so a row whose diagonal is not
// the maximum still excludes exactly the query itself.
//
//	ranker, err := similarity.NewRanker(movies, matrix)
//	if err != nil {
//	    return err // errors.Is(err, similarity.ErrInvalidConfiguration)
//	}
//
//	recs, err := ranker.Rank("The Matrix", similarity.DefaultTopN)
//	if errors.Is(err, similarity.ErrNotFound) {
//	    // surface as a warning
//	}
//
// # Thread Safety
//
// A Ranker is immutable after construction. Rank and the read accessors
// allocate fresh results per call and may be used from any number of
// goroutines without coordination.
package similarity
