// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"fmt"
	"math"
)

// Matrix is a dense square matrix of similarity scores stored row-major.
type Matrix struct {
	n      int
	scores []float64
}

// NewMatrix copies rows into a Matrix. Every row must have exactly
// len(rows) columns and every score must be finite.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: matrix has no rows", ErrInvalidConfiguration)
	}

	scores := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidConfiguration, i, len(row), n)
		}
		scores = append(scores, row...)
	}

	if err := checkFinite(n, scores); err != nil {
		return nil, err
	}
	return &Matrix{n: n, scores: scores}, nil
}

// NewMatrixFromFlat wraps a row-major score slice of length n*n whose
// scores are all finite. The slice is retained, not copied.
func NewMatrixFromFlat(n int, scores []float64) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: matrix dimension must be positive, got %d", ErrInvalidConfiguration, n)
	}
	if len(scores) != n*n {
		return nil, fmt.Errorf("%w: %d scores for a %dx%d matrix", ErrInvalidConfiguration, len(scores), n, n)
	}
	if err := checkFinite(n, scores); err != nil {
		return nil, err
	}
	return &Matrix{n: n, scores: scores}, nil
}

// checkFinite rejects NaN and infinite scores, which have no rank order
// and cannot be encoded as JSON numbers.
func checkFinite(n int, scores []float64) error {
	for k, v := range scores {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: score (%d, %d) is %v", ErrInvalidConfiguration, k/n, k%n, v)
		}
	}
	return nil
}

// Dim returns the number of rows (and columns).
func (m *Matrix) Dim() int {
	return m.n
}

// Row returns row i. The returned slice aliases the matrix and must not be
// modified.
func (m *Matrix) Row(i int) []float64 {
	start := i * m.n
	return m.scores[start : start+m.n : start+m.n]
}

// At returns the score at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.scores[i*m.n+j]
}
