// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Ranker answers "which movies are most similar to this title" over an
// immutable catalog and matrix.
type Ranker struct {
	movies []Movie
	matrix *Matrix

	// byTitle maps a folded title to the first catalog row carrying it.
	byTitle map[string]int
}

// NewRanker validates that the matrix matches the catalog and builds the
// title index. The movies slice is copied and each movie's Index is set to
// its position.
func NewRanker(movies []Movie, matrix *Matrix) (*Ranker, error) {
	if len(movies) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidConfiguration)
	}
	if matrix == nil {
		return nil, fmt.Errorf("%w: matrix is nil", ErrInvalidConfiguration)
	}
	if matrix.Dim() != len(movies) {
		return nil, fmt.Errorf("%w: matrix is %dx%d but catalog has %d movies",
			ErrInvalidConfiguration, matrix.Dim(), matrix.Dim(), len(movies))
	}

	catalog := make([]Movie, len(movies))
	byTitle := make(map[string]int, len(movies))
	for i, m := range movies {
		m.Index = i
		catalog[i] = m

		key := foldTitle(m.Title)
		if _, seen := byTitle[key]; !seen {
			byTitle[key] = i
		}
	}

	return &Ranker{
		movies:  catalog,
		matrix:  matrix,
		byTitle: byTitle,
	}, nil
}

// Rank returns up to topN movies most similar to the movie titled
// queryTitle. topN <= 0 means DefaultTopN; values above Size()-1 are
// clamped. Unknown titles yield ErrNotFound and a nil slice.
func (r *Ranker) Rank(queryTitle string, topN int) ([]Recommendation, error) {
	idx, ok := r.byTitle[foldTitle(queryTitle)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, queryTitle)
	}

	topN = r.ClampTopN(topN)
	row := r.matrix.Row(idx)

	// Columns start in ascending order, so the stable sort leaves equal
	// scores ordered by row index.
	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(row[b], row[a])
	})

	out := make([]Recommendation, 0, topN)
	for _, j := range order {
		if len(out) == topN {
			break
		}
		if j == idx {
			continue
		}
		m := r.movies[j]
		out = append(out, Recommendation{
			MovieID: m.ID,
			Title:   m.Title,
			Score:   row[j],
		})
	}

	return out, nil
}

// ClampTopN applies the default and the catalog-size cap to a requested
// result count.
func (r *Ranker) ClampTopN(topN int) int {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if limit := len(r.movies) - 1; topN > limit {
		topN = limit
	}
	return topN
}

// Lookup returns the first catalog movie whose title matches
// case-insensitively.
func (r *Ranker) Lookup(title string) (Movie, bool) {
	idx, ok := r.byTitle[foldTitle(title)]
	if !ok {
		return Movie{}, false
	}
	return r.movies[idx], true
}

// Search returns catalog movies whose title contains query
// case-insensitively, in catalog order. An empty query matches everything.
// limit <= 0 means no limit.
func (r *Ranker) Search(query string, limit int) []Movie {
	needle := foldTitle(query)
	var out []Movie
	for _, m := range r.movies {
		if needle != "" && !strings.Contains(foldTitle(m.Title), needle) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Movies returns a copy of the catalog.
func (r *Ranker) Movies() []Movie {
	return slices.Clone(r.movies)
}

// Size returns the number of catalog entries.
func (r *Ranker) Size() int {
	return len(r.movies)
}

func foldTitle(title string) string {
	return strings.ToLower(title)
}
