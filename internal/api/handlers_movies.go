// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Movies lists catalog titles in matrix order, filtered by a
// case-insensitive substring when q is set.
//
//	GET /api/v1/movies?q=dark&limit=20
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, apiErr := intParam(r, "limit", DefaultMoviesLimit)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	req := MoviesRequest{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	found, err := h.engine.Search(req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, recommend.ErrNotReady) {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Dataset not loaded", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to list movies", err)
		return
	}

	movies := make([]models.Movie, len(found))
	for i, m := range found {
		movies[i] = models.Movie{MovieID: m.ID, Title: m.Title}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.MovieList{
			Movies: movies,
			Count:  len(movies),
			Total:  h.engine.Size(),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
