// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Recommendations ranks the catalog against one title.
//
//	GET /api/v1/recommendations?title=Avatar&k=12&posters=true
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	k, apiErr := intParam(r, "k", 0)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	posters, apiErr := boolParam(r, "posters", false)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	req := RecommendationsRequest{
		Title:   r.URL.Query().Get("title"),
		K:       k,
		Posters: posters,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Title:          req.Title,
		K:              req.K,
		IncludePosters: req.Posters,
		RequestID:      middleware.GetRequestID(r),
	})
	switch {
	case err == nil:
	case errors.Is(err, similarity.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeMovieNotFound, MovieNotFoundMessage, nil)
		return
	case errors.Is(err, recommend.ErrNotReady):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Dataset not loaded", nil)
		return
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out", err)
		return
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to generate recommendations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   toRecommendationList(resp),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: resp.Metadata.LatencyMS,
			Cached:      resp.Metadata.CacheHit,
		},
	})
}

func toRecommendationList(resp *recommend.Response) models.RecommendationList {
	recs := make([]models.Recommendation, len(resp.Items))
	for i, item := range resp.Items {
		recs[i] = models.Recommendation{
			Rank:            i + 1,
			MovieID:         item.MovieID,
			Title:           item.Title,
			Score:           item.Score,
			PosterURL:       item.PosterURL,
			PosterAvailable: item.PosterURL != "",
		}
	}
	return models.RecommendationList{
		RequestID:       resp.Metadata.RequestID,
		Query:           models.Movie{MovieID: resp.Query.ID, Title: resp.Query.Title},
		K:               resp.Metadata.K,
		Recommendations: recs,
	}
}
