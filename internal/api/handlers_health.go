// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Health reports engine counters alongside readiness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	status := "healthy"
	if !h.engine.Ready() {
		status = "loading"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status": status,
			"ready":  h.engine.Ready(),
			"uptime": time.Since(h.startTime).Seconds(),
			"engine": stats,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness check requests (Kubernetes-style).
// Returns 200 OK while the process is alive, dataset or not.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status: "alive",
			Ready:  h.engine.Ready(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness check requests (Kubernetes-style).
// Returns 503 until a dataset has been loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Ready() {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data:   models.HealthStatus{Status: "not_ready"},
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    ErrCodeServiceUnavailable,
				Message: "Dataset not loaded",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status: "ready",
			Movies: h.engine.Size(),
			Ready:  true,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
