// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Handler serves the API endpoints backed by one recommendation engine.
type Handler struct {
	engine    *recommend.Engine
	startTime time.Time
}

// NewHandler creates a handler for engine.
func NewHandler(engine *recommend.Engine) *Handler {
	return &Handler{
		engine:    engine,
		startTime: time.Now(),
	}
}
