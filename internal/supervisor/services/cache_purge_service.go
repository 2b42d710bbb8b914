// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Purger drops expired cache entries. *recommend.Engine satisfies it.
type Purger interface {
	PurgeExpired() int
}

// CachePurgeService evicts expired rankings on a fixed interval so idle
// entries do not pin memory until the LRU pushes them out.
type CachePurgeService struct {
	purger   Purger
	interval time.Duration
	logger   zerolog.Logger
}

// NewCachePurgeService creates the purge service. A non-positive interval
// means one minute.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCachePurgeService(purger Purger, interval time.Duration, logger zerolog.Logger) *CachePurgeService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CachePurgeService{
		purger:   purger,
		interval: interval,
		logger:   logger.With().Str("service", "cache-purge").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CachePurgeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.purger.PurgeExpired(); n > 0 {
				s.logger.Debug().Int("evicted", n).Msg("expired rankings purged")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *CachePurgeService) String() string {
	return "cache-purge"
}
