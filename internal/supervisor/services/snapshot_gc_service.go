// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// DefaultGCDiscardRatio is the badger value-log discard ratio.
const DefaultGCDiscardRatio = 0.5

// GarbageCollector compacts storage. *dataset.SnapshotStore satisfies it.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// SnapshotGCService runs value-log GC on the snapshot store every interval.
// GC errors are logged; the service keeps running.
type SnapshotGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewSnapshotGCService creates the GC service. A non-positive interval
// means 30 minutes.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSnapshotGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *SnapshotGCService {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &SnapshotGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "snapshot-gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *SnapshotGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *SnapshotGCService) runOnce() {
	start := time.Now()
	if err := s.store.RunGC(DefaultGCDiscardRatio); err != nil {
		s.logger.Warn().Err(err).Msg("snapshot GC failed")
		return
	}
	metrics.SnapshotGCRuns.Inc()
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("snapshot GC complete")
}

// String implements fmt.Stringer for supervisor logs.
func (s *SnapshotGCService) String() string {
	return "snapshot-gc"
}
