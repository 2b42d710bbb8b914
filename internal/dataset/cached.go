// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"errors"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Cached serves a Source from a SnapshotStore when the source fingerprint
// is unchanged, and refreshes the snapshot otherwise. Snapshot failures
// never fail a load; they fall back to the wrapped source.
type Cached struct {
	source Source
	store  *SnapshotStore
}

// NewCached wraps source with store.
func NewCached(source Source, store *SnapshotStore) *Cached {
	return &Cached{source: source, store: store}
}

// Name implements Source.
func (c *Cached) Name() string { return c.source.Name() }

// Fingerprint implements Source.
func (c *Cached) Fingerprint() (string, error) { return c.source.Fingerprint() }

// Load implements Source.
func (c *Cached) Load(ctx context.Context) (*Dataset, error) {
	logger := logging.Ctx(ctx).With().Str("source", c.source.Name()).Logger()

	fp, err := c.source.Fingerprint()
	if err != nil {
		logger.Warn().Err(err).Msg("Source has no fingerprint, snapshot bypassed")
		return c.source.Load(ctx)
	}

	ds, err := c.store.Load(ctx, fp)
	switch {
	case err == nil:
		metrics.RecordSnapshotLookup("hit")
		logger.Info().Int("movies", len(ds.Movies)).Msg("Dataset served from snapshot")
		return ds, nil
	case errors.Is(err, ErrSnapshotMiss):
		metrics.RecordSnapshotLookup("miss")
	default:
		metrics.RecordSnapshotLookup("error")
		logger.Warn().Err(err).Msg("Snapshot unreadable, reloading source")
	}

	ds, err = c.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(ctx, fp, ds); err != nil {
		logger.Warn().Err(err).Msg("Failed to save snapshot")
	}
	return ds, nil
}
