// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package dataset loads the movie catalog and its precomputed similarity
// matrix from storage and compiles them into a similarity.Ranker.
//
// Three sources are available:
//
//   - JSONSource reads a single bundle file.
//   - DuckDBSource reads a movies relation and a long-form similarity
//     relation from DuckDB tables or csv/parquet files.
//   - Cached wraps either one with a Badger snapshot keyed by the source
//     fingerprint, so restarts skip re-parsing large matrices.
package dataset

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Dataset is a catalog plus its square similarity matrix. Scores[i] is the
// row for Movies[i].
type Dataset struct {
	Movies []similarity.Movie
	Scores [][]float64

	// flat is the row-major array behind Scores when a loader decoded the
	// matrix in one piece. Build hands it to the ranker without copying.
	flat []float64
}

// newDenseDataset builds a Dataset whose rows are views into flat, which
// must hold len(movies)^2 scores.
func newDenseDataset(movies []similarity.Movie, flat []float64) *Dataset {
	n := len(movies)
	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = flat[i*n : (i+1)*n : (i+1)*n]
	}
	return &Dataset{Movies: movies, Scores: scores, flat: flat}
}

// Source loads a Dataset.
type Source interface {
	// Name identifies the source kind in logs and metrics.
	Name() string

	// Load reads the full dataset.
	Load(ctx context.Context) (*Dataset, error)

	// Fingerprint changes whenever the underlying data may have changed.
	Fingerprint() (string, error)
}

// Validate checks that the matrix is square, matches the catalog and holds
// only finite scores.
func (d *Dataset) Validate() error {
	if len(d.Movies) == 0 {
		return fmt.Errorf("%w: catalog is empty", similarity.ErrInvalidConfiguration)
	}
	if len(d.Scores) != len(d.Movies) {
		return fmt.Errorf("%w: %d similarity rows for %d movies",
			similarity.ErrInvalidConfiguration, len(d.Scores), len(d.Movies))
	}
	for i, row := range d.Scores {
		if len(row) != len(d.Movies) {
			return fmt.Errorf("%w: similarity row %d has %d columns, want %d",
				similarity.ErrInvalidConfiguration, i, len(row), len(d.Movies))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: similarity cell (%d, %d) is %v",
					similarity.ErrInvalidConfiguration, i, j, v)
			}
		}
	}
	return nil
}

// Build validates the dataset and compiles it into a Ranker. A dataset
// from newDenseDataset shares its score array with the ranker.
func (d *Dataset) Build() (*similarity.Ranker, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var (
		matrix *similarity.Matrix
		err    error
	)
	if d.flat != nil {
		matrix, err = similarity.NewMatrixFromFlat(len(d.Movies), d.flat)
	} else {
		matrix, err = similarity.NewMatrix(d.Scores)
	}
	if err != nil {
		return nil, err
	}
	return similarity.NewRanker(d.Movies, matrix)
}

// LoadRanker loads src and compiles it, recording load metrics.
func LoadRanker(ctx context.Context, src Source) (*similarity.Ranker, error) {
	start := time.Now()

	ds, err := src.Load(ctx)
	var ranker *similarity.Ranker
	if err == nil {
		ranker, err = ds.Build()
	}

	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordDatasetLoad(src.Name(), 0, elapsed, err)
		return nil, fmt.Errorf("load %s dataset: %w", src.Name(), err)
	}

	metrics.RecordDatasetLoad(src.Name(), ranker.Size(), elapsed, nil)
	logging.Ctx(ctx).Info().
		Str("source", src.Name()).
		Int("movies", ranker.Size()).
		Dur("elapsed", elapsed).
		Msg("Dataset loaded")
	return ranker, nil
}

// NewSource builds the configured source. The caller owns closing store
// when snapshots are enabled.
func NewSource(cfg config.DatasetConfig, store *SnapshotStore) (Source, error) {
	var src Source
	switch cfg.Format {
	case config.DatasetFormatJSON:
		src = NewJSONSource(cfg.Path)
	case config.DatasetFormatDuckDB:
		src = NewDuckDBSource(DuckDBConfig{
			Path:             cfg.Path,
			MoviesSource:     cfg.MoviesSource,
			SimilaritySource: cfg.SimilaritySource,
			MaxMemory:        cfg.MaxMemory,
			Threads:          cfg.Threads,
		})
	default:
		return nil, fmt.Errorf("unknown dataset format %q", cfg.Format)
	}

	if store != nil {
		return NewCached(src, store), nil
	}
	return src, nil
}
