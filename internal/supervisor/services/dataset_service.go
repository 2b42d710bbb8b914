// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// RankerSink receives freshly built rankers. *recommend.Engine satisfies it.
type RankerSink interface {
	SetRanker(r *similarity.Ranker)
}

// DatasetService loads the dataset into the engine and, when
// reloadInterval is positive, reloads whenever the source fingerprint
// changes.
//
// A failed initial load returns an error so the supervisor retries with
// backoff, except for a malformed dataset: that terminates the whole tree,
// since retrying cannot fix it. A failed reload keeps the previous ranker
// and is only logged.
type DatasetService struct {
	source         dataset.Source
	sink           RankerSink
	reloadInterval time.Duration
	logger         zerolog.Logger

	loadedFingerprint string
}

// NewDatasetService creates the loader service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewDatasetService(source dataset.Source, sink RankerSink, reloadInterval time.Duration, logger zerolog.Logger) *DatasetService {
	return &DatasetService{
		source:         source,
		sink:           sink,
		reloadInterval: reloadInterval,
		logger:         logger.With().Str("service", "dataset").Str("source", source.Name()).Logger(),
	}
}

// Serve implements suture.Service.
func (s *DatasetService) Serve(ctx context.Context) error {
	if s.loadedFingerprint == "" {
		if err := s.load(ctx); err != nil {
			if errors.Is(err, similarity.ErrInvalidConfiguration) {
				s.logger.Error().Err(err).Msg("dataset is malformed, stopping")
				return fmt.Errorf("%w: initial dataset load: %w", suture.ErrTerminateSupervisorTree, err)
			}
			return fmt.Errorf("initial dataset load: %w", err)
		}
	}

	if s.reloadInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.reloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.reloadIfChanged(ctx)
		}
	}
}

func (s *DatasetService) load(ctx context.Context) error {
	fp, err := s.source.Fingerprint()
	if err != nil {
		s.logger.Warn().Err(err).Msg("source fingerprint unavailable")
	}

	ranker, err := dataset.LoadRanker(ctx, s.source)
	if err != nil {
		return err
	}
	s.sink.SetRanker(ranker)

	if fp == "" {
		// Without a fingerprint reload cannot detect change; mark loaded.
		fp = "loaded"
	}
	s.loadedFingerprint = fp
	return nil
}

func (s *DatasetService) reloadIfChanged(ctx context.Context) {
	fp, err := s.source.Fingerprint()
	if err != nil {
		s.logger.Warn().Err(err).Msg("source fingerprint unavailable, skipping reload")
		return
	}
	if fp == s.loadedFingerprint {
		return
	}

	s.logger.Info().Msg("dataset changed, reloading")
	if err := s.load(ctx); err != nil {
		s.logger.Error().Err(err).Msg("dataset reload failed, keeping previous catalog")
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *DatasetService) String() string {
	return "dataset-loader"
}
