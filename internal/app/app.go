// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package app assembles the recommendation stack from configuration. The
// server and the CLI both build through it so they rank identically.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Components is the wired stack. Engine starts without a ranker; call
// LoadDataset or hand Source to a supervised loader.
type Components struct {
	Source dataset.Source
	Store  *dataset.SnapshotStore // nil when snapshots are disabled
	Poster *poster.Client
	Engine *recommend.Engine
}

// Build opens the snapshot store (when enabled) and wires source, poster
// client and engine. The caller must Close the result.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	c := &Components{}

	if cfg.Dataset.SnapshotEnabled {
		store, err := dataset.OpenSnapshotStore(cfg.Dataset.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		c.Store = store
	}

	src, err := dataset.NewSource(cfg.Dataset, c.Store)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("dataset source: %w", err)
	}
	c.Source = src

	c.Poster = poster.NewClient(PosterConfig(cfg), logger)

	engine, err := recommend.NewEngine(nil, c.Poster, EngineConfig(cfg), logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}
	c.Engine = engine

	return c, nil
}

// LoadDataset loads the source synchronously and installs the ranker.
func (c *Components) LoadDataset(ctx context.Context) error {
	ranker, err := dataset.LoadRanker(ctx, c.Source)
	if err != nil {
		return err
	}
	c.Engine.SetRanker(ranker)
	return nil
}

// Close releases the snapshot store.
func (c *Components) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// EngineConfig maps the recommend config section onto the engine config.
func EngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	ec.Limits.DefaultK = cfg.Recommend.DefaultK
	ec.Limits.MaxK = cfg.Recommend.MaxK
	ec.Cache.Enabled = cfg.Recommend.CacheEnabled
	ec.Cache.TTL = cfg.Recommend.CacheTTL
	ec.Cache.MaxEntries = cfg.Recommend.CacheMaxEntries
	ec.Posters.Enabled = cfg.Recommend.PostersEnabled
	ec.Posters.Concurrency = cfg.Recommend.PosterConcurrency
	return ec
}

// PosterConfig maps the TMDB section onto the poster client config. A
// disabled TMDB section yields a keyless client that never hits the
// network.
func PosterConfig(cfg *config.Config) poster.Config {
	pc := poster.Config{
		BaseURL:        cfg.TMDB.BaseURL,
		ImageBaseURL:   cfg.TMDB.ImageBaseURL,
		Language:       cfg.TMDB.Language,
		Timeout:        cfg.TMDB.Timeout,
		RateLimit:      cfg.TMDB.RateLimit,
		RateBurst:      cfg.TMDB.RateBurst,
		Concurrency:    cfg.Recommend.PosterConcurrency,
		PlaceholderURL: cfg.TMDB.PlaceholderURL,
	}
	if cfg.TMDB.Enabled {
		pc.APIKey = cfg.TMDB.APIKey
	}
	return pc
}
