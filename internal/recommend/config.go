// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Config holds engine settings.
type Config struct {
	Limits  LimitsConfig  `json:"limits"`
	Cache   CacheConfig   `json:"cache"`
	Posters PostersConfig `json:"posters"`
}

// LimitsConfig contains result count limits.
type LimitsConfig struct {
	// DefaultK is used when a request does not ask for a count.
	// Default: 12.
	DefaultK int `json:"default_k"`

	// MaxK is the largest count a request may ask for.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// CacheConfig contains ranking cache parameters.
type CacheConfig struct {
	// Enabled controls whether rankings are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached rankings.
	// Default: 1024.
	MaxEntries int `json:"max_entries"`
}

// PostersConfig controls poster enrichment.
type PostersConfig struct {
	// Enabled lets requests ask for posters. When false, IncludePosters
	// is ignored.
	Enabled bool `json:"enabled"`

	// Concurrency bounds parallel lookups per request. It is handed to the
	// poster client when the engine is wired up.
	Concurrency int `json:"concurrency"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: similarity.DefaultTopN,
			MaxK:     100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
		Posters: PostersConfig{
			Enabled:     true,
			Concurrency: 4,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	if c.Posters.Enabled && c.Posters.Concurrency < 1 {
		return fmt.Errorf("posters.concurrency must be positive, got %d", c.Posters.Concurrency)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only
	clone := *c
	return &clone
}

// ClampK applies DefaultK and MaxK to a requested count.
func (c *Config) ClampK(k int) int {
	if k <= 0 {
		return c.Limits.DefaultK
	}
	if k > c.Limits.MaxK {
		return c.Limits.MaxK
	}
	return k
}
