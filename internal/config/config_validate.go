// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateSupervisor()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP read and write timeouts must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be 'development' or 'production', got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateDataset() error {
	d := c.Dataset
	switch d.Format {
	case DatasetFormatJSON:
		if d.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_FORMAT=json")
		}
	case DatasetFormatDuckDB:
		if strings.TrimSpace(d.MoviesSource) == "" || strings.TrimSpace(d.SimilaritySource) == "" {
			return fmt.Errorf("DATASET_MOVIES_SOURCE and DATASET_SIMILARITY_SOURCE are required when DATASET_FORMAT=duckdb")
		}
		if d.Threads < 0 {
			return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", d.Threads)
		}
	default:
		return fmt.Errorf("DATASET_FORMAT must be 'json' or 'duckdb', got %q", d.Format)
	}

	if d.SnapshotEnabled && d.SnapshotPath == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required when SNAPSHOT_ENABLED=true")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultK < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be positive, got %d", r.DefaultK)
	}
	if r.MaxK < r.DefaultK {
		return fmt.Errorf("RECOMMEND_MAX_K (%d) must be >= RECOMMEND_DEFAULT_K (%d)", r.MaxK, r.DefaultK)
	}
	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when caching is enabled")
		}
		if r.CacheMaxEntries < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be positive when caching is enabled")
		}
	}
	if r.PosterConcurrency < 1 {
		return fmt.Errorf("RECOMMEND_POSTER_CONCURRENCY must be positive, got %d", r.PosterConcurrency)
	}
	return nil
}

func (c *Config) validateTMDB() error {
	t := c.TMDB
	if !t.Enabled {
		return nil
	}
	if t.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required when TMDB_ENABLED=true")
	}
	if err := validateHTTPURL(t.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(t.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if t.RateLimit <= 0 || t.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_LIMIT and TMDB_RATE_BURST must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateSupervisor() error {
	if c.Dataset.SnapshotEnabled && c.Supervisor.SnapshotGCInterval <= 0 {
		return fmt.Errorf("SNAPSHOT_GC_INTERVAL must be positive when snapshots are enabled")
	}
	if c.Supervisor.DatasetReloadInterval < 0 {
		return fmt.Errorf("DATASET_RELOAD_INTERVAL must not be negative")
	}
	if c.Recommend.CacheEnabled && c.Supervisor.CachePurgeInterval <= 0 {
		return fmt.Errorf("CACHE_PURGE_INTERVAL must be positive when the cache is enabled")
	}
	return nil
}

// validateHTTPURL checks for an http(s) URL with a host. Paths are allowed
// since TMDB endpoints are versioned by path.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
