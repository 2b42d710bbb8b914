// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads Reelmatch configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of
// precedence (env wins).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Dataset    DatasetConfig    `koanf:"dataset"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	Security   SecurityConfig   `koanf:"security"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// Environment is development or production.
	Environment string `koanf:"environment"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Dataset formats.
const (
	DatasetFormatJSON   = "json"
	DatasetFormatDuckDB = "duckdb"
)

// DatasetConfig describes where the precomputed catalog and similarity
// matrix come from.
type DatasetConfig struct {
	// Format selects the loader: json or duckdb.
	Format string `koanf:"format"`

	// Path is the JSON bundle for the json format, or the DuckDB database
	// file for the duckdb format. An empty duckdb path opens an in-memory
	// database, which only makes sense with file-backed sources.
	Path string `koanf:"path"`

	// MoviesSource is a table name or a .csv/.parquet file holding
	// (movie_id, title[, row_idx]). duckdb only.
	MoviesSource string `koanf:"movies_source"`

	// SimilaritySource is a table name or a .csv/.parquet file holding
	// (row_idx, col_idx, score). duckdb only.
	SimilaritySource string `koanf:"similarity_source"`

	// MaxMemory caps DuckDB memory, e.g. "1GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB worker count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SnapshotEnabled caches the compiled dataset in a Badger store.
	SnapshotEnabled bool `koanf:"snapshot_enabled"`

	// SnapshotPath is the Badger directory.
	SnapshotPath string `koanf:"snapshot_path"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`

	// PostersEnabled lets requests ask for poster URLs.
	PostersEnabled bool `koanf:"posters_enabled"`

	// PosterConcurrency bounds parallel TMDB lookups per request.
	PosterConcurrency int `koanf:"poster_concurrency"`
}

// TMDBConfig configures the poster lookup client.
type TMDBConfig struct {
	Enabled      bool          `koanf:"enabled"`
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Language     string        `koanf:"language"`
	Timeout      time.Duration `koanf:"timeout"`

	// RateLimit is the sustained outgoing request rate per second.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// PlaceholderURL is returned when a poster cannot be resolved.
	// Empty means "no poster".
	PlaceholderURL string `koanf:"placeholder_url"`
}

// SecurityConfig holds CORS and inbound rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// SupervisorConfig holds suture tree settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`

	// SnapshotGCInterval is how often the snapshot value log is compacted.
	SnapshotGCInterval time.Duration `koanf:"snapshot_gc_interval"`

	// DatasetReloadInterval polls the dataset fingerprint and swaps in a
	// fresh ranker when it changes. Zero loads once at startup.
	DatasetReloadInterval time.Duration `koanf:"dataset_reload_interval"`

	// CachePurgeInterval is how often expired rankings are evicted.
	CachePurgeInterval time.Duration `koanf:"cache_purge_interval"`
}

// Load reads configuration from defaults, the first config file found and
// the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
