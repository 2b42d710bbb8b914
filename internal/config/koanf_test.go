// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate moves the test into an empty directory and pins the env vars the
// loader reads, so a developer's shell cannot change the outcome.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, "")
	for env := range envMappings {
		t.Setenv(strings.ToUpper(env), "")
		os.Unsetenv(strings.ToUpper(env))
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Dataset.Format != DatasetFormatJSON {
		t.Errorf("Dataset.Format = %q, want json", cfg.Dataset.Format)
	}
	if cfg.Recommend.DefaultK != 12 {
		t.Errorf("Recommend.DefaultK = %d, want 12", cfg.Recommend.DefaultK)
	}
	if cfg.TMDB.Enabled {
		t.Error("TMDB should be disabled by default")
	}
	if cfg.TMDB.Timeout != 5*time.Second {
		t.Errorf("TMDB.Timeout = %v, want 5s", cfg.TMDB.Timeout)
	}
	if cfg.TMDB.ImageBaseURL != "https://image.tmdb.org/t/p/w500" {
		t.Errorf("TMDB.ImageBaseURL = %q", cfg.TMDB.ImageBaseURL)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("TMDB.Language = %q, want en-US", cfg.TMDB.Language)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"DATASET_PATH", "dataset.path"},
		{"DATASET_FORMAT", "dataset.format"},
		{"DUCKDB_MAX_MEMORY", "dataset.max_memory"},
		{"SNAPSHOT_PATH", "dataset.snapshot_path"},
		{"RECOMMEND_DEFAULT_K", "recommend.default_k"},
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"tmdb_api_key", "tmdb.api_key"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"SNAPSHOT_GC_INTERVAL", "supervisor.snapshot_gc_interval"},
		{"DATASET_RELOAD_INTERVAL", "supervisor.dataset_reload_interval"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := isolate(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Cleanup(func() { os.Remove(path) })

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		custom := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("{}"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("CONFIG_PATH pointing nowhere falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolate(t)

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATASET_FORMAT", "duckdb")
	t.Setenv("DATASET_MOVIES_SOURCE", "/data/movies.csv")
	t.Setenv("DATASET_SIMILARITY_SOURCE", "/data/similarity.parquet")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")
	t.Setenv("TMDB_ENABLED", "true")
	t.Setenv("TMDB_API_KEY", "secret")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Dataset.Format != DatasetFormatDuckDB || cfg.Dataset.SimilaritySource != "/data/similarity.parquet" {
		t.Errorf("Dataset = %+v", cfg.Dataset)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	if !cfg.TMDB.Enabled || cfg.TMDB.APIKey != "secret" {
		t.Errorf("TMDB = %+v", cfg.TMDB)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}

	// Defaults survive for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %q", cfg.TMDB.BaseURL)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolate(t)

	content := `
server:
  port: 8080
dataset:
  format: json
  path: /srv/reelmatch/movies.json
  snapshot_enabled: true
  snapshot_path: /srv/reelmatch/snapshot
recommend:
  default_k: 8
  max_k: 24
security:
  cors_origins:
    - https://movies.example
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Dataset.Path != "/srv/reelmatch/movies.json" || !cfg.Dataset.SnapshotEnabled {
		t.Errorf("Dataset = %+v", cfg.Dataset)
	}
	if cfg.Recommend.DefaultK != 8 || cfg.Recommend.MaxK != 24 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://movies.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("logging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env beats file)", cfg.Logging.Level)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "alt.yml")
	if err := os.WriteFile(path, []byte("recommend:\n  default_k: 3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Recommend.DefaultK != 3 {
		t.Errorf("DefaultK = %d, want 3", cfg.Recommend.DefaultK)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("LoadFile() with a missing file should fail")
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port out of range",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "unknown dataset format",
			env:     map[string]string{"DATASET_FORMAT": "pickle"},
			wantErr: "DATASET_FORMAT",
		},
		{
			name:    "tmdb enabled without key",
			env:     map[string]string{"TMDB_ENABLED": "true"},
			wantErr: "TMDB_API_KEY",
		},
		{
			name:    "max k below default k",
			env:     map[string]string{"RECOMMEND_DEFAULT_K": "20", "RECOMMEND_MAX_K": "10"},
			wantErr: "RECOMMEND_MAX_K",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
