// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Limits.DefaultK != 12 {
		t.Errorf("DefaultK = %d, want 12", cfg.Limits.DefaultK)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero default k", func(c *Config) { c.Limits.DefaultK = 0 }, true},
		{"max below default", func(c *Config) { c.Limits.MaxK = 5 }, true},
		{"cache zero ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"cache zero entries", func(c *Config) { c.Cache.MaxEntries = 0 }, true},
		{"cache disabled ignores limits", func(c *Config) {
			c.Cache.Enabled = false
			c.Cache.TTL = 0
			c.Cache.MaxEntries = 0
		}, false},
		{"posters zero concurrency", func(c *Config) { c.Posters.Concurrency = 0 }, true},
		{"posters disabled ignores concurrency", func(c *Config) {
			c.Posters.Enabled = false
			c.Posters.Concurrency = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Limits.MaxK = 7
	clone.Cache.Enabled = false

	if cfg.Limits.MaxK != 100 || !cfg.Cache.Enabled {
		t.Error("Clone() shares state with the original")
	}
}

func TestClampK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxK = 50

	tests := []struct {
		in, want int
	}{
		{-3, 12},
		{0, 12},
		{1, 1},
		{12, 12},
		{50, 50},
		{51, 50},
		{10000, 50},
	}
	for _, tt := range tests {
		if got := cfg.ClampK(tt.in); got != tt.want {
			t.Errorf("ClampK(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
