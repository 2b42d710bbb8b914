// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// sampleDataset is three movies where B and C tie against A.
func sampleDataset() *Dataset {
	return &Dataset{
		Movies: []similarity.Movie{
			{ID: 1, Title: "A", Index: 0},
			{ID: 2, Title: "B", Index: 1},
			{ID: 3, Title: "C", Index: 2},
		},
		Scores: [][]float64{
			{1.0, 0.5, 0.5},
			{0.5, 1.0, 0.2},
			{0.5, 0.2, 1.0},
		},
	}
}

func writeBundle(t *testing.T, dir string, ds *Dataset) string {
	t.Helper()
	data, err := EncodeBundle(ds)
	if err != nil {
		t.Fatalf("EncodeBundle: %v", err)
	}
	path := filepath.Join(dir, "movies.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write bundle: %v", err)
	}
	return path
}

func TestDatasetValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Dataset)
		wantErr bool
	}{
		{"valid", func(d *Dataset) {}, false},
		{"empty catalog", func(d *Dataset) { d.Movies = nil; d.Scores = nil }, true},
		{"missing row", func(d *Dataset) { d.Scores = d.Scores[:2] }, true},
		{"extra row", func(d *Dataset) { d.Scores = append(d.Scores, []float64{0, 0, 0}) }, true},
		{"short row", func(d *Dataset) { d.Scores[1] = d.Scores[1][:2] }, true},
		{"NaN score", func(d *Dataset) { d.Scores[0][2] = math.NaN() }, true},
		{"infinite score", func(d *Dataset) { d.Scores[2][1] = math.Inf(-1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := sampleDataset()
			tt.mutate(ds)
			err := ds.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, similarity.ErrInvalidConfiguration) {
				t.Errorf("error %v does not wrap ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestDatasetBuild(t *testing.T) {
	ranker, err := sampleDataset().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	recs, err := ranker.Rank("a", 0)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(recs) != 2 || recs[0].Title != "B" || recs[1].Title != "C" {
		t.Errorf("Rank(a) = %+v, want [B C]", recs)
	}
}

func TestDatasetBuildDense(t *testing.T) {
	movies := sampleDataset().Movies
	flat := []float64{
		1.0, 0.1, 0.9,
		0.1, 1.0, 0.4,
		0.9, 0.4, 1.0,
	}
	ds := newDenseDataset(movies, flat)
	if len(ds.Scores) != 3 || ds.Scores[2][1] != 0.4 {
		t.Fatalf("Scores = %v", ds.Scores)
	}
	if cap(ds.Scores[0]) != 3 {
		t.Errorf("row cap = %d, appends could clobber the next row", cap(ds.Scores[0]))
	}

	ranker, err := ds.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	recs, err := ranker.Rank("A", 0)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(recs) != 2 || recs[0].Title != "C" || recs[1].Title != "B" {
		t.Errorf("Rank(A) = %+v, want [C B]", recs)
	}

	flat[3*0+1] = math.NaN()
	if _, err := ds.Build(); !errors.Is(err, similarity.ErrInvalidConfiguration) {
		t.Errorf("Build() with a NaN cell = %v, want ErrInvalidConfiguration", err)
	}
}

func TestJSONSource(t *testing.T) {
	dir := t.TempDir()
	path := writeBundle(t, dir, sampleDataset())

	src := NewJSONSource(path)
	if src.Name() != "json" {
		t.Errorf("Name() = %q", src.Name())
	}

	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Movies) != 3 || ds.Movies[2].ID != 3 || ds.Movies[2].Index != 2 {
		t.Errorf("movies = %+v", ds.Movies)
	}
	if ds.Scores[1][2] != 0.2 {
		t.Errorf("Scores[1][2] = %v, want 0.2", ds.Scores[1][2])
	}
}

func TestJSONSourceErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		wantInvalid bool
	}{
		{"malformed", `{"movies": [`, true},
		{"shape mismatch", `{"movies":[{"movie_id":1,"title":"A"},{"movie_id":2,"title":"B"}],"similarity":[[1,0]]}`, true},
		{"ragged", `{"movies":[{"movie_id":1,"title":"A"},{"movie_id":2,"title":"B"}],"similarity":[[1,0],[0]]}`, true},
		{"empty", `{"movies":[],"similarity":[]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := NewJSONSource(path).Load(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantInvalid && !errors.Is(err, similarity.ErrInvalidConfiguration) {
				t.Errorf("error %v does not wrap ErrInvalidConfiguration", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewJSONSource(filepath.Join(dir, "nope.json")).Load(context.Background())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewJSONSource(filepath.Join(dir, "nope.json")).Load(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestJSONSourceFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := writeBundle(t, dir, sampleDataset())
	src := NewJSONSource(path)

	first, err := src.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	again, _ := src.Fingerprint()
	if first != again {
		t.Error("fingerprint is not stable")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	changed, _ := src.Fingerprint()
	if changed == first {
		t.Error("fingerprint did not change after mtime change")
	}

	if _, err := NewJSONSource(filepath.Join(dir, "missing.json")).Fingerprint(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRanker(t *testing.T) {
	dir := t.TempDir()
	src := NewJSONSource(writeBundle(t, dir, sampleDataset()))

	ranker, err := LoadRanker(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadRanker: %v", err)
	}
	if ranker.Size() != 3 {
		t.Errorf("Size() = %d, want 3", ranker.Size())
	}

	_, err = LoadRanker(context.Background(), NewJSONSource(filepath.Join(dir, "missing.json")))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewSource(t *testing.T) {
	store, err := OpenInMemorySnapshotStore()
	if err != nil {
		t.Fatalf("OpenInMemorySnapshotStore: %v", err)
	}
	defer store.Close()

	tests := []struct {
		name     string
		cfg      config.DatasetConfig
		store    *SnapshotStore
		wantType string
		wantErr  bool
	}{
		{"json", config.DatasetConfig{Format: config.DatasetFormatJSON, Path: "x.json"}, nil, "*dataset.JSONSource", false},
		{"duckdb", config.DatasetConfig{Format: config.DatasetFormatDuckDB, MoviesSource: "m", SimilaritySource: "s"}, nil, "*dataset.DuckDBSource", false},
		{"cached", config.DatasetConfig{Format: config.DatasetFormatJSON, Path: "x.json"}, store, "*dataset.Cached", false},
		{"unknown", config.DatasetConfig{Format: "pickle"}, nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.cfg, tt.store)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := typeName(src); got != tt.wantType {
				t.Errorf("type = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *JSONSource:
		return "*dataset.JSONSource"
	case *DuckDBSource:
		return "*dataset.DuckDBSource"
	case *Cached:
		return "*dataset.Cached"
	default:
		return "unknown"
	}
}
