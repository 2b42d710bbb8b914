// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/similarity"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := OpenInMemorySnapshotStore()
	if err != nil {
		t.Fatalf("OpenInMemorySnapshotStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ds := sampleDataset()
	ds.Scores[0][1] = math.SmallestNonzeroFloat64

	if err := store.Save(ctx, "fp-1", ds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got.Movies, ds.Movies) {
		t.Errorf("movies = %+v, want %+v", got.Movies, ds.Movies)
	}
	if got.Scores[0][1] != math.SmallestNonzeroFloat64 {
		t.Errorf("Scores[0][1] = %v, want the exact stored bits", got.Scores[0][1])
	}

	r, err := got.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if r.Size() != len(ds.Movies) {
		t.Errorf("ranker size = %d, want %d", r.Size(), len(ds.Movies))
	}
}

func TestSnapshotStoreRejectsNonFiniteScores(t *testing.T) {
	store := newTestStore(t)
	ds := sampleDataset()
	ds.Scores[1][0] = math.NaN()

	if err := store.Save(context.Background(), "fp-nan", ds); !errors.Is(err, similarity.ErrInvalidConfiguration) {
		t.Errorf("Save() error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := store.Fingerprint(); !errors.Is(err, ErrSnapshotMiss) {
		t.Errorf("Fingerprint() error = %v, want ErrSnapshotMiss after a rejected save", err)
	}
	if got.Scores[2][0] != 0.5 || got.Scores[1][2] != 0.2 {
		t.Errorf("scores = %v", got.Scores)
	}
}

func TestSnapshotStoreMiss(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		if _, err := store.Load(ctx, "fp"); !errors.Is(err, ErrSnapshotMiss) {
			t.Errorf("Load() error = %v, want ErrSnapshotMiss", err)
		}
		if _, err := store.Fingerprint(); !errors.Is(err, ErrSnapshotMiss) {
			t.Errorf("Fingerprint() error = %v, want ErrSnapshotMiss", err)
		}
	})

	t.Run("stale fingerprint", func(t *testing.T) {
		if err := store.Save(ctx, "old", sampleDataset()); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if _, err := store.Load(ctx, "new"); !errors.Is(err, ErrSnapshotMiss) {
			t.Errorf("Load() error = %v, want ErrSnapshotMiss", err)
		}
	})
}

func TestSnapshotStoreOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "fp-1", sampleDataset()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	smaller := &Dataset{
		Movies: sampleDataset().Movies[:2],
		Scores: [][]float64{{1, 0.9}, {0.9, 1}},
	}
	if err := store.Save(ctx, "fp-2", smaller); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "fp-2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Movies) != 2 || got.Scores[0][1] != 0.9 {
		t.Errorf("dataset = %+v", got)
	}
	if fp, _ := store.Fingerprint(); fp != "fp-2" {
		t.Errorf("Fingerprint() = %q, want fp-2", fp)
	}
}

func TestSnapshotStoreRejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	ds := sampleDataset()
	ds.Scores = ds.Scores[:1]
	if err := store.Save(context.Background(), "fp", ds); err == nil {
		t.Error("Save() should reject a malformed dataset")
	}
}

func TestSnapshotStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenSnapshotStore(dir)
	if err != nil {
		t.Fatalf("OpenSnapshotStore: %v", err)
	}
	if err := store.Save(ctx, "disk", sampleDataset()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.RunGC(0.5); err != nil {
		t.Errorf("RunGC: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSnapshotStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx, "disk")
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(got.Movies) != 3 {
		t.Errorf("got %d movies, want 3", len(got.Movies))
	}
}

func TestSnapshotStoreInMemoryGC(t *testing.T) {
	if err := newTestStore(t).RunGC(0.5); err != nil {
		t.Errorf("RunGC() on in-memory store = %v, want nil", err)
	}
}
