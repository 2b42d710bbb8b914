// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Key layout for the snapshot store.
const (
	keyFingerprint = "meta:fingerprint"
	keyMovies      = "meta:movies"
	rowKeyPrefix   = "row:"
)

// ErrSnapshotMiss is returned when no snapshot exists for a fingerprint.
var ErrSnapshotMiss = errors.New("snapshot miss")

// SnapshotStore persists a compiled Dataset in Badger. Movies are stored
// as one JSON value; each matrix row is a zstd-compressed run of
// little-endian float64s.
type SnapshotStore struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// OpenSnapshotStore opens (or creates) a store at dir.
func OpenSnapshotStore(dir string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return openSnapshotStore(opts)
}

// OpenInMemorySnapshotStore opens a store that lives only in memory.
func OpenInMemorySnapshotStore() (*SnapshotStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openSnapshotStore(opts)
}

func openSnapshotStore(opts badger.Options) (*SnapshotStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotStore{db: db, enc: enc, dec: dec}, nil
}

// Close releases the store.
func (s *SnapshotStore) Close() error {
	s.dec.Close()
	_ = s.enc.Close()
	return s.db.Close()
}

// Fingerprint returns the fingerprint of the stored snapshot, or
// ErrSnapshotMiss when the store is empty.
func (s *SnapshotStore) Fingerprint() (string, error) {
	var fp string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyFingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSnapshotMiss
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			fp = string(val)
			return nil
		})
	})
	return fp, err
}

// Save replaces the stored snapshot with ds under fingerprint.
func (s *SnapshotStore) Save(ctx context.Context, fingerprint string, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	movies, err := json.Marshal(ds.Movies)
	if err != nil {
		return fmt.Errorf("marshal movies: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	if err := wb.Set([]byte(keyMovies), movies); err != nil {
		return fmt.Errorf("set movies: %w", err)
	}
	buf := make([]byte, 8*len(ds.Movies))
	for i, row := range ds.Scores {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j, v := range row {
			binary.LittleEndian.PutUint64(buf[j*8:], math.Float64bits(v))
		}
		if err := wb.Set(rowKey(i), s.enc.EncodeAll(buf, nil)); err != nil {
			return fmt.Errorf("set row %d: %w", i, err)
		}
	}
	// Written last so a partial save never looks complete.
	if err := wb.Set([]byte(keyFingerprint), []byte(fingerprint)); err != nil {
		return fmt.Errorf("set fingerprint: %w", err)
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}

	logging.Debug().Int("movies", len(ds.Movies)).Str("fingerprint", fingerprint).Msg("Snapshot saved")
	return nil
}

// Load returns the stored dataset when its fingerprint matches, otherwise
// ErrSnapshotMiss.
func (s *SnapshotStore) Load(ctx context.Context, fingerprint string) (*Dataset, error) {
	stored, err := s.Fingerprint()
	if err != nil {
		return nil, err
	}
	if stored != fingerprint {
		return nil, ErrSnapshotMiss
	}

	var (
		movies []similarity.Movie
		flat   []float64
	)
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyMovies))
		if err != nil {
			return fmt.Errorf("get movies: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &movies)
		}); err != nil {
			return fmt.Errorf("decode movies: %w", err)
		}

		n := len(movies)
		flat = make([]float64, n*n)
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := txn.Get(rowKey(i))
			if err != nil {
				return fmt.Errorf("get row %d: %w", i, err)
			}
			if err := s.decodeRow(item, flat[i*n:(i+1)*n]); err != nil {
				return fmt.Errorf("decode row %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Index is not serialized.
	for i := range movies {
		movies[i].Index = i
	}
	ds := newDenseDataset(movies, flat)
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: corrupt snapshot", similarity.ErrInvalidConfiguration)
	}
	return ds, nil
}

// decodeRow decompresses one stored row into dst.
func (s *SnapshotStore) decodeRow(item *badger.Item, dst []float64) error {
	return item.Value(func(val []byte) error {
		raw, err := s.dec.DecodeAll(val, nil)
		if err != nil {
			return err
		}
		if len(raw) != 8*len(dst) {
			return fmt.Errorf("row holds %d bytes, want %d", len(raw), 8*len(dst))
		}
		for j := range dst {
			dst[j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[j*8:]))
		}
		return nil
	})
}

// RunGC compacts the value log until Badger reports nothing to rewrite.
// In-memory stores have no value log and return nil.
func (s *SnapshotStore) RunGC(discardRatio float64) error {
	if s.db.Opts().InMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func rowKey(i int) []byte {
	return fmt.Appendf(nil, "%s%08d", rowKeyPrefix, i)
}
