// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// DuckDBConfig describes where the catalog and the long-form similarity
// relation live.
type DuckDBConfig struct {
	// Path is the database file. Empty opens an in-memory database.
	Path string

	// MoviesSource holds (movie_id, title[, row_idx]).
	MoviesSource string

	// SimilaritySource holds (row_idx, col_idx, score), one row per cell.
	SimilaritySource string

	MaxMemory string
	Threads   int
}

// DuckDBSource loads a dataset through DuckDB. Sources ending in .csv,
// .csv.gz, .tsv or .parquet are read with read_csv_auto/read_parquet;
// anything else is treated as a table name.
type DuckDBSource struct {
	cfg DuckDBConfig
}

// NewDuckDBSource returns a DuckDB-backed source.
func NewDuckDBSource(cfg DuckDBConfig) *DuckDBSource {
	return &DuckDBSource{cfg: cfg}
}

// Name implements Source.
func (s *DuckDBSource) Name() string { return "duckdb" }

// Fingerprint implements Source over the database file and any file
// sources. Table sources in an in-memory database cannot be fingerprinted.
func (s *DuckDBSource) Fingerprint() (string, error) {
	var files []string
	if s.cfg.Path != "" {
		files = append(files, s.cfg.Path)
	}
	for _, src := range []string{s.cfg.MoviesSource, s.cfg.SimilaritySource} {
		if fileFunction(src) != "" {
			files = append(files, src)
		}
	}
	if len(files) == 0 {
		return "", errors.New("in-memory duckdb tables have no fingerprint")
	}
	return fileFingerprint("duckdb", files...)
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) (*Dataset, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(db)

	movies, err := s.loadMovies(ctx, db)
	if err != nil {
		return nil, err
	}

	flat, err := s.loadScores(ctx, db, len(movies))
	if err != nil {
		return nil, err
	}

	ds := newDenseDataset(movies, flat)
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *DuckDBSource) open(ctx context.Context) (*sql.DB, error) {
	threads := s.cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := s.cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	path := s.cfg.Path
	accessMode := "read_only"
	if path == "" {
		path = ":memory:"
		accessMode = "automatic"
	}

	// Extensions are never needed here; autoloading would reach the network.
	connStr := fmt.Sprintf("%s?access_mode=%s&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, accessMode, threads, maxMemory)

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}
	return db, nil
}

func (s *DuckDBSource) loadMovies(ctx context.Context, db *sql.DB) ([]similarity.Movie, error) {
	rel := relation(s.cfg.MoviesSource)

	cols, err := columns(ctx, db, rel)
	if err != nil {
		return nil, fmt.Errorf("inspect movies source: %w", err)
	}
	for _, want := range []string{"movie_id", "title"} {
		if !slices.Contains(cols, want) {
			return nil, fmt.Errorf("%w: movies source has no %s column", similarity.ErrInvalidConfiguration, want)
		}
	}
	hasIndex := slices.Contains(cols, "row_idx")

	query := "SELECT CAST(movie_id AS BIGINT), CAST(title AS VARCHAR), -1 FROM " + rel
	if hasIndex {
		query = "SELECT CAST(movie_id AS BIGINT), CAST(title AS VARCHAR), CAST(row_idx AS BIGINT) FROM " + rel + " ORDER BY row_idx"
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer closeQuietly(rows)

	var movies []similarity.Movie
	for rows.Next() {
		var (
			id    int64
			title sql.NullString
			idx   int64
		)
		if err := rows.Scan(&id, &title, &idx); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		pos := len(movies)
		if hasIndex && idx != int64(pos) {
			return nil, fmt.Errorf("%w: movie row_idx values must be 0..n-1 without gaps, found %d at position %d",
				similarity.ErrInvalidConfiguration, idx, pos)
		}
		movies = append(movies, similarity.Movie{ID: id, Title: title.String, Index: pos})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	logging.Debug().Int("movies", len(movies)).Bool("explicit_index", hasIndex).Msg("Loaded movies from duckdb")
	return movies, nil
}

// loadScores reads the long-form relation into a row-major n*n array.
// Every cell must be present exactly once with a finite score.
func (s *DuckDBSource) loadScores(ctx context.Context, db *sql.DB, n int) ([]float64, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", similarity.ErrInvalidConfiguration)
	}
	rel := relation(s.cfg.SimilaritySource)

	rows, err := db.QueryContext(ctx,
		"SELECT CAST(row_idx AS BIGINT), CAST(col_idx AS BIGINT), CAST(score AS DOUBLE) FROM "+rel)
	if err != nil {
		return nil, fmt.Errorf("query similarity: %w", err)
	}
	defer closeQuietly(rows)

	flat := make([]float64, n*n)
	seen := make([]bool, n*n)
	filled := 0
	for rows.Next() {
		var (
			i, j  int64
			score sql.NullFloat64
		)
		if err := rows.Scan(&i, &j, &score); err != nil {
			return nil, fmt.Errorf("scan similarity: %w", err)
		}
		if i < 0 || j < 0 || i >= int64(n) || j >= int64(n) {
			return nil, fmt.Errorf("%w: similarity cell (%d, %d) outside %dx%d matrix",
				similarity.ErrInvalidConfiguration, i, j, n, n)
		}
		if !score.Valid {
			return nil, fmt.Errorf("%w: similarity cell (%d, %d) is NULL", similarity.ErrInvalidConfiguration, i, j)
		}
		if math.IsNaN(score.Float64) || math.IsInf(score.Float64, 0) {
			return nil, fmt.Errorf("%w: similarity cell (%d, %d) is %v",
				similarity.ErrInvalidConfiguration, i, j, score.Float64)
		}
		k := int(i)*n + int(j)
		if seen[k] {
			return nil, fmt.Errorf("%w: duplicate similarity cell (%d, %d)", similarity.ErrInvalidConfiguration, i, j)
		}
		seen[k] = true
		flat[k] = score.Float64
		filled++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity: %w", err)
	}
	if filled != n*n {
		return nil, fmt.Errorf("%w: similarity has %d cells, want %d",
			similarity.ErrInvalidConfiguration, filled, n*n)
	}
	return flat, nil
}

func columns(ctx context.Context, db *sql.DB, rel string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+rel+" LIMIT 0")
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i, c := range cols {
		cols[i] = strings.ToLower(c)
	}
	return cols, nil
}

// fileFunction returns the DuckDB table function for a file source, or ""
// for a table name.
func fileFunction(src string) string {
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return "read_parquet"
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".csv.gz"), strings.HasSuffix(lower, ".tsv"):
		return "read_csv_auto"
	default:
		return ""
	}
}

// relation renders src as a FROM target. File paths become single-quoted
// literals and table names become quoted identifiers.
func relation(src string) string {
	if fn := fileFunction(src); fn != "" {
		return fn + "('" + strings.ReplaceAll(src, "'", "''") + "')"
	}
	return `"` + strings.ReplaceAll(src, `"`, `""`) + `"`
}

func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // best-effort cleanup
	}
}
