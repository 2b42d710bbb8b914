// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/similarity"
)

// bundle is the on-disk JSON layout:
//
//	{"movies": [{"movie_id": 19995, "title": "Avatar"}, ...],
//	 "similarity": [[1.0, 0.12, ...], ...]}
type bundle struct {
	Movies     []bundleMovie `json:"movies"`
	Similarity [][]float64   `json:"similarity"`
}

type bundleMovie struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
}

// JSONSource reads a dataset bundle from a single JSON file.
type JSONSource struct {
	path string
}

// NewJSONSource returns a source reading path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

// Name implements Source.
func (s *JSONSource) Name() string { return "json" }

// Load implements Source.
func (s *JSONSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}
	return decodeBundle(data)
}

// Fingerprint implements Source using the file's size and modification time.
func (s *JSONSource) Fingerprint() (string, error) {
	return fileFingerprint("json", s.path)
}

func decodeBundle(data []byte) (*Dataset, error) {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: decode dataset: %v", similarity.ErrInvalidConfiguration, err)
	}

	ds := &Dataset{
		Movies: make([]similarity.Movie, len(b.Movies)),
		Scores: b.Similarity,
	}
	for i, m := range b.Movies {
		ds.Movies[i] = similarity.Movie{ID: m.MovieID, Title: m.Title, Index: i}
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// EncodeBundle writes ds in the JSON bundle layout.
func EncodeBundle(ds *Dataset) ([]byte, error) {
	b := bundle{
		Movies:     make([]bundleMovie, len(ds.Movies)),
		Similarity: ds.Scores,
	}
	for i, m := range ds.Movies {
		b.Movies[i] = bundleMovie{MovieID: m.ID, Title: m.Title}
	}
	return json.Marshal(b)
}
