// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package main is the Reelmatch HTTP server.
//
// The server loads a movie catalog plus its precomputed similarity matrix
// and answers "movies like this one" queries over a small JSON API.
//
// # Startup
//
//  1. Configuration: defaults, then config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog, with suture events bridged through slog
//  3. Components: snapshot store, dataset source, TMDB poster client, engine
//  4. Supervisor tree: dataset loader, snapshot GC, cache purge, HTTP server
//
// The HTTP server starts immediately; /api/v1/health/ready answers 503 until
// the dataset loader has installed a catalog.
//
// # Configuration
//
//	DATASET_FORMAT=json|duckdb
//	DATASET_PATH=/data/movies.json       # JSON bundle or DuckDB file
//	DATASET_MOVIES_SOURCE=movies.csv     # duckdb: table, CSV or Parquet
//	DATASET_SIMILARITY_SOURCE=sim.parquet
//	SNAPSHOT_ENABLED=true                # badger snapshot of the compiled dataset
//	TMDB_ENABLED=true TMDB_API_KEY=...   # poster lookups
//	HTTP_PORT=8501
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops every
// service, the HTTP server drains in-flight requests, and services that
// miss the shutdown timeout are reported before exit.
package main
