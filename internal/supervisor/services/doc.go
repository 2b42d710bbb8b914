// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts Reelmatch components to suture.Service.
//
// Each service blocks in Serve until its context is canceled and names
// itself through String for supervisor event logs:
//
//   - HTTPServerService: net/http server with graceful shutdown
//   - DatasetService: initial dataset load and optional hot reload
//   - SnapshotGCService: periodic badger value-log GC
//   - CachePurgeService: periodic eviction of expired rankings
//
// Services depend on small interfaces rather than concrete types so they
// can be tested with fakes.
package services
