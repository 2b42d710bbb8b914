// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package supervisor runs Reelmatch's long-lived services under a suture v4
// supervisor tree.
//
//	reelmatch (root)
//	├── data-layer   dataset loader, snapshot GC, cache purge
//	└── api-layer    HTTP server
//
// A failing data service restarts with backoff without taking the HTTP
// server down; /api/v1/health/ready keeps answering 503 until a dataset
// has been loaded. Supervisor events go to slog through sutureslog.
package supervisor
