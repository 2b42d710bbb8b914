// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api serves the Reelmatch HTTP API on a chi router.

# Endpoints

	GET /api/v1/health            engine stats
	GET /api/v1/health/live       liveness check
	GET /api/v1/health/ready      readiness check (503 until a dataset is loaded)
	GET /api/v1/movies            catalog listing and title search (?q=&limit=)
	GET /api/v1/recommendations   ranked similar movies (?title=&k=&posters=)
	GET /metrics                  Prometheus exposition

# Responses

Every JSON endpoint writes a models.APIResponse envelope. Errors carry a
machine-readable code:

	VALIDATION_ERROR      400  bad or missing query parameters
	MOVIE_NOT_FOUND       404  title is not in the catalog
	SERVICE_UNAVAILABLE   503  no dataset loaded yet
	INTERNAL_ERROR        500  anything else

# Middleware

Global: request ID with logging context, RealIP, Recoverer, CORS, access
log and Prometheus instrumentation. Each route group carries its own
httprate limit and a handler timeout.
*/
package api
