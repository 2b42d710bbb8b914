// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package recommend serves "more like this" recommendations on top of a
similarity.Ranker.

The Engine adds the request-level concerns the ranker does not have:

  - K defaults and limits
  - an LRU+TTL cache of ranking results
  - optional poster URLs from a poster.Resolver
  - metrics and request-scoped logging

The ranker can be swapped at runtime with SetRanker (for example after a
dataset reload); the cache is cleared when that happens. Until a ranker is
set, Recommend returns ErrNotReady.

Posters are attached per request and never stored in the cache, so a
transient TMDB failure does not stick.

Example:

	engine, err := recommend.NewEngine(ranker, posterClient, recommend.DefaultConfig(), logger)
	if err != nil {
		return err
	}
	resp, err := engine.Recommend(ctx, recommend.Request{Title: "Avatar", IncludePosters: true})
	if errors.Is(err, similarity.ErrNotFound) {
		// "Movie not found in dataset!"
	}
*/
package recommend
