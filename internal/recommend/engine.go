// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// ErrNotReady is returned while no dataset has been loaded.
var ErrNotReady = errors.New("recommendation engine not ready")

// Engine wraps a similarity.Ranker with limits, caching and posters.
// It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	resolver poster.Resolver

	active     atomic.Pointer[installedRanker]
	generation atomic.Uint64

	// cache holds ranking results keyed by ranker generation, query row
	// and K. Nil when caching is disabled.
	cache *cache.LRU[cachedRanking]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// installedRanker pairs a ranker with the generation it was installed as.
// Requests that started on an older generation can only write cache keys
// that no later lookup builds.
type installedRanker struct {
	ranker     *similarity.Ranker
	generation uint64
}

// cachedRanking is a ranking without posters.
type cachedRanking struct {
	query similarity.Movie
	items []similarity.Recommendation
}

// NewEngine creates an engine. ranker may be nil and set later with
// SetRanker; resolver may be nil when posters are never wanted.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ranker *similarity.Ranker, resolver poster.Resolver, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		resolver: resolver,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[cachedRanking](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	if ranker != nil {
		e.SetRanker(ranker)
	}
	return e, nil
}

// SetRanker swaps the active ranker and clears the cache.
func (e *Engine) SetRanker(r *similarity.Ranker) {
	if r == nil {
		e.active.Store(nil)
	} else {
		e.active.Store(&installedRanker{ranker: r, generation: e.generation.Add(1)})
	}
	if e.cache != nil {
		e.cache.Clear()
		metrics.RecommendCacheSize.Set(0)
	}
	if r != nil {
		e.logger.Info().Int("movies", r.Size()).Msg("ranker installed")
	}
}

// current returns the installed ranker, or nil when none is loaded.
func (e *Engine) current() *similarity.Ranker {
	if in := e.active.Load(); in != nil {
		return in.ranker
	}
	return nil
}

// Ready reports whether a ranker is loaded.
func (e *Engine) Ready() bool {
	return e.active.Load() != nil
}

// Size returns the catalog size, or 0 when not ready.
func (e *Engine) Size() int {
	if r := e.current(); r != nil {
		return r.Size()
	}
	return 0
}

// Recommend returns movies similar to req.Title.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("title", req.Title).
		Logger()

	resp, err := e.recommend(ctx, req, start, logger)

	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, similarity.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
		e.errorCount.Add(1)
	}
	metrics.RecordRecommendation(outcome, time.Since(start))

	if err != nil {
		logger.Debug().Err(err).Msg("recommendation failed")
		return nil, err
	}

	logger.Debug().
		Int("k", resp.Metadata.K).
		Int("returned", len(resp.Items)).
		Bool("cache_hit", resp.Metadata.CacheHit).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, start time.Time, logger zerolog.Logger) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in := e.active.Load()
	if in == nil {
		return nil, ErrNotReady
	}
	r := in.ranker

	query, ok := r.Lookup(req.Title)
	if !ok {
		return nil, fmt.Errorf("recommend: %w: %q", similarity.ErrNotFound, req.Title)
	}
	k := r.ClampTopN(e.config.ClampK(req.K))

	ranking, hit, err := e.ranking(in, query, k)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	items := make([]Item, len(ranking.items))
	for i, rec := range ranking.items {
		items[i] = Item{MovieID: rec.MovieID, Title: rec.Title, Score: rec.Score}
	}

	withPosters := req.IncludePosters && e.config.Posters.Enabled && e.resolver != nil
	if withPosters {
		e.attachPosters(ctx, items, logger)
	}

	return &Response{
		Query: ranking.query,
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			K:           k,
			CacheHit:    hit,
			Posters:     withPosters,
			LatencyMS:   time.Since(start).Milliseconds(),
			GeneratedAt: time.Now().UTC(),
		},
	}, nil
}

// ranking returns the cached ranking for (query, k) on in or computes it.
func (e *Engine) ranking(in *installedRanker, query similarity.Movie, k int) (cachedRanking, bool, error) {
	key := cacheKey(in.generation, query.Index, k)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			metrics.RecordCacheLookup(true)
			return cached, true, nil
		}
		metrics.RecordCacheLookup(false)
	}

	// The title resolves to query, so Rank sees the same first match.
	recs, err := in.ranker.Rank(query.Title, k)
	if err != nil {
		return cachedRanking{}, false, err
	}

	result := cachedRanking{query: query, items: recs}
	if e.cache != nil {
		e.cache.Add(key, result)
		metrics.RecommendCacheSize.Set(float64(e.cache.Len()))
	}
	return result, false, nil
}

func (e *Engine) attachPosters(ctx context.Context, items []Item, logger zerolog.Logger) {
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].MovieID
	}

	urls := e.resolver.ResolveAll(ctx, ids)
	missing := 0
	for i := range items {
		items[i].PosterURL = urls[items[i].MovieID]
		if items[i].PosterURL == "" {
			missing++
		}
	}
	if missing > 0 {
		logger.Debug().Int("missing", missing).Msg("some posters unavailable")
	}
}

// Titles returns the catalog in matrix order, or nil when not ready.
func (e *Engine) Titles() []similarity.Movie {
	if r := e.current(); r != nil {
		return r.Movies()
	}
	return nil
}

// Search returns catalog movies whose title contains query.
func (e *Engine) Search(query string, limit int) ([]similarity.Movie, error) {
	r := e.current()
	if r == nil {
		return nil, ErrNotReady
	}
	return r.Search(query, limit), nil
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
		Movies:   e.Size(),
	}
	if e.cache != nil {
		cs := e.cache.Stats()
		s.CacheHits = cs.Hits
		s.CacheMisses = cs.Misses
		s.CacheSize = cs.Size
	}
	return s
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// PurgeExpired drops expired cache entries and returns how many went.
func (e *Engine) PurgeExpired() int {
	if e.cache == nil {
		return 0
	}
	n := e.cache.CleanupExpired()
	metrics.RecommendCacheSize.Set(float64(e.cache.Len()))
	return n
}

func cacheKey(generation uint64, row, k int) string {
	return strconv.FormatUint(generation, 10) + "|" + strconv.Itoa(row) + "|" + strconv.Itoa(k)
}
