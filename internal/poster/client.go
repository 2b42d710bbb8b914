// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package poster resolves movie poster image URLs from the TMDB REST API.

Lookups are rate limited client-side and fanned out with bounded
concurrency. A failed lookup never fails the caller's request: the movie
simply gets the placeholder URL (or no poster when the placeholder is
empty). Results are not cached and failed requests are not retried.

API Reference: https://developer.themoviedb.org/reference/movie-details
*/
package poster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// ErrNoPoster is returned when TMDB knows the movie but has no poster for it.
var ErrNoPoster = errors.New("poster not available")

// StatusError is returned for non-200 TMDB responses.
type StatusError struct {
	MovieID    int64
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb movie %d returned status %d", e.MovieID, e.StatusCode)
}

// Resolver maps movie IDs to poster URLs. IDs without a poster are absent
// from the result.
type Resolver interface {
	ResolveAll(ctx context.Context, ids []int64) map[int64]string
}

// Ensure Client implements Resolver
var _ Resolver = (*Client)(nil)

// Config configures a Client.
type Config struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Language     string

	// Timeout bounds a single lookup.
	Timeout time.Duration

	// RateLimit is requests per second across all lookups. Zero disables
	// client-side limiting.
	RateLimit float64
	RateBurst int

	// Concurrency bounds parallel lookups inside one ResolveAll call.
	Concurrency int

	// PlaceholderURL stands in for missing posters. Empty means omit.
	PlaceholderURL string

	// HTTPClient defaults to a client with no overall timeout; Timeout is
	// applied per request through the context.
	HTTPClient *http.Client
}

// Client talks to the TMDB movie details endpoint.
type Client struct {
	cfg        Config
	baseURL    string
	imageBase  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a TMDB poster client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		imageBase:  strings.TrimSuffix(cfg.ImageBaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger.With().Str("component", "poster").Logger(),
	}
}

// Enabled reports whether lookups reach TMDB. A client without an API key
// answers every lookup with the placeholder.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

// movieDetails is the subset of /movie/{id} we read.
type movieDetails struct {
	PosterPath *string `json:"poster_path"`
}

// PosterURL returns the full image URL for movieID.
func (c *Client) PosterURL(ctx context.Context, movieID int64) (string, error) {
	start := time.Now()
	u, err := c.posterURL(ctx, movieID)

	result := metrics.PosterOK
	switch {
	case errors.Is(err, ErrNoPoster):
		result = metrics.PosterMissing
	case err != nil:
		result = metrics.PosterError
	}
	metrics.RecordPosterRequest(result, time.Since(start))

	return u, err
}

func (c *Client) posterURL(ctx context.Context, movieID int64) (string, error) {
	if !c.Enabled() {
		return "", ErrNoPoster
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("tmdb rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	q.Set("language", c.cfg.Language)
	endpoint := c.baseURL + "/movie/" + strconv.FormatInt(movieID, 10) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("tmdb movie %d request failed: %w", movieID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{MovieID: movieID, StatusCode: resp.StatusCode}
	}

	var details movieDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return "", fmt.Errorf("failed to decode tmdb movie %d: %w", movieID, err)
	}
	if details.PosterPath == nil || *details.PosterPath == "" {
		return "", ErrNoPoster
	}

	path := *details.PosterPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBase + path, nil
}

// ResolveAll looks up every distinct id with at most Concurrency requests
// in flight. Failures are logged and replaced by the placeholder.
func (c *Client) ResolveAll(ctx context.Context, ids []int64) map[int64]string {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out
	}
	if !c.Enabled() {
		if c.cfg.PlaceholderURL != "" {
			for _, id := range ids {
				out[id] = c.cfg.PlaceholderURL
			}
		}
		return out
	}

	var (
		mu   sync.Mutex
		g    errgroup.Group
		seen = make(map[int64]struct{}, len(ids))
	)
	g.SetLimit(c.cfg.Concurrency)

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		g.Go(func() error {
			u, err := c.PosterURL(ctx, id)
			if err != nil {
				ev := c.logger.Debug()
				if !errors.Is(err, ErrNoPoster) {
					ev = c.logger.Warn()
				}
				ev.Err(err).Int64("movie_id", id).Msg("Poster lookup failed")

				if c.cfg.PlaceholderURL == "" {
					return nil
				}
				u = c.cfg.PlaceholderURL
			}

			mu.Lock()
			out[id] = u
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	return out
}
