// Package fetch retrieves search results from the Hacker News Algolia API.
//
// The fetcher performs exactly one GET per call. It never retries and never
// de-duplicates concurrent calls; callers decide what a failure means.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/abelbrown/hackerstories/internal/logging"
	"github.com/abelbrown/hackerstories/internal/stories"
)

// ErrHTTPStatus is wrapped by errors for non-200 responses.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 8 << 20

// userAgent identifies requests to the API.
const userAgent = "hackerstories/0.3 (+https://github.com/abelbrown/hackerstories)"

// Result is one decoded page of search hits.
type Result struct {
	Stories []stories.Story
	Page    int
}

// Fetcher issues search requests.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher. A zero timeout means no client timeout;
// rps <= 0 disables rate limiting.
func NewFetcher(timeout time.Duration, rps float64) *Fetcher {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Fetch GETs url and decodes the hits. Any transport, status, or decode
// problem is returned as an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Result, error) {
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limiter: %w", err)
	}

	reqID := uuid.NewString()
	log := logging.WithPrefix("fetch").With("req", reqID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	log.Debug("request", "url", url)

	resp, err := f.client.Do(req)
	if err != nil {
		log.Warn("request failed", "url", url, "error", err)
		return Result{}, fmt.Errorf("failed to fetch stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("bad status", "url", url, "status", resp.StatusCode)
		return Result{}, fmt.Errorf("%w: %d %s", ErrHTTPStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	res, err := Decode(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("decode failed", "url", url, "error", err)
		return Result{}, err
	}

	log.Debug("response", "hits", len(res.Stories), "page", res.Page, "took", time.Since(start))
	return res, nil
}

// searchResponse covers both the Algolia shape {hits, page} and the
// {data: {stories}} shape served by test doubles.
type searchResponse struct {
	Hits []stories.Story `json:"hits"`
	Page int             `json:"page"`
	Data *struct {
		Stories []stories.Story `json:"stories"`
	} `json:"data"`
}

// Decode parses a search response body.
func Decode(r io.Reader) (Result, error) {
	var body searchResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if body.Hits == nil && body.Data != nil {
		return Result{Stories: body.Data.Stories, Page: body.Page}, nil
	}
	return Result{Stories: body.Hits, Page: body.Page}, nil
}
