// Package courtlistener is the client for the CourtListener REST API
// (v4). The core depends only on keyword search with quoted/boolean
// terms, exact-identifier lookups for dockets/clusters/opinions/people,
// field projection, page-size control, and the cited_gt/cited_lt
// filters. Authentication is an optional bearer token; without one the
// upstream applies a lower rate ceiling, which is still a valid mode.
package courtlistener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	"caselaw/internal/caselawerr"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://www.courtlistener.com/api/rest/v4"

// maxBodyBytes bounds a single response read. Opinion bodies are large
// but bounded; anything past this is a malfunctioning response.
const maxBodyBytes = 8 << 20

// Client talks to the CourtListener API. It holds no per-request state
// and is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryPolicy
	logger     *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	// Token is the API bearer token. Empty is valid: the upstream then
	// applies its unauthenticated rate ceiling.
	Token   string
	Timeout time.Duration
	// RequestsPerSecond caps the client-side request rate; 0 disables
	// client-side limiting.
	RequestsPerSecond float64
	Burst             int
	Retry             RetryPolicy
	Logger            *slog.Logger
}

// NewClient creates a CourtListener client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Retry == nil {
		opts.Retry = NoRetry{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    limiter,
		retry:      opts.Retry,
		logger:     opts.Logger,
	}
}

// Search runs a /search/ query with the given parameters.
func (c *Client) Search(ctx context.Context, params url.Values) (*SearchPage, error) {
	var page SearchPage
	if err := c.getJSON(ctx, "/search/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Docket fetches one docket by id.
func (c *Client) Docket(ctx context.Context, id int) (*Docket, error) {
	var d Docket
	if err := c.getJSON(ctx, fmt.Sprintf("/dockets/%d/", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Cluster fetches one opinion cluster by id.
func (c *Client) Cluster(ctx context.Context, id int) (*Cluster, error) {
	var cl Cluster
	if err := c.getJSON(ctx, fmt.Sprintf("/clusters/%d/", id), nil, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// Opinion fetches one opinion by id.
func (c *Client) Opinion(ctx context.Context, id int) (*Opinion, error) {
	var op Opinion
	if err := c.getJSON(ctx, fmt.Sprintf("/opinions/%d/", id), nil, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// FindPeople looks up judge records whose last name contains the given
// fragment, case-insensitively.
func (c *Client) FindPeople(ctx context.Context, lastName string) (*PeoplePage, error) {
	params := url.Values{}
	params.Set("name_last__icontains", lastName)
	params.Set("page_size", "20")
	var page PeoplePage
	if err := c.getJSON(ctx, "/people/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	attempts := c.retry.Attempts()
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.retry.Backoff(attempt)); err != nil {
				return caselawerr.Wrap(caselawerr.UpstreamFailure, "request cancelled during backoff", err)
			}
		}
		lastErr = c.getJSONOnce(ctx, path, params, out)
		if lastErr == nil {
			return nil
		}
		if !c.retry.ShouldRetry(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) getJSONOnce(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return caselawerr.Wrap(caselawerr.UpstreamFailure, "request cancelled waiting for rate limiter", err)
		}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return caselawerr.Wrap(caselawerr.Internal, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return caselawerr.Wrap(caselawerr.UpstreamFailure, "case-law API unreachable", err).
			WithContext("path", path)
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream request",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := statusError(resp.StatusCode, path); err != nil {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return err
	}

	body := io.Reader(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return caselawerr.Wrap(caselawerr.UpstreamFailure, "bad gzip response", err)
		}
		defer gz.Close()
		body = gz
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return caselawerr.Wrap(caselawerr.UpstreamFailure, "malformed JSON from case-law API", err).
			WithContext("path", path)
	}
	return nil
}

func statusError(status int, path string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return caselawerr.New(caselawerr.NotFound, "record not found").
			WithContext("path", path)
	case status == http.StatusTooManyRequests:
		return caselawerr.New(caselawerr.RateLimited, "case-law API rate limit exceeded").
			WithContext("path", path)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return caselawerr.New(caselawerr.UpstreamFailure, "case-law API rejected credentials").
			WithSuggestion("Check COURTLISTENER_API_TOKEN, or unset it to use the anonymous tier.").
			WithContext("status", status)
	default:
		return caselawerr.New(caselawerr.UpstreamFailure,
			"case-law API returned status "+strconv.Itoa(status)).
			WithContext("status", status).
			WithContext("path", path)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
