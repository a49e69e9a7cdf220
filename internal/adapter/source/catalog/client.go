package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/bruschetta/internal/domain"
	"golang.org/x/sync/semaphore"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultMaxConcurrent = 9
	defaultSearchParam   = "q"
	userAgent            = "Bruschetta/1.0"
	maxBodySize          = 4 << 20
)

// Addressing selects the review URL scheme
type Addressing int

const (
	// AddressByID requests /api/1/reviews/<id>
	AddressByID Addressing = iota
	// AddressBySlug requests /api/1/reviews/<year>/<slug>
	AddressBySlug
)

// Options tune a Client. Zero values fall back to defaults.
type Options struct {
	SearchParam   string // "q" or "term"
	Addressing    Addressing
	Timeout       time.Duration // per request, counted from when a review slot is held
	MaxConcurrent int           // review requests in flight at once
	HTTPClient    *http.Client
}

// Client implements domain.SearchClient and domain.ReviewClient against the /api/1 HTTP API
type Client struct {
	baseURL     string
	searchParam string
	addressing  Addressing
	httpClient  *http.Client
	timeout     time.Duration
	reviewSem   *semaphore.Weighted
	logger      *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaultSearchParam
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		searchParam: opts.SearchParam,
		addressing:  opts.Addressing,
		httpClient:  httpClient,
		timeout:     opts.Timeout,
		reviewSem:   semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		logger:      logger,
	}
}

// SearchURL returns the primary search URL for query
func (c *Client) SearchURL(query string) string {
	v := url.Values{}
	v.Set(c.searchParam, query)
	return c.baseURL + "/api/1/search?" + v.Encode()
}

// ReviewURL returns the review URL for t under the configured addressing
func (c *Client) ReviewURL(t domain.Title) string {
	if c.addressing == AddressBySlug {
		return c.baseURL + "/api/1/reviews/" + strconv.Itoa(t.Year) + "/" + url.PathEscape(t.Slug())
	}
	return c.baseURL + "/api/1/reviews/" + url.PathEscape(t.ID)
}

// doRequest performs a GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("catalog request", "url", reqURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			c.logger.Warn("catalog request timed out", "url", reqURL, "request_id", requestID, "error", err)
			return nil, err
		}
		c.logger.Warn("catalog request failed", "url", reqURL, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog request error", "url", reqURL, "request_id", requestID, "status", resp.StatusCode)
		return nil, &domain.HTTPStatusError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	return body, nil
}

// Search returns the titles matching query, in response order
func (c *Client) Search(ctx context.Context, query string) ([]domain.Title, error) {
	body, err := c.doRequest(ctx, c.SearchURL(query))
	if err != nil {
		return nil, err
	}

	dtos, err := parseSearch(body)
	if err != nil {
		c.logger.Error("search payload rejected", "error", err, "bodyLen", len(body))
		return nil, err
	}

	titles, err := MapTitles(dtos, c.addressing)
	if err != nil {
		c.logger.Error("search payload rejected", "error", err)
		return nil, err
	}

	c.logger.Debug("search complete", "query", query, "results", len(titles))
	return titles, nil
}

// parseSearch accepts a bare JSON array or an object wrapping it in "titles"
func parseSearch(body []byte) ([]TitleDTO, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty search response", domain.ErrMalformedPayload)
	}

	switch trimmed[0] {
	case '[':
		var dtos []TitleDTO
		if err := json.Unmarshal(trimmed, &dtos); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
		}
		return dtos, nil
	case '{':
		var env titleEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
		}
		if env.Titles == nil {
			return nil, fmt.Errorf("%w: search object has no titles", domain.ErrMalformedPayload)
		}
		return *env.Titles, nil
	case 'n':
		// "null" is how some servers encode zero results
		if string(trimmed) == "null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w: search response is not a list", domain.ErrMalformedPayload)
}

// Review fetches the review resource for t. It waits for a free review
// slot first; the request timeout starts once the slot is held.
func (c *Client) Review(ctx context.Context, t domain.Title) (*domain.Review, error) {
	if c.addressing == AddressByID && t.ID == "" {
		return nil, fmt.Errorf("%w: title %q has no id", domain.ErrMalformedPayload, t.Title)
	}

	if err := c.reviewSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.reviewSem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.doRequest(ctx, c.ReviewURL(t))
	if err != nil {
		return nil, err
	}

	var dto ReviewDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.Warn("review payload rejected", "title", t.Title, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	return MapReview(dto)
}
