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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxResults = 20
	defaultBackoff    = time.Second
	userAgent         = "MyReads/1.0"
)

// Config holds the connection settings for a Books API server
type Config struct {
	URL               string
	Token             string
	MaxResults        int           // Search page size
	Timeout           time.Duration // Per HTTP request
	RequestsPerSecond float64       // 0 disables rate limiting
	MaxRetries        int           // Retries for idempotent reads
}

// Client implements domain.CatalogService for the Books API
type Client struct {
	baseURL    string
	token      string
	maxResults int
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewClient creates a new Books API client
func NewClient(cfg Config, m *metrics.Metrics, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("server token is required")
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		maxResults: cfg.MaxResults,
		maxRetries: cfg.MaxRetries,
		backoff:    defaultBackoff,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		metrics:    m,
		logger:     logger,
	}, nil
}

// ListLibrary returns every book on the user's shelves
func (c *Client) ListLibrary(ctx context.Context) ([]domain.LibraryEntry, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/books", nil, true)
	if err != nil {
		return nil, err
	}

	var resp LibraryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse library: %w", err)
	}

	entries, unknown := MapLibrary(resp.Books)
	if len(unknown) > 0 {
		c.logger.Warn("unknown shelf values", "values", unknown)
	}
	return entries, nil
}

// SearchByTerm searches the catalog. The API's error marker becomes domain.ErrNoResults.
func (c *Client) SearchByTerm(ctx context.Context, term string) ([]domain.Book, error) {
	req := SearchRequest{Query: term, MaxResults: c.maxResults}

	// Search does not modify anything, so it is retried like a GET.
	body, err := c.doRequest(ctx, http.MethodPost, "/search", req, true)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	raw := bytes.TrimSpace(resp.Books)
	if len(raw) == 0 || raw[0] != '[' {
		var marker SearchError
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &marker); err != nil {
				c.logger.Debug("unreadable search error marker", "term", term, "error", err)
			}
		}
		c.logger.Debug("search returned no results", "term", term, "marker", marker.Error)
		return nil, domain.ErrNoResults
	}

	var books []Book
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}
	return MapBooks(books), nil
}

// SetShelf moves a book to shelf on the server
func (c *Client) SetShelf(ctx context.Context, id string, shelf domain.Shelf) error {
	path := "/books/" + url.PathEscape(id)
	body, err := c.doRequest(ctx, http.MethodPut, path, UpdateRequest{Shelf: shelf.Wire()}, false)
	if err != nil {
		return err
	}

	// The update already succeeded; the shelf listing is only checked.
	var resp UpdateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Debug("unreadable update response", "id", id, "error", err)
		return nil
	}
	if !resp.Shelved(id, shelf) {
		c.logger.Warn("server did not confirm shelf", "id", id, "shelf", shelf.Wire())
	}
	return nil
}

// doRequest performs an authenticated request, retrying 429 and 5xx
// responses with exponential backoff when retry is set.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}, retry bool) ([]byte, error) {
	var data []byte
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	attempts := 1
	if retry {
		attempts += c.maxRetries
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.roundTrip(ctx, method, path, data)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var re *retryableError
		if !errors.As(err, &re) {
			return nil, err
		}
	}

	if attempts > 1 {
		return nil, fmt.Errorf("after %d retries: %w", attempts-1, lastErr)
	}
	return nil, lastErr
}

// retryableError marks failures worth another attempt
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func (c *Client) roundTrip(ctx context.Context, method, path string, data []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.token)
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", userAgent)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog request", "method", method, "url", reqURL, "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.CatalogRequest(method, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("catalog request failed", "error", err, "request_id", requestID)
		return nil, &retryableError{err: fmt.Errorf("%w: %v", domain.ErrServerOffline, err)}
	}
	defer resp.Body.Close()
	c.metrics.CatalogRequest(method, resp.StatusCode, time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, path)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		c.logger.Warn("catalog request error", "status", resp.StatusCode, "request_id", requestID)
		return nil, &retryableError{err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	default:
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
