package cnyesfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
	"github.com/user/stocknews-service/pkg/metrics"
)

const (
	defaultBaseURL    = "https://api.cnyes.com/media/api/v1/newslist/category/headline"
	defaultRetryLimit = 5
)

// Client provides a concrete implementation of FeedRepository for the
// cnyes headline news API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	politeness repository.Politeness
	retryLimit int
}

// NewClient creates a feed client. An empty baseURL and a non-positive
// retryLimit fall back to the defaults.
func NewClient(baseURL string, retryLimit int, politeness repository.Politeness) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if retryLimit <= 0 {
		retryLimit = defaultRetryLimit
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		politeness: politeness,
		retryLimit: retryLimit,
	}
}

// FetchPage issues one paginated request, retrying transient failures with
// randomized backoff until the retry budget is spent.
func (c *Client) FetchPage(ctx context.Context, page, limit int, window entity.FetchWindow) (*entity.FeedPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if !window.Start.IsZero() {
		params.Set("startAt", strconv.FormatInt(window.Start.Unix(), 10))
	}
	if !window.End.IsZero() {
		params.Set("endAt", strconv.FormatInt(window.End.Unix(), 10))
	}
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.retryLimit; attempt++ {
		if attempt > 1 {
			metrics.FeedRetriesTotal.Inc()
			time.Sleep(c.politeness.RetryBackoff())
		}

		result, err := c.doFetch(ctx, reqURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		slog.Warn("Feed page request failed",
			"page", page, "attempt", attempt, "error", err)
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", repository.ErrFetchExhausted, c.retryLimit, lastErr)
}

func (c *Client) doFetch(ctx context.Context, reqURL string) (*entity.FeedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	for k, v := range c.politeness.IdentityHeaders() {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()
	metrics.FeedRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var raw feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("feed decode: %w", err)
	}
	return raw.toPage(), nil
}
