package powerbi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Refresher = (*Client)(nil)

// Client issues dataset refresh requests.
type Client struct {
	baseURL     string
	timeout     time.Duration
	base        *http.Client
	rateLimiter *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client whose transport carries the requests.
// The bearer header is layered on top of it.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.base = c
	}
}

// WithRateLimiter sets the request pacing. Nil disables pacing.
func WithRateLimiter(r *RateLimiter) Option {
	return func(client *Client) {
		client.rateLimiter = r
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.timeout = d
	}
}

// NewClient creates a Power BI client rooted at baseURL (e.g. https://api.powerbi.com/v1.0/myorg).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		timeout:     domain.DefaultTimeout,
		rateLimiter: NewRateLimiter(domain.DefaultRequestsPerSecond),
	}
	for _, opt := range opts {
		opt(c)
	}
	logger.Debug("powerbi: %s, %v request(s)/s", c.baseURL, c.rateLimiter.Limit())
	return c
}

// RefreshURL returns the endpoint for resourceID. The id is path-escaped.
func (c *Client) RefreshURL(resourceID string) string {
	return fmt.Sprintf("%s/datasets/%s/refreshes", c.baseURL, url.PathEscape(resourceID))
}

// Refresh triggers a refresh of one dataset.
// Any 2xx is a success; everything else, transport errors included, is a failure.
func (c *Client) Refresh(ctx context.Context, resourceID string, token domain.Token) domain.RefreshOutcome {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return domain.Failure(0, fmt.Sprintf("rate limit wait: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.RefreshURL(resourceID), http.NoBody)
	if err != nil {
		return domain.Failure(0, fmt.Sprintf("create request: %v", err))
	}

	resp, err := c.httpClient(ctx, token).Do(req)
	if err != nil {
		return domain.Failure(0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Success(resp.StatusCode)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	detail := failureDetail(resp.Status, body)
	logger.Debug("refresh %s rejected: %d %s", resourceID, resp.StatusCode, detail)
	return domain.Failure(resp.StatusCode, detail)
}

// httpClient builds a bearer-authorised client for token.
func (c *Client) httpClient(ctx context.Context, token domain.Token) *http.Client {
	if c.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	}
	tc := oauth2.NewClient(ctx, NewTokenSource(token))
	tc.Timeout = c.timeout
	return tc
}
