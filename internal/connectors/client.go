package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 16 << 20

	// maxErrorBytes caps how much of an error body ends up in the message.
	maxErrorBytes = 512
)

// Client executes HTTP requests against one source API with rate limiting
// and uniform error mapping.
type Client struct {
	source      domain.SourceAPI
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client for the given source, throttled to perSecond
// requests.
func NewClient(source domain.SourceAPI, perSecond float64) *Client {
	return &Client{
		source:      source,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		rateLimiter: NewRateLimiter(perSecond),
	}
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// Do executes the request and returns the response body.
// Rate limit responses become RateLimitError, other non-2xx statuses become
// APIError.
func (c *Client) Do(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req = req.WithContext(ctx)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.source, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(c.source, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", c.source, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Source:     c.source,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			URL:        req.URL.String(),
		}
	}

	return body, nil
}

// DoJSON executes the request and decodes the JSON response into out.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	body, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.source, err)
	}
	return nil
}

// errorMessage extracts a short, single-line message from an error body.
func errorMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBytes {
		msg = msg[:maxErrorBytes]
	}
	return strings.Join(strings.Fields(msg), " ")
}
