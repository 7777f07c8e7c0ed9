package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTMLHeaders are sent with page fetches so the venue serves the full markup.
func HTMLHeaders() map[string]string {
	return map[string]string{
		"User-Agent": browserUserAgent,
	}
}

// APIHeaders are sent with the venue's JSON endpoints.
func APIHeaders() map[string]string {
	return map[string]string{
		"accept":        "application/json, text/plain, */*",
		"content-type":  "application/json",
		"x-app-id":      "growwWeb",
		"x-device-type": "desktop",
		"x-platform":    "web",
	}
}

// Client wraps http.Client with a fixed header set and a rate limiter shared
// by every caller, so concurrent workers stay polite to the venue.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	headers    map[string]string
}

func NewClient(timeout time.Duration, requestsPerSecond float64, headers map[string]string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		headers:    headers,
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("Client: rate limiter wait: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Client: request failed: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("Client: failed to read body: %w", err)
	}

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("Client: http status %v", res.Status)
	}

	return body, nil
}

// Get fetches url and returns the raw body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("Client: Get: failed to create request: %w", err)
	}

	return c.do(req)
}

// GetJSON fetches url and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("Client: GetJSON: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("Client: GetJSON: failed to decode json: %w", err)
	}

	return nil
}

// PostJSON posts payload as JSON to url and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("Client: PostJSON: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("Client: PostJSON: failed to create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("Client: PostJSON: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("Client: PostJSON: failed to decode json: %w", err)
	}

	return nil
}
