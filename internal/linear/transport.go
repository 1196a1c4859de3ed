package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the Linear GraphQL API endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

const requestTimeout = 10 * time.Second

// Client issues authenticated GraphQL requests. It is a transport only:
// it encodes the query, checks the HTTP status, and hands back the raw
// body. Unwrapping data.<field> and checking mutation success booleans
// is the caller's job.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the API endpoint (used by tests).
func WithEndpoint(url string) ClientOption {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a transport client for the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute sends one GraphQL query or mutation and returns the raw
// response body. A status >= 400 becomes an *UpstreamError carrying the
// response body. No retries, no backoff — a failed call surfaces
// immediately.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling linear api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// unwrap decodes body into a {"data": target} envelope, erroring if the
// data field is missing or malformed.
func unwrap(body json.RawMessage, target any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decoding response envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("response has no data field: %s", string(body))
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
