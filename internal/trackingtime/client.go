// Package trackingtime is a client for the TrackingTime REST API. It
// carries no session state beyond the transport credentials: the remote
// enforces the single-active-entry rule and this client only surfaces it.
package trackingtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultBaseURL is the TrackingTime API root.
const DefaultBaseURL = "https://app.trackingtime.co/api/v4"

// MaxNotesLength is the remote's limit on free-text notes, counted in
// characters, not bytes. Longer notes are rejected client-side instead
// of relying on the remote's error.
const MaxNotesLength = 5000

const requestTimeout = 10 * time.Second

// timeFormat is the wire format the API expects for dates. Start and
// stop must use the same zone or the server returns 500, so every call
// formats time.Now() in local time.
const timeFormat = "2006-01-02 15:04:05"

// APIError is a non-2xx response from the TrackingTime API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trackingtime api returned %d: %s", e.Status, e.Body)
}

// Entry is a tracking record as returned by the API.
type Entry struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name,omitempty"`
	Project   string      `json:"project,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	StartDate string      `json:"start_date,omitempty"`
	EndDate   string      `json:"end_date,omitempty"`
	State     string      `json:"state,omitempty"`
}

// Client issues authenticated requests against the API. Credentials are
// chosen once at construction: either a pre-encoded basic pair or a
// username/password combination.
type Client struct {
	baseURL string
	auth    string // full Authorization header value
	http    *http.Client
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock overrides the time source (used by tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClientWithKey creates a client from a pre-encoded basic-auth key.
func NewClientWithKey(apiKey string, opts ...Option) *Client {
	return newClient("Basic "+apiKey, opts...)
}

// NewClient creates a client from a username/password pair.
func NewClient(user, password string, opts ...Option) *Client {
	encoded := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return newClient("Basic "+encoded, opts...)
}

func newClient(auth string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		auth:    auth,
		http:    &http.Client{Timeout: requestTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start creates and starts tracking a task in one call, returning the
// created entry.
func (c *Client) Start(ctx context.Context, project, taskLabel string) (Entry, error) {
	params := url.Values{
		"date":        {c.now().Format(timeFormat)},
		"task_name":   {taskLabel},
		"return_task": {"true"},
	}
	if project != "" {
		params.Set("project_name", project)
	}
	return c.entryCall(ctx, http.MethodPost, "/tasks/track", params)
}

// Stop closes the tracked entry for taskID. The date uses the same
// local zone as Start; the remote rejects mismatched zones.
func (c *Client) Stop(ctx context.Context, taskID string) (Entry, error) {
	params := url.Values{
		"date":        {c.now().Format(timeFormat)},
		"task_id":     {taskID},
		"return_task": {"true"},
	}
	return c.entryCall(ctx, http.MethodPost, "/tasks/stop", params)
}

// Active returns the currently tracked entry. No open entry is an
// empty result, not an error.
func (c *Client) Active(ctx context.Context) (Entry, bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/tasks", url.Values{"filter": {"TRACKING"}})
	if err != nil {
		return Entry{}, false, err
	}
	var result struct {
		Data []Entry `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return Entry{}, false, fmt.Errorf("decoding tracking entries: %w", err)
	}
	if len(result.Data) == 0 {
		return Entry{}, false, nil
	}
	return result.Data[0], true, nil
}

// AddNotes replaces the free-text notes of an entry. Notes over
// MaxNotesLength fail fast without a remote call.
func (c *Client) AddNotes(ctx context.Context, eventID, notes string) (Entry, error) {
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return Entry{}, fmt.Errorf("notes exceed %d characters (%d given)", MaxNotesLength, n)
	}
	params := url.Values{
		"id":    {eventID},
		"notes": {notes},
	}
	return c.entryCall(ctx, http.MethodPost, "/events/update", params)
}

// entryCall issues a request whose response wraps a single entry in the
// provider's {"data": ...} envelope.
func (c *Client) entryCall(ctx context.Context, method, path string, params url.Values) (Entry, error) {
	body, err := c.do(ctx, method, path, params)
	if err != nil {
		return Entry{}, err
	}
	var result struct {
		Data Entry `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return Entry{}, fmt.Errorf("decoding tracking entry: %w", err)
	}
	return result.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling trackingtime api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
