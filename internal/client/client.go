// Package client is a typed HTTP client for the Hello World API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/api"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
)

const (
	// DefaultBaseURL is where the service listens by default.
	DefaultBaseURL = "http://localhost:3000"
	userAgent      = "hello-world-client"
)

// ErrUnexpectedStatus is wrapped by every APIError.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// APIError is returned for non-2xx responses. Body holds the decoded error
// envelope when the service sent one.
type APIError struct {
	Status int
	Body   api.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("api error (status=%d): %s", e.Status, e.Body.Message)
	}
	return fmt.Sprintf("api error (status=%d)", e.Status)
}

// Unwrap enables errors.Is(err, ErrUnexpectedStatus).
func (e *APIError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Client calls the five public endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another deployment. A trailing slash is ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// NewClient creates a client. A nil httpClient uses a fresh http.Client with
// no timeout.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Root calls GET /.
func (c *Client) Root(ctx context.Context) (*api.RootResponse, error) {
	var out api.RootResponse
	if err := c.call(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching root: %w", err)
	}
	return &out, nil
}

// Hello calls GET /api/hello.
func (c *Client) Hello(ctx context.Context) (*api.HelloInfo, error) {
	var out api.HelloInfo
	if err := c.call(ctx, http.MethodGet, "/api/hello", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching api info: %w", err)
	}
	return &out, nil
}

// Greeting calls GET /api/greeting/{name}. The name is path-escaped so any
// text reaches the service unchanged.
func (c *Client) Greeting(ctx context.Context, name string) (*api.GreetingResponse, error) {
	var out api.GreetingResponse
	if err := c.call(ctx, http.MethodGet, "/api/greeting/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching greeting: %w", err)
	}
	return &out, nil
}

// Echo calls POST /api/echo with {"message": message}.
func (c *Client) Echo(ctx context.Context, message string) (*api.EchoResponse, error) {
	var out api.EchoResponse
	if err := c.call(ctx, http.MethodPost, "/api/echo", api.EchoRequest{Message: message}, &out); err != nil {
		return nil, fmt.Errorf("sending echo: %w", err)
	}
	return &out, nil
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*api.HealthStatus, error) {
	var out api.HealthStatus
	if err := c.call(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, fmt.Errorf("checking health: %w", err)
	}
	return &out, nil
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.doRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return c.decodeResponse(ctx, resp, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) decodeResponse(ctx context.Context, resp *http.Response, target any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	// Best effort: a proxy may answer with something other than the envelope.
	_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
	applog.LogDebug(ctx, "api returned error status",
		zap.Int("status", resp.StatusCode),
		zap.String("url", resp.Request.URL.String()),
		zap.String("error", apiErr.Body.Error),
	)
	return apiErr
}
