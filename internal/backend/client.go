// Package backend is the HTTP client for the BimilLog REST API.
//
// Every resource has its own file of request builders on *Client. Requests
// carry the browser's cookies (taken from the context) and, for mutations, the
// XSRF token echoed as a header. Queries retry transient failures; mutations
// never retry.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	XSRFCookie    = "XSRF-TOKEN"
	XSRFHeader    = "X-XSRF-TOKEN"
	AccessCookie  = "jwt_access_token"
	RefreshCookie = "jwt_refresh_token"
)

// Config configures a Client
type Config struct {
	BaseURL string
	// HTTPClient defaults to a client with Timeout. Set one with a cookie
	// jar for long-lived, single-user clients such as cmd/paper.
	HTTPClient *http.Client
	Timeout    time.Duration
	// MaxRetries applies to queries only. Defaults to 2; negative disables.
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	// Logger for request events. Falls back to slog.Default() if nil.
	Logger *slog.Logger
}

// Client talks to the backend API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	log        *slog.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = time.Second
	}
	if cfg.RetryMaxDelay <= 0 {
		cfg.RetryMaxDelay = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		httpClient: cfg.HTTPClient,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
		maxDelay:   cfg.RetryMaxDelay,
		log:        cfg.Logger.With("component", "backend"),
	}, nil
}

// Kind classifies a backend failure
type Kind int

const (
	KindNetwork Kind = iota
	KindStatus
	KindDecode
)

// Error is a failed backend call
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	case KindDecode:
		return fmt.Sprintf("backend %s %s: decode response: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("backend %s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status of a backend error, or 0.
func StatusOf(err error) int {
	var be *Error
	if errors.As(err, &be) && be.Kind == KindStatus {
		return be.Status
	}
	return 0
}

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return StatusOf(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }

// shouldRetry decides whether a failed query is worth another attempt.
// Auth failures are final; so are other client errors.
func shouldRetry(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func (c *Client) backoff(attempt int) time.Duration {
	d := time.Duration(float64(c.baseDelay) * math.Pow(2, float64(attempt-1)))
	if d > c.maxDelay {
		d = c.maxDelay
	}
	return d
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// get runs a query with the retry policy.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// send runs a mutation, exactly once.
func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	retries := 0
	if method == http.MethodGet {
		retries = c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			wait := c.backoff(attempt)
			c.log.Warn("retrying request", "method", method, "path", path, "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err := c.attempt(ctx, method, path, query, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		var be *Error
		if !errors.As(err, &be) {
			return err
		}
		if be.Kind == KindStatus && shouldRetry(be.Status) {
			continue
		}
		if be.Kind != KindNetwork {
			return err
		}
	}
	return lastErr
}

func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachCookies(ctx, req)

	c.log.Debug("request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if sink := SinkFrom(ctx); sink != nil {
		sink.add(resp.Cookies())
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	c.log.Debug("response", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Kind:    KindStatus,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, respBody),
		}
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Kind: KindDecode, Method: method, Path: path, Status: resp.StatusCode, Err: err}
		}
	}
	return nil
}

// errorMessage pulls a human message out of an error body.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(status)
}
