// Package api provides the HTTP adapter for the NCO search service.
// A single Client implements every driven API port and owns the base URL,
// request throttling and the mapping of transport failures onto domain errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// Ensure Client implements the driven ports.
var (
	_ driven.SearchAPI    = (*Client)(nil)
	_ driven.AdminAPI     = (*Client)(nil)
	_ driven.SearchLogAPI = (*Client)(nil)
)

// Endpoint paths relative to the base URL.
const (
	searchPath     = "/api/v1/search/"
	searchGetPath  = "/api/v1/search"
	adminPath      = "/api/v1/admin/"
	searchLogsPath = "/api/v1/admin/search-logs"
)

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request (default: 15s).
	Timeout time.Duration

	// SearchMethod selects POST (default) or GET searches.
	SearchMethod domain.SearchMethod

	// RateLimit is the maximum requests per second; 0 disables throttling.
	RateLimit float64

	// UserAgent is sent on every request when set.
	UserAgent string

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client config from application settings.
func ConfigFromSettings(s domain.APISettings) Config {
	return Config{
		BaseURL:      s.BaseURL,
		Timeout:      s.Timeout,
		SearchMethod: s.SearchMethod,
		RateLimit:    s.RateLimit,
	}
}

// Client talks to the search and admin endpoints.
type Client struct {
	http      *http.Client
	baseURL   string
	method    domain.SearchMethod
	limiter   *rate.Limiter
	userAgent string
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeout
	}
	if !cfg.SearchMethod.IsValid() {
		cfg.SearchMethod = domain.SearchMethodPost
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		method:    cfg.SearchMethod,
		limiter:   limiter,
		userAgent: cfg.UserAgent,
	}
}

// BaseURL returns the normalised service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and returns the body of a 2xx response.
// Every failure is returned as a *domain.Error except context cancellation,
// which is passed through unchanged so callers can tell it apart.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	if c.limiter != nil {
		// Wait fails early when the next token lies beyond the deadline.
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%s: throttled: %w", op, context.DeadlineExceeded)
		}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, op, "", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("%s %s [%s]", method, req.URL.Redacted(), requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("%s %s failed: %v", method, path, err)
		return nil, domain.NewError(domain.KindNetwork, op, "", err)
	}
	defer resp.Body.Close()

	logger.Debug("%s %s -> %d in %s [%s]", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, domain.ServerError(op, resp.StatusCode, errorDetail(raw))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.NewError(domain.KindNetwork, op, "", err)
	}
	return data, nil
}

// decode unmarshals a 2xx body, mapping failures to KindParse.
func decode(op string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return domain.NewError(domain.KindParse, op, "", err)
	}
	return nil
}

// errorDetail extracts the service's explanation from an error body.
// FastAPI style bodies carry either {"detail": "..."} or
// {"detail": [{"msg": "..."}]}; anything else yields "".
func errorDetail(raw []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	if len(body.Detail) > 0 {
		var text string
		if err := json.Unmarshal(body.Detail, &text); err == nil {
			return strings.TrimSpace(text)
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	return strings.TrimSpace(body.Message)
}

// IsCancelled reports whether err is a context cancellation rather than a
// service failure.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
