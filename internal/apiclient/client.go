// Package apiclient is the HTTP client for the job board API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/justsurfingit/job-board/internal/dtos"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 30 * time.Second
)

// Client wraps every call of the job board API. Calls attach a bearer token when the
// configured token source holds one.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time

	mu     sync.RWMutex
	tokens oauth2.TokenSource
}

type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithClock sets the clock used to compute posting ages.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the API rooted at baseURL (for example http://host/api).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    NewHTTPClient(DefaultTimeout),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient creates the standard transport with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// UseTokenSource swaps the token source. The session is usually wired in here after
// both it and the client exist.
func (c *Client) UseTokenSource(ts oauth2.TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type authMode int

const (
	// attach a token if one is held
	withAuth authMode = iota
	// never attach a token
	noAuth
)

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, mode authMode) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if mode == withAuth {
		c.authorize(req)
	}
	return req, nil
}

func (c *Client) authorize(req *http.Request) {
	c.mu.RLock()
	ts := c.tokens
	c.mu.RUnlock()
	if ts == nil {
		return
	}
	tok, err := ts.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		return
	}
	tok.SetAuthHeader(req)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, payload any, mode authMode) (*http.Request, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.newRequest(ctx, method, path, nil, body, contentType, mode)
}

// do sends req and decodes the envelope. Non-2xx replies become *APIError and
// failures without a response become *TransportError.
func do[T any](c *Client, req *http.Request) (*dtos.Envelope[T], error) {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("api request failed to send")
		return nil, &TransportError{Op: req.Method, URL: req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: req.Method, URL: req.URL.Path, Err: fmt.Errorf("read body: %w", err)}
	}
	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("api request")

	var raw dtos.Envelope[json.RawMessage]
	decodeErr := json.Unmarshal(body, &raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := raw.Message
		if msg == "" {
			msg = raw.Error
		}
		if msg == "" {
			msg = DefaultFailureMessage
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, Detail: raw.Error}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, req.Method, req.URL.Path, decodeErr)
	}

	env := &dtos.Envelope[T]{
		Success:    raw.Success,
		Message:    raw.Message,
		Error:      raw.Error,
		Pagination: raw.Pagination,
	}
	if hasData(raw.Data) {
		if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
			return nil, fmt.Errorf("%w: %s %s data: %v", ErrDecode, req.Method, req.URL.Path, err)
		}
	}
	return env, nil
}

func hasData(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// withData copies an envelope's metadata around new data.
func withData[T, U any](env *dtos.Envelope[T], data U) *dtos.Envelope[U] {
	return &dtos.Envelope[U]{
		Success:    env.Success,
		Message:    env.Message,
		Data:       data,
		Error:      env.Error,
		Pagination: env.Pagination,
	}
}

// decodeList accepts list data sent either bare or wrapped in an object under key.
func decodeList[T any](data json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if !hasData(trimmed) {
		return []T{}, nil
	}
	var list []T
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		inner, ok := wrapped[key]
		if !ok || !hasData(inner) {
			return []T{}, nil
		}
		if err := json.Unmarshal(inner, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	default:
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// Health calls the health check endpoint.
func (c *Client) Health(ctx context.Context) (*dtos.Envelope[json.RawMessage], error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil, "", noAuth)
	if err != nil {
		return nil, err
	}
	return do[json.RawMessage](c, req)
}
