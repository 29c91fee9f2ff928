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

	"golang.org/x/sync/singleflight"

	"realty-client/internal/clienterrors"
	"realty-client/internal/tokenstore"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultRefreshPath = "/auth/login/refresh/"
)

// Client talks to the marketplace REST API. It attaches the stored access
// token to every request and recovers from an expired token by refreshing
// it once per request.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokens      tokenstore.Store
	refreshPath string

	refreshGroup singleflight.Group

	hookMu           sync.RWMutex
	onSessionExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRefreshPath overrides the token refresh endpoint.
func WithRefreshPath(path string) Option {
	return func(c *Client) { c.refreshPath = path }
}

// WithSessionExpiredHandler sets the hook run after an unrecoverable 401.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New creates a client for baseURL (e.g. "https://host/api").
func New(baseURL string, tokens tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		tokens:      tokens,
		refreshPath: defaultRefreshPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSessionExpired registers fn to run after the client clears the stored
// tokens because they could not be refreshed.
func (c *Client) OnSessionExpired(fn func()) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.onSessionExpired = fn
}

// Tokens exposes the token store the client reads on every request.
func (c *Client) Tokens() tokenstore.Store {
	return c.tokens
}

type requestConfig struct {
	query  url.Values
	noAuth bool
}

// RequestOption tweaks a single call.
type RequestOption func(*requestConfig)

// WithQuery appends query parameters.
func WithQuery(q url.Values) RequestOption {
	return func(rc *requestConfig) { rc.query = q }
}

// WithoutAuth sends the request anonymously and disables refresh on 401.
// Used for the credential exchange endpoints.
func WithoutAuth() RequestOption {
	return func(rc *requestConfig) { rc.noAuth = true }
}

// preparedRequest keeps the encoded body so the request can be replayed.
type preparedRequest struct {
	method      string
	url         string
	body        []byte
	contentType string
	noAuth      bool
}

// Do sends method path with body (JSON-encoded, or a *Multipart) and decodes
// a successful response into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	cfg := requestConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	req, err := c.prepare(method, path, body, cfg)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}

	token := ""
	if !req.noAuth {
		tokens, err := c.tokens.Load()
		if err != nil {
			return fmt.Errorf("apiclient: load tokens: %w", err)
		}
		token = tokens.Access
	}

	status, data, err := c.send(ctx, req, token)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}

	if status == http.StatusUnauthorized && !req.noAuth {
		original := clienterrors.NewAPIError(status, data)

		fresh, rerr := c.recoverSession(ctx, token)
		if rerr != nil {
			return fmt.Errorf("apiclient: %s %s: %w: %w", method, path, rerr, original)
		}

		// the replay is the only retry; a second 401 is returned as is
		status, data, err = c.send(ctx, req, fresh)
		if err != nil {
			return fmt.Errorf("apiclient: %s %s (retry): %w", method, path, err)
		}
	}

	if status >= http.StatusBadRequest {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, clienterrors.NewAPIError(status, data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("apiclient: %s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) prepare(method, path string, body any, cfg requestConfig) (*preparedRequest, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(cfg.query) > 0 {
		u += "?" + cfg.query.Encode()
	}

	req := &preparedRequest{method: method, url: u, noAuth: cfg.noAuth}

	switch b := body.(type) {
	case nil:
	case *Multipart:
		data, contentType, err := b.encode()
		if err != nil {
			return nil, err
		}
		req.body, req.contentType = data, contentType
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		req.body, req.contentType = data, "application/json"
	}
	return req, nil
}

func (c *Client) send(ctx context.Context, pr *preparedRequest, token string) (int, []byte, error) {
	var bodyReader io.Reader
	if pr.body != nil {
		bodyReader = bytes.NewReader(pr.body)
	}

	req, err := http.NewRequestWithContext(ctx, pr.method, pr.url, bodyReader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Accept", "application/json")
	if pr.contentType != "" {
		req.Header.Set("Content-Type", pr.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, WithQuery(query))
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
