// Package api implements the HTTP gateway to the forensics backend: one
// configured client with bearer-token injection and centralized 401 handling,
// plus typed wrappers for every endpoint the console consumes.
package api

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
	"sync"
	"time"

	"github.com/forensicvideo/console/internal/client/session"
	"github.com/forensicvideo/console/internal/logging"
)

// DefaultTimeout bounds every request; past it the call fails with
// ErrUnavailable.
const DefaultTimeout = 30 * time.Second

// Client is the single HTTP client behind every backend call. Constructing
// more than one per process defeats the centralized 401 teardown.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	log     logging.Logger

	// teardownMu serializes the 401 check-and-clear so that any number of
	// concurrently failing requests produce exactly one session teardown.
	teardownMu     sync.Mutex
	onUnauthorized func()
}

type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client for the given backend origin. The store supplies the
// bearer token for outgoing requests and is cleared when the server answers
// 401.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		log:     logging.NewNopLogger(),
	}
	c.http = &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &authTransport{base: http.DefaultTransport, store: store},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized registers the hook fired once per torn-down session, after
// the store has been cleared. The hook runs on the goroutine of whichever
// request lost the race and must not issue API calls of its own.
func (c *Client) OnUnauthorized(fn func()) {
	c.teardownMu.Lock()
	defer c.teardownMu.Unlock()
	c.onUnauthorized = fn
}

// authTransport attaches the bearer credential when a token exists;
// otherwise the request goes out unauthenticated.
type authTransport struct {
	base  http.RoundTripper
	store session.Store
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.store.Token(req.Context()); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// do executes the request and applies the response-phase policy: a 401
// unconditionally tears down the session (once) and every error is mapped to
// the package taxonomy. Callers receive the response only for 2xx statuses.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		c.teardown(req.Context())
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}

	return resp, nil
}

// teardown clears the session exactly once per established session: the
// check-and-clear runs under a lock, so concurrent 401s after the first see
// an already-empty store and do nothing.
func (c *Client) teardown(ctx context.Context) {
	c.teardownMu.Lock()
	defer c.teardownMu.Unlock()

	if c.store.Token(ctx) == "" {
		return
	}
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "session teardown failed", "err", err)
	}
	c.log.Info(ctx, "session expired, cleared credentials")
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	// Timeouts and connection failures look the same to the UI.
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Detail = body.Detail
	}
	return apiErr
}

func decodeJSON(resp *http.Response, out any) error {
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
