// Package supabase implements the gateway's two external collaborators
// against a Supabase-style platform: the PostgREST record store (select,
// insert, update, upsert, delete with filter/order/single semantics) and
// the GoTrue identity provider (sign-up, sign-in, magic link, OAuth
// redirect, token introspection, sign-out, metadata updates).
//
// The package carries no retry, timeout, or caching logic of its own.
// Upstream failures are classified into the sentinel errors of
// internal/store and internal/identity with the provider's message
// preserved for the error-detail surface.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// Client is a credential-scoped handle to the platform. The zero bearer
// is the API key itself (the administrative service-role key or the
// public anon key, depending on what the client was constructed with);
// WithToken derives a handle that acts as a specific end user so the
// platform's row-level security applies to their requests.
type Client struct {
	baseURL string
	apiKey  string
	bearer  string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a platform client rooted at baseURL, authenticating
// every request with apiKey. A nil httpc falls back to a plain
// http.Client; a nil logger falls back to slog.Default.
func NewClient(baseURL, apiKey string, httpc *http.Client, logger *slog.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		bearer:  apiKey,
		httpc:   httpc,
		logger:  logger,
	}
}

// WithToken returns a client that authorizes as the owner of the given
// access token. The API key header is unchanged; only the bearer differs,
// which is what switches the platform from administrative to
// caller-scoped access control.
func (c *Client) WithToken(accessToken string) *Client {
	scoped := *c
	scoped.bearer = accessToken
	return &scoped
}

// BaseURL returns the platform root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// From starts a record-store query against the named collection.
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		params: url.Values{},
	}
}

// do executes one platform request. A non-2xx response is returned as a
// *PlatformError carrying the upstream message; a 2xx body is decoded
// into dest when dest is non-nil.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	params url.Values,
	headers http.Header,
	body any,
	dest any,
) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading platform response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := parsePlatformError(resp.StatusCode, respBody)
		c.logger.Debug("platform returned error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("code", perr.Code))
		return perr
	}

	if dest != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("decoding platform response: %w", err)
		}
	}
	return nil
}

// head executes a HEAD-style request and returns the response headers.
// Used for exact-count queries where only Content-Range matters.
func (c *Client) head(ctx context.Context, path string, params url.Values, headers http.Header) (http.Header, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer)
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parsePlatformError(resp.StatusCode, nil)
	}
	return resp.Header, nil
}
