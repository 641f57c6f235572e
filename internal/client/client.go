// Package client is the HTTP facade over the FutoFind backend. Each method
// maps one backend endpoint; there is no retry or caching here.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://futofind-api.onrender.com/api"

// Client calls the backend REST API. The bearer credential is a per-client
// value replaced atomically by SetCredential and ClearCredential.
type Client struct {
	baseURL    string
	httpClient *http.Client
	credential atomic.Pointer[string]
}

// New creates a client for baseURL. A nil httpClient gets a traced client
// without a timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetCredential attaches token to every subsequent request.
func (c *Client) SetCredential(token string) {
	c.credential.Store(&token)
}

// ClearCredential stops attaching a credential.
func (c *Client) ClearCredential() {
	c.credential.Store(nil)
}

// HasCredential reports whether a credential is attached.
func (c *Client) HasCredential() bool {
	return c.credential.Load() != nil
}

// request describes one backend call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token := c.credential.Load(); token != nil {
		req.Header.Set("Authorization", "Bearer "+*token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

// sendJSON issues a request with a JSON body.
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	r := request{method: method, path: path}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		r.body = bytes.NewReader(data)
		r.contentType = "application/json"
	}
	return c.do(ctx, r, out)
}
