// Package transport is the shared HTTP layer of the catalog clients: base
// URL joining, authentication, JSON bodies and uniform error decoding.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	service    string
	baseURL    string
	http       *http.Client
	auth       Authenticator
	credential string
}

// Option configures a Client.
type Option func(*Client) error

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.NewValidationError("timeout", d, "must be positive")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithAuth applies auth with credential to every request.
func WithAuth(auth Authenticator, credential string) Option {
	return func(c *Client) error {
		c.auth = auth
		c.credential = credential
		return nil
	}
}

// WithCookieJar keeps session cookies between requests.
func WithCookieJar() Option {
	return func(c *Client) error {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return errors.WrapResource("create", "cookie jar", c.service, err)
		}
		c.http.Jar = jar
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. Timeouts and jars set
// by earlier options are lost, so pass it first.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.NewValidationError("http_client", nil, "cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// New creates a client for service rooted at baseURL.
func New(service, baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.NewValidationError(service+"_api", baseURL, "cannot be empty")
	}

	c := &Client{
		service: service,
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    &NoAuth{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Service returns the service name used in errors.
func (c *Client) Service() string {
	return c.service
}

// URL joins path onto the base URL, adding a leading slash when missing.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// NewRequest builds a request for path. A non-nil body is encoded as JSON.
func (c *Client) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", c.service+" request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// NewRawRequest builds a request for path with an already encoded body.
func (c *Client) NewRawRequest(ctx context.Context, method, path string, body []byte, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+path, err)
	}
	req.Header.Set("Content-Type", contentType)
	return req, nil
}

// Do performs req with authentication applied. Transport failures are
// reported as an APIError without a status code.
func (c *Client) Do(req *http.Request, operation string) (*http.Response, error) {
	if c.credential != "" {
		c.auth.Apply(req, c.credential)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Service:   c.service,
			Operation: operation,
			Message:   err.Error(),
			Err:       err,
		}
	}
	return resp, nil
}

// JSON performs a request with a JSON body and decodes a 2xx JSON response
// into target. A nil target discards the response body.
func (c *Client) JSON(ctx context.Context, operation, method, path string, body, target any) error {
	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := c.Do(req, operation)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, c.service, operation, target)
}
