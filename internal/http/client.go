// Package http wraps the HTTP transport used to reach the Hostbridge API:
// request building, the API key header, TLS policy, and opt-in retries.
package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/hostbridge-io/hbapi/internal/auth"
	"github.com/hostbridge-io/hbapi/internal/constants"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

const defaultUserAgent = "hbapi-go"

// Request is one call against the API.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is form-encoded into the request body for POST/PUT/DELETE.
	Body    url.Values
	Headers map[string]string
}

// Response is the raw result of a call. Envelope validation happens in the
// resource layer, not here.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against a fixed base URL, attaching the API key
// from a credential source. Retries are disabled unless configured.
type Client struct {
	baseURL    string
	creds      auth.CredentialSource
	httpClient *retryablehttp.Client
	logger     hbapi.Logger
	debug      bool
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug logging.
func WithLogger(logger hbapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries on transient failures (>=500, 429,
// connection errors).
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport client. creds may be nil, in which case no
// key header is attached (only the login probe legitimately runs that way
// before a key is validated).
func NewClient(baseURL string, creds auth.CredentialSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	// Status-based failures are the resource layer's to interpret: pass the
	// last response through instead of synthesizing a "giving up" error, and
	// never retry unless retries were configured.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if retryClient.RetryMax <= 0 {
			return false, err
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.HTTPClient.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},
		Proxy: http.ProxyFromEnvironment,
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		creds:      creds,
		httpClient: retryClient,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request and reads the full response body. Only the four
// verbs the API uses are supported.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, hbapi.NewError(hbapi.ErrorKindUnimplemented, "HTTP method %s is not supported", req.Method)
	}

	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = strings.NewReader(req.Body.Encode())
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if c.creds != nil {
		key, err := c.creds.APIKey(ctx)
		if err != nil {
			return nil, fmt.Errorf("obtaining API key: %w", err)
		}

		httpReq.Header.Set(constants.APIKeyHeader, key)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with form-encoded params.
func (c *Client) Post(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: params})
}

// Put performs a PUT request with form-encoded params.
func (c *Client) Put(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: params})
}

// Delete performs a DELETE request. params may be nil.
func (c *Client) Delete(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Body: params})
}
