// Package http implements the transport layer for the TIM API: verb
// dispatch, JSON and form encoding, and classification of response statuses
// into the client/server error taxonomy.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tim-io/timapi/internal/auth"
	"github.com/tim-io/timapi/internal/constants"
	"github.com/tim-io/timapi/pkg/tim"
)

// Logger interface for transport logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one API call. The body variant is chosen explicitly by
// the call site: leave both Body and FormData nil for an empty body, set
// Body for a JSON payload, or set FormData for a form-encoded payload.
// Setting both is a programming error; FormData wins.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Headers  map[string]string
	Body     interface{}
	FormData url.Values
	// NoAuth suppresses the Authorization header even when a session
	// token exists (registration, login).
	NoAuth bool
}

// Response is the raw outcome of an API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
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

// WithHTTPTimeout bounds a single HTTP attempt.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries for transient failures (connection
// errors, 5xx, 429). Client rejections are never retried.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retryMax
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// WithCache installs a read-path response cache. Cacheable GETs are served
// from the cache when live; successful writes invalidate affected entries.
func WithCache(manager *tim.CacheManager, policy *tim.CachingPolicy) Option {
	return func(c *Client) {
		c.cacheManager = manager

		if policy == nil {
			policy = tim.DefaultCachingPolicy()
		}

		c.cachePolicy = policy
	}
}

// Client issues HTTP calls against the API and classifies outcomes. A
// transport-level failure (DNS, connect, timeout) is returned as a wrapped
// error with no Response; an HTTP-level error status is returned as a
// *tim.ClientError or *tim.ServerError alongside the Response.
type Client struct {
	baseURL      string
	tokens       auth.TokenProvider
	retryClient  *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	cacheManager *tim.CacheManager
	cachePolicy  *tim.CachingPolicy
}

// NewClient creates a transport client for the given base URL. The token
// provider may be nil for unauthenticated use. Retries are disabled unless
// WithRetryConfig is applied; each call is a single blocking attempt.
func NewClient(baseURL string, tokens auth.TokenProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	// Hand back the final response even when retries are exhausted, so a
	// 5xx still reaches classification instead of a generic giving-up error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		tokens:      tokens,
		retryClient: retryClient,
		userAgent:   "timapi-client/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request and classifies the response status.
//
//nolint:cyclop // Single linear pipeline: cache, encode, send, classify.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	if resp, ok := c.cacheLookup(ctx, req); ok {
		return resp, nil
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq, req, contentType)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.retryClient.Do(httpReq)
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

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	return resp, c.classify(ctx, req, resp)
}

// classify maps the status code to exactly one outcome: 5xx server fault,
// 4xx client rejection, anything else success passthrough.
func (c *Client) classify(ctx context.Context, req *Request, resp *Response) error {
	switch {
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return tim.NewServerError(resp.StatusCode)

	case resp.StatusCode >= 400 && resp.StatusCode <= 499:
		return tim.NewClientError(resp.StatusCode, resp.Body)

	default:
		c.cacheStore(ctx, req, resp)

		return nil
	}
}

func (c *Client) cacheLookup(ctx context.Context, req *Request) (*Response, bool) {
	if c.cacheManager == nil || !c.cachePolicy.ShouldCache(req.Method, req.Path) {
		return nil, false
	}

	key := c.cacheManager.GetCacheKey(req.Method, req.Path, req.Query)

	entry := c.cacheManager.Get(ctx, key)
	if entry == nil {
		return nil, false
	}

	return &Response{StatusCode: http.StatusOK, Body: entry.Data}, true
}

func (c *Client) cacheStore(ctx context.Context, req *Request, resp *Response) {
	if c.cacheManager == nil {
		return
	}

	if c.cachePolicy.ShouldCache(req.Method, req.Path) {
		key := c.cacheManager.GetCacheKey(req.Method, req.Path, req.Query)
		_ = c.cacheManager.SetWithETag(ctx, key, resp.Body, resp.Headers.Get("ETag"), c.cachePolicy.TTLFor(req.Path))

		return
	}

	if c.cachePolicy.IsWrite(req.Method, req.Path) {
		c.cacheManager.Invalidate(ctx, req.Path)
	}
}

func (c *Client) setHeaders(httpReq *retryablehttp.Request, req *Request, contentType string) {
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if !req.NoAuth && c.tokens != nil {
		if token := c.tokens.Token(); token.Valid() {
			httpReq.Header.Set("Authorization", token.AuthorizationValue())
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
}

// encodeBody serializes the request body per its explicit variant.
func encodeBody(req *Request) (io.Reader, string, error) {
	if req.FormData != nil {
		return strings.NewReader(req.FormData.Encode()), "application/x-www-form-urlencoded", nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}

	return bytes.NewReader(data), "application/json", nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostForm issues a POST request with a form-encoded body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, FormData: form})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodHead, Path: path})
}

// Options issues an OPTIONS request.
func (c *Client) Options(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodOptions, Path: path})
}
