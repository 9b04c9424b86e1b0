// Package client implements the tim.Client facade over the transport layer.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tim-io/timapi/internal/auth"
	"github.com/tim-io/timapi/internal/constants"
	"github.com/tim-io/timapi/internal/http"
	"github.com/tim-io/timapi/pkg/tim"
)

// Client implements the tim.Client interface.
type Client struct {
	httpClient *http.Client
	session    *auth.SessionManager
	baseURL    string
	logger     tim.Logger

	items tim.ItemsClient
	users tim.UsersClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *tim.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Cache != nil && config.Cache.Type != tim.CacheTypeNone {
		cache, err := tim.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating response cache: %w", err)
		}

		manager := tim.NewCacheManager(cache, config.Cache.Options)
		httpOpts = append(httpOpts, http.WithCache(manager, nil))
	}

	return httpOpts, nil
}

// New creates a new TIM API client. The client starts without a session;
// call Login before any operation that requires one.
func New(config *tim.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, tim.ErrEndpointRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	session := auth.NewSessionManager()
	if config.AccessToken != "" {
		tokenType := config.TokenType
		if tokenType == "" {
			tokenType = "bearer"
		}

		session.SetToken(&auth.Token{TokenType: tokenType, AccessToken: config.AccessToken})
	}

	httpClient := http.NewClient(config.APIEndpoint, session, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		session:    session,
		baseURL:    config.APIEndpoint,
		logger:     config.Logger,
	}

	client.items = NewItemsClient(httpClient, session)
	client.users = NewUsersClient(httpClient, session)

	return client, nil
}

// Login implements tim.Client.Login. Credentials are exchanged for a session
// token via the form-encoded token endpoint. On any failure the existing
// session state is left untouched.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:   "POST",
		Path:     "/login/access-token",
		FormData: form,
		NoAuth:   true,
	})
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	var token tim.Token

	err = json.Unmarshal(resp.Body, &token)
	if err != nil {
		return &tim.DecodeError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}

	c.session.SetToken(&auth.Token{
		TokenType:   token.TokenType,
		AccessToken: token.AccessToken,
	})

	return nil
}

// Logout implements tim.Client.Logout.
func (c *Client) Logout() {
	c.session.Clear()
}

// Token implements tim.Client.Token.
func (c *Client) Token() *tim.Token {
	token := c.session.Token()
	if token == nil {
		return nil
	}

	return &tim.Token{TokenType: token.TokenType, AccessToken: token.AccessToken}
}

// Items implements tim.Client.Items.
func (c *Client) Items() tim.ItemsClient {
	return c.items
}

// Users implements tim.Client.Users.
func (c *Client) Users() tim.UsersClient {
	return c.users
}

// decodeInto unmarshals a success-status body into out, converting failures
// into the typed decode error so callers keep the status and raw body.
func decodeInto(resp *http.Response, out interface{}) error {
	err := json.Unmarshal(resp.Body, out)
	if err != nil {
		return &tim.DecodeError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}

	return nil
}

// listParamsOrDefault applies the backend's default page size when the
// caller gives no parameters.
func listParamsOrDefault(params *tim.ListParams) *tim.ListParams {
	if params == nil {
		return tim.NewListParams().WithLimit(constants.DefaultListLimit)
	}

	return params
}

// loggerAdapter adapts tim.Logger to http.Logger.
type loggerAdapter struct {
	logger tim.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
